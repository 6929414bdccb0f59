// Package clock provides the frame clock and owned timers that drive all
// scripted sequences in the engine.
//
// The engine is single-threaded and cooperative: one caller advances the
// clock frame by frame, and every deferred callback is an owned timer
// registered against a TimerSet. There are no goroutine timers; a timer that
// has not fired yet can always be cancelled by its owner, so a scene tearing
// down mid-sequence never leaks a callback into dead state.
package clock

// FramesPerSecond is the nominal tick rate the engine is tuned for.
// Durations expressed in milliseconds elsewhere convert through this rate.
const FramesPerSecond = 60

// Clock is a monotonic frame counter advanced by the session loop.
type Clock struct {
	frame uint64
}

// New creates a clock starting at frame zero.
func New() *Clock {
	return &Clock{}
}

// Frame returns the current frame number.
func (c *Clock) Frame() uint64 {
	return c.frame
}

// Advance moves the clock forward one frame.
func (c *Clock) Advance() {
	c.frame++
}

// Millis converts a millisecond duration to whole frames, rounding up so a
// short delay never collapses to zero frames.
func Millis(ms int) int {
	frames := ms * FramesPerSecond / 1000
	if frames*1000 < ms*FramesPerSecond {
		frames++
	}
	if frames < 1 {
		frames = 1
	}
	return frames
}
