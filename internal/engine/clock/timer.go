package clock

import "sort"

// Handle identifies a scheduled timer so its owner can cancel it.
type Handle uint64

// timer is one pending deferred callback.
type timer struct {
	handle   Handle
	deadline uint64
	fn       func()
}

// TimerSet owns a collection of deferred callbacks scheduled against a
// clock. Each scene and puzzle holds its own set; cancelling the set on
// teardown is the single cancellation point for every scripted sequence the
// owner started.
type TimerSet struct {
	clock  *Clock
	next   Handle
	timers []timer
}

// NewTimerSet creates an empty timer set bound to the provided clock.
func NewTimerSet(c *Clock) *TimerSet {
	return &TimerSet{clock: c, next: 1}
}

// After schedules fn to run once frames from now. Scheduling with frames
// less than one fires on the next tick.
func (s *TimerSet) After(frames int, fn func()) Handle {
	if frames < 1 {
		frames = 1
	}
	handle := s.next
	s.next++
	s.timers = append(s.timers, timer{
		handle:   handle,
		deadline: s.clock.Frame() + uint64(frames),
		fn:       fn,
	})
	return handle
}

// Cancel removes a pending timer. Cancelling an already-fired or unknown
// handle is a no-op.
func (s *TimerSet) Cancel(handle Handle) {
	for i := range s.timers {
		if s.timers[i].handle == handle {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// CancelAll drops every pending timer. Owners call this on teardown.
func (s *TimerSet) CancelAll() {
	s.timers = nil
}

// Pending returns the number of timers that have not fired yet.
func (s *TimerSet) Pending() int {
	return len(s.timers)
}

// Tick fires every timer whose deadline has been reached, in scheduling
// order. Callbacks may schedule new timers; those are not eligible to fire
// until a later tick, so a zero-delay chain cannot starve the frame.
func (s *TimerSet) Tick() {
	if len(s.timers) == 0 {
		return
	}

	now := s.clock.Frame()
	var due []timer
	var remaining []timer
	for _, t := range s.timers {
		if t.deadline <= now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].handle < due[j].handle })

	s.timers = remaining
	for _, t := range due {
		t.fn()
	}
}
