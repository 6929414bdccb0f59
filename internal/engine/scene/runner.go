package scene

import (
	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
)

// typeMillis is the typewriter reveal cadence per character.
const typeMillis = 30

// Line is one speaker turn, flattened from conversation entries.
type Line struct {
	Speaker string
	Text    string
}

// Runner plays one conversation: lines reveal with a typewriter effect and
// the player advances between them. All reveal timers are owned, so Stop
// on scene exit leaves nothing firing late.
type Runner struct {
	timers *clock.TimerSet

	lines    []Line
	idx      int
	revealed int
	active   bool
	onDone   func()

	revealTimer clock.Handle
}

// NewRunner builds an idle runner against the scene's timer set.
func NewRunner(timers *clock.TimerSet) *Runner {
	return &Runner{timers: timers}
}

// Start begins playing the conversation. onDone fires after the last line is
// advanced past. Starting replaces any conversation in flight.
func (r *Runner) Start(entries []dialogue.Entry, onDone func()) {
	r.Stop()
	r.lines = r.lines[:0]
	for _, e := range entries {
		for _, text := range e.Lines {
			r.lines = append(r.lines, Line{Speaker: e.Character, Text: text})
		}
	}
	r.idx = 0
	r.revealed = 0
	r.onDone = onDone
	if len(r.lines) == 0 {
		r.finish()
		return
	}
	r.active = true
	r.scheduleReveal()
}

func (r *Runner) scheduleReveal() {
	r.revealTimer = r.timers.After(clock.Millis(typeMillis), func() {
		if !r.active {
			return
		}
		line := r.lines[r.idx]
		if r.revealed < len(line.Text) {
			r.revealed++
			r.scheduleReveal()
		}
	})
}

// Advance reacts to player input: a partially revealed line completes
// instantly; a fully revealed line yields to the next one; advancing past
// the last line ends the conversation.
func (r *Runner) Advance() {
	if !r.active {
		return
	}
	line := r.lines[r.idx]
	if r.revealed < len(line.Text) {
		r.revealed = len(line.Text)
		r.timers.Cancel(r.revealTimer)
		return
	}
	r.idx++
	if r.idx >= len(r.lines) {
		r.finish()
		return
	}
	r.revealed = 0
	r.scheduleReveal()
}

func (r *Runner) finish() {
	r.Stop()
	if r.onDone != nil {
		done := r.onDone
		r.onDone = nil
		done()
	}
}

// Stop cancels the conversation without firing onDone.
func (r *Runner) Stop() {
	r.active = false
	r.timers.Cancel(r.revealTimer)
}

// Active reports whether a conversation is in flight.
func (r *Runner) Active() bool { return r.active }

// Current returns the line on screen, its revealed prefix, and whether the
// reveal finished. Zero values while idle.
func (r *Runner) Current() (speaker, revealed string, complete bool) {
	if !r.active || r.idx >= len(r.lines) {
		return "", "", false
	}
	line := r.lines[r.idx]
	return line.Speaker, line.Text[:r.revealed], r.revealed == len(line.Text)
}
