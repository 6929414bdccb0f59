// Package code implements the chapter 5 vault code puzzle: a five-slot
// alphanumeric keypad gated by a scripted terminal boot sequence, with a
// hard lockout after repeated failures.
package code

import (
	"strings"
	"unicode"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
)

// Length is the fixed code size.
const Length = 5

// MaxAttempts is the incorrect submission count that triggers lockout.
const MaxAttempts = 5

// Timing, in milliseconds against the frame clock.
const (
	bootLineMillis  = 600
	retryWipeMillis = 900
)

// bootLines is the scripted vault terminal startup text. Slot input is inert
// until the last line prints.
var bootLines = []string{
	"GENESIS VAULT TERMINAL v2.7",
	"VERIFYING PROTOCOL FRAGMENTS...",
	"BYTE SENTINEL: ARMED",
	"AWAITING ACCESS CODE",
}

// defaultCode is the vault code before clue overrides.
var defaultCode = [Length]rune{'D', 'I', 'N', 'O', '5'}

// clueOverrides maps a clue stem to the slot it overrides and the character
// it writes there. Each stem is matched case-insensitively against collected
// clue identifiers.
var clueOverrides = []struct {
	stem string
	slot int
	char rune
}{
	{"wolves", 0, 'D'},
	{"exodus", 1, 'I'},
	{"meatbrain", 2, 'N'},
	{"sequence", 3, 'O'},
	{"fragment", 4, '5'},
}

// DeriveCode computes the target code from the collected clue identifiers.
// Every override writes the same character the default already holds, so the
// default code stays correct regardless of clues. That forgiveness is
// intended: missing a clue never strands the player at the vault.
func DeriveCode(clues []string) [Length]rune {
	target := defaultCode
	for _, clue := range clues {
		lower := strings.ToLower(clue)
		for _, ov := range clueOverrides {
			if strings.Contains(lower, ov.stem) {
				target[ov.slot] = ov.char
			}
		}
	}
	return target
}

// Phase is the puzzle lifecycle.
type Phase int

const (
	// PhaseBoot is the scripted terminal startup. Input is inert.
	PhaseBoot Phase = iota
	// PhaseInput accepts keypad entry.
	PhaseInput
	// PhaseLocked is the terminal lockout. Only a scene-level reset recovers.
	PhaseLocked
	// PhaseSolved is the terminal success state.
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseBoot:
		return "boot"
	case PhaseInput:
		return "input"
	case PhaseLocked:
		return "locked"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Config parameterizes a code puzzle.
type Config struct {
	Clues     []string
	Callbacks puzzle.Callbacks
	// OnBootLine fires as each boot line prints.
	OnBootLine func(line string)
	// OnEntered fires after every complete submission with the attempted
	// code and whether it matched.
	OnEntered func(entered string, correct bool)
	// OnLockout fires once when attempts exhaust.
	OnLockout func()
}

// Puzzle is the code input state machine. All mutation happens on the scene
// tick; timers are owned and cancelled by Teardown.
type Puzzle struct {
	cfg    Config
	timers *clock.TimerSet
	target [Length]rune

	phase    Phase
	slots    [Length]rune
	active   int
	booted   int
	attempts int

	wipeTimer  clock.Handle
	bootTimers []clock.Handle
}

// New derives the target from the clues and returns a puzzle in the boot
// phase. Call StartBoot to begin the terminal sequence.
func New(cfg Config, timers *clock.TimerSet) *Puzzle {
	return &Puzzle{
		cfg:    cfg,
		timers: timers,
		target: DeriveCode(cfg.Clues),
		phase:  PhaseBoot,
	}
}

// StartBoot schedules the terminal boot lines. The last line opens input.
func (p *Puzzle) StartBoot() {
	for i := range bootLines {
		line := bootLines[i]
		last := i == len(bootLines)-1
		h := p.timers.After(clock.Millis(bootLineMillis*(i+1)), func() {
			if p.phase != PhaseBoot {
				return
			}
			p.booted++
			if p.cfg.OnBootLine != nil {
				p.cfg.OnBootLine(line)
			}
			if last {
				p.phase = PhaseInput
			}
		})
		p.bootTimers = append(p.bootTimers, h)
	}
}

// BootedLines returns the boot lines printed so far.
func (p *Puzzle) BootedLines() []string {
	return bootLines[:p.booted]
}

// TypeRune writes an alphanumeric character into the active slot and
// advances to the next empty slot, wrapping. Inert outside the input phase
// and for non-alphanumeric runes.
func (p *Puzzle) TypeRune(r rune) {
	if p.phase != PhaseInput {
		return
	}
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return
	}
	p.slots[p.active] = unicode.ToUpper(r)
	p.advanceToEmpty()
}

func (p *Puzzle) advanceToEmpty() {
	for i := 1; i <= Length; i++ {
		next := (p.active + i) % Length
		if p.slots[next] == 0 {
			p.active = next
			return
		}
	}
}

// Delete clears the active slot.
func (p *Puzzle) Delete() {
	if p.phase != PhaseInput {
		return
	}
	p.slots[p.active] = 0
}

// MoveActive shifts the active slot left or right, wrapping.
func (p *Puzzle) MoveActive(delta int) {
	if p.phase != PhaseInput {
		return
	}
	p.active = ((p.active+delta)%Length + Length) % Length
}

// ClearAll wipes every slot and returns the cursor to the first.
func (p *Puzzle) ClearAll() {
	if p.phase != PhaseInput {
		return
	}
	p.slots = [Length]rune{}
	p.active = 0
}

// Submit validates the entered code. An incomplete code is rejected without
// counting an attempt. A wrong code counts one attempt and schedules an
// automatic wipe, unless attempts exhaust, which locks the terminal.
// Returns false only for the incomplete rejection.
func (p *Puzzle) Submit() bool {
	if p.phase != PhaseInput {
		return false
	}
	for _, r := range p.slots {
		if r == 0 {
			return false
		}
	}

	correct := p.slots == p.target
	if p.cfg.OnEntered != nil {
		p.cfg.OnEntered(string(p.slots[:]), correct)
	}

	if correct {
		p.phase = PhaseSolved
		p.cfg.Callbacks.Success()
		return true
	}

	p.attempts++
	p.cfg.Callbacks.Failure(p.attempts)
	if p.attempts >= MaxAttempts {
		p.phase = PhaseLocked
		p.timers.Cancel(p.wipeTimer)
		if p.cfg.OnLockout != nil {
			p.cfg.OnLockout()
		}
		return true
	}

	p.timers.Cancel(p.wipeTimer)
	p.wipeTimer = p.timers.After(clock.Millis(retryWipeMillis), func() {
		if p.phase != PhaseInput {
			return
		}
		p.slots = [Length]rune{}
		p.active = 0
	})
	return true
}

// Reset restores the boot phase with cleared slots and attempts, cancelling
// any pending wipe. The scene re-runs StartBoot afterwards.
func (p *Puzzle) Reset() {
	p.cancelTimers()
	p.phase = PhaseBoot
	p.slots = [Length]rune{}
	p.active = 0
	p.booted = 0
	p.attempts = 0
}

// Teardown cancels owned timers without touching puzzle state.
func (p *Puzzle) Teardown() {
	p.cancelTimers()
}

func (p *Puzzle) cancelTimers() {
	p.timers.Cancel(p.wipeTimer)
	for _, h := range p.bootTimers {
		p.timers.Cancel(h)
	}
	p.bootTimers = p.bootTimers[:0]
}

// Phase returns the current lifecycle phase.
func (p *Puzzle) Phase() Phase { return p.phase }

// Solved reports terminal success.
func (p *Puzzle) Solved() bool { return p.phase == PhaseSolved }

// Locked reports the lockout failure state.
func (p *Puzzle) Locked() bool { return p.phase == PhaseLocked }

// Attempts returns the incorrect submission count.
func (p *Puzzle) Attempts() int { return p.attempts }

// Active returns the active slot index.
func (p *Puzzle) Active() int { return p.active }

// Slots returns the entered characters; zero runes mark empty slots.
func (p *Puzzle) Slots() [Length]rune { return p.slots }
