// Package riddle implements the chapter 3 multiple-choice riddle puzzle.
//
// One riddle is drawn uniformly from a fixed bank at construction. Scoring
// happens after a fixed evaluation delay (pure pacing, no hidden state), and
// success only lands when the player explicitly continues past the
// explanation.
package riddle

import (
	"math/rand"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// State is the current interaction mode of the puzzle.
type State int

const (
	// StateReading means the player can select an option or ask for a hint.
	StateReading State = iota
	// StateEvaluating is the non-interactive scoring delay.
	StateEvaluating
	// StateAnswered means the explanation is showing and the player must
	// continue (or retry).
	StateAnswered
	// StateSolved is the terminal success state.
	StateSolved
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateEvaluating:
		return "evaluating"
	case StateAnswered:
		return "answered"
	case StateSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// evaluationMillis is the fixed scoring-animation duration.
const evaluationMillis = 1500

// ErrEmptyBank indicates construction without any riddles.
var ErrEmptyBank = apperrors.New(apperrors.CodeRiddleBankEmpty, "riddle bank has no entries")

// Config configures a riddle puzzle instance.
type Config struct {
	Bank      []Riddle // defaults to Bank()
	Seed      int64
	Timers    *clock.TimerSet
	Callbacks puzzle.Callbacks
	// OnAttempt fires when an evaluation completes, before continue.
	OnAttempt func(selected int, correct bool)
	// OnHint fires when the player requests the hint.
	OnHint func(hint string)
}

// Puzzle is the chapter 3 riddle state machine.
type Puzzle struct {
	riddle   Riddle
	state    State
	selected int
	correct  bool
	attempts int
	hintUsed bool
	timers   *clock.TimerSet
	pending  clock.Handle
	cb       puzzle.Callbacks
	onTry    func(int, bool)
	onHint   func(string)
}

// New draws one riddle uniformly from the bank and creates the puzzle.
func New(cfg Config) (*Puzzle, error) {
	bank := cfg.Bank
	if len(bank) == 0 {
		bank = Bank()
	}
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Puzzle{
		riddle:   bank[rng.Intn(len(bank))],
		selected: -1,
		timers:   cfg.Timers,
		cb:       cfg.Callbacks,
		onTry:    cfg.OnAttempt,
		onHint:   cfg.OnHint,
	}, nil
}

// SelectOption begins the timed evaluation of option i. It is a no-op
// outside the reading state or for an out-of-range index.
func (p *Puzzle) SelectOption(i int) bool {
	if p.state != StateReading || i < 0 || i >= len(p.riddle.Options) {
		return false
	}

	p.selected = i
	p.state = StateEvaluating

	if p.timers == nil {
		p.evaluate()
		return true
	}
	p.pending = p.timers.After(clock.Millis(evaluationMillis), func() {
		if p.state == StateEvaluating {
			p.evaluate()
		}
	})
	return true
}

// evaluate scores the selection once the pacing delay elapses.
func (p *Puzzle) evaluate() {
	p.state = StateAnswered
	p.correct = p.selected == p.riddle.Answer
	p.attempts++
	if p.onTry != nil {
		p.onTry(p.selected, p.correct)
	}
	if !p.correct {
		p.cb.Failure(p.attempts)
	}
}

// HandleContinue resolves the explanation screen. A correct answer becomes
// the terminal solved state; an incorrect one reopens the same riddle for
// re-selection.
func (p *Puzzle) HandleContinue() bool {
	if p.state != StateAnswered {
		return false
	}
	if p.correct {
		p.state = StateSolved
		p.cb.Success()
		return true
	}
	p.state = StateReading
	p.selected = -1
	return true
}

// RequestHint returns the riddle's hint. Hints are free: they never count as
// an attempt. Empty string is returned after the riddle has been answered.
func (p *Puzzle) RequestHint() string {
	if p.state != StateReading {
		return ""
	}
	p.hintUsed = true
	if p.onHint != nil {
		p.onHint(p.riddle.Hint)
	}
	return p.riddle.Hint
}

// Update advances cosmetic animation. Timed behavior lives on the timer set.
func (p *Puzzle) Update() {}

// Reset cancels any pending evaluation and returns the puzzle to its initial
// state. The drawn riddle is kept; only a new instance redraws.
func (p *Puzzle) Reset() {
	if p.timers != nil {
		p.timers.Cancel(p.pending)
	}
	p.state = StateReading
	p.selected = -1
	p.correct = false
	p.attempts = 0
	p.hintUsed = false
}

// Teardown cancels the pending evaluation without mutating state.
func (p *Puzzle) Teardown() {
	if p.timers != nil {
		p.timers.Cancel(p.pending)
	}
}

// Solved reports whether the puzzle reached its terminal success state.
func (p *Puzzle) Solved() bool { return p.state == StateSolved }

// Attempts returns the evaluation count.
func (p *Puzzle) Attempts() int { return p.attempts }

// State returns the current interaction mode.
func (p *Puzzle) State() State { return p.state }

// Answered reports whether an evaluation has completed and is showing.
func (p *Puzzle) Answered() bool { return p.state == StateAnswered }

// Correct reports the result of the last completed evaluation.
func (p *Puzzle) Correct() bool { return p.correct }

// HintUsed reports whether the player asked for the hint.
func (p *Puzzle) HintUsed() bool { return p.hintUsed }

// Current returns the drawn riddle.
func (p *Puzzle) Current() Riddle { return p.riddle }
