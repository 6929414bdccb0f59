package riddle

import (
	"testing"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
)

type harness struct {
	clock  *clock.Clock
	timers *clock.TimerSet
	puzzle *Puzzle
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	c := clock.New()
	timers := clock.NewTimerSet(c)
	cfg.Timers = timers
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return &harness{clock: c, timers: timers, puzzle: p}
}

func (h *harness) advance(frames int) {
	for i := 0; i < frames; i++ {
		h.clock.Advance()
		h.timers.Tick()
	}
}

func (h *harness) selectAndEvaluate(t *testing.T, option int) {
	t.Helper()
	if !h.puzzle.SelectOption(option) {
		t.Fatalf("select option %d rejected in state %v", option, h.puzzle.State())
	}
	h.advance(clock.Millis(1500) + 1)
	if !h.puzzle.Answered() {
		t.Fatalf("expected answered state, got %v", h.puzzle.State())
	}
}

func TestBankHasFiveRiddles(t *testing.T) {
	bank := Bank()
	if len(bank) != 5 {
		t.Fatalf("expected 5 riddles, got %d", len(bank))
	}
	for _, r := range bank {
		if r.Answer < 0 || r.Answer >= len(r.Options) {
			t.Fatalf("riddle %q has out-of-range answer %d", r.ID, r.Answer)
		}
		if r.Hint == "" || r.Explanation == "" {
			t.Fatalf("riddle %q is missing hint or explanation", r.ID)
		}
	}
}

func TestDrawIsDeterministicPerSeed(t *testing.T) {
	a := newHarness(t, Config{Seed: 3})
	b := newHarness(t, Config{Seed: 3})
	if a.puzzle.Current().ID != b.puzzle.Current().ID {
		t.Fatal("expected same riddle for equal seeds")
	}
}

func TestCorrectAnswerSolvesOnContinue(t *testing.T) {
	var solved bool
	h := newHarness(t, Config{
		Seed:      1,
		Callbacks: puzzle.Callbacks{OnSuccess: func() { solved = true }},
	})

	h.selectAndEvaluate(t, h.puzzle.Current().Answer)

	if !h.puzzle.Correct() {
		t.Fatal("expected correct evaluation")
	}
	if solved || h.puzzle.Solved() {
		t.Fatal("success must not fire before explicit continue")
	}

	if !h.puzzle.HandleContinue() {
		t.Fatal("continue rejected")
	}
	if !h.puzzle.Solved() || !solved {
		t.Fatal("expected solved after continue")
	}
}

func TestIncorrectAnswerAllowsRetry(t *testing.T) {
	var failures int
	h := newHarness(t, Config{
		Seed:      1,
		Callbacks: puzzle.Callbacks{OnFailure: func(int) { failures++ }},
	})

	wrong := (h.puzzle.Current().Answer + 1) % 4
	h.selectAndEvaluate(t, wrong)

	if h.puzzle.Correct() {
		t.Fatal("expected incorrect evaluation")
	}
	if failures != 1 {
		t.Fatalf("expected 1 failure callback, got %d", failures)
	}

	if !h.puzzle.HandleContinue() {
		t.Fatal("continue rejected")
	}
	if h.puzzle.State() != StateReading {
		t.Fatalf("expected reading state after retry continue, got %v", h.puzzle.State())
	}

	// Same riddle, any option selectable again.
	h.selectAndEvaluate(t, h.puzzle.Current().Answer)
	if !h.puzzle.Correct() {
		t.Fatal("expected correct on second attempt")
	}
	if h.puzzle.Attempts() != 2 {
		t.Fatalf("expected 2 attempts, got %d", h.puzzle.Attempts())
	}
}

func TestSelectIsNoopWhileAnswered(t *testing.T) {
	h := newHarness(t, Config{Seed: 5})
	h.selectAndEvaluate(t, 0)

	if h.puzzle.SelectOption(1) {
		t.Fatal("select must be rejected while answered")
	}
	if h.puzzle.Attempts() != 1 {
		t.Fatalf("expected attempts unchanged, got %d", h.puzzle.Attempts())
	}
}

func TestSelectIsNoopDuringEvaluation(t *testing.T) {
	h := newHarness(t, Config{Seed: 5})
	h.puzzle.SelectOption(0)
	if h.puzzle.SelectOption(1) {
		t.Fatal("select must be rejected during evaluation")
	}
}

func TestHintIsFree(t *testing.T) {
	var hinted string
	h := newHarness(t, Config{
		Seed:   2,
		OnHint: func(hint string) { hinted = hint },
	})

	hint := h.puzzle.RequestHint()
	if hint == "" || hint != h.puzzle.Current().Hint {
		t.Fatalf("expected riddle hint, got %q", hint)
	}
	if hinted != hint {
		t.Fatal("expected hint callback")
	}
	if h.puzzle.Attempts() != 0 {
		t.Fatal("hint must not count as an attempt")
	}

	h.selectAndEvaluate(t, h.puzzle.Current().Answer)
	if h.puzzle.RequestHint() != "" {
		t.Fatal("hint unavailable once answered")
	}
}

func TestResetCancelsPendingEvaluation(t *testing.T) {
	h := newHarness(t, Config{Seed: 9})
	h.puzzle.SelectOption(0)
	h.puzzle.Reset()

	h.advance(clock.Millis(1500) + 1)
	if h.puzzle.Answered() {
		t.Fatal("cancelled evaluation must not land")
	}
	if h.puzzle.State() != StateReading || h.puzzle.Attempts() != 0 {
		t.Fatal("expected pristine state after reset")
	}
}
