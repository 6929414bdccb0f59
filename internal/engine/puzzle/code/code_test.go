package code

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

func newHarness(cfg Config) *harness {
	c := clock.New()
	timers := clock.NewTimerSet(c)
	return &harness{clock: c, timers: timers, puzzle: New(cfg, timers)}
}

func (h *harness) advance(frames int) {
	for i := 0; i < frames; i++ {
		h.clock.Advance()
		h.timers.Tick()
	}
}

// boot runs the scripted startup to completion.
func (h *harness) boot(t *testing.T) {
	t.Helper()
	h.puzzle.StartBoot()
	h.advance(clock.Millis(bootLineMillis*len(bootLines)) + 1)
	if h.puzzle.Phase() != PhaseInput {
		t.Fatalf("expected input phase after boot, got %v", h.puzzle.Phase())
	}
}

func (h *harness) typeCode(s string) {
	for _, r := range s {
		h.puzzle.TypeRune(r)
	}
}

func TestDeriveCode(t *testing.T) {
	tests := []struct {
		name  string
		clues []string
		want  string
	}{
		{"no clues keeps default", nil, "DINO5"},
		{
			"all canonical clues",
			[]string{"they_came_before_wolves", "exodus_2", "not_meatbrain", "dino_sequence_located", "rex_type_fragment"},
			"DINO5",
		},
		{"literal dialogue text", []string{"PROTOCOL FRAGMENT UNLOCKED: EXODUS 2"}, "DINO5"},
		{"unrelated clues ignored", []string{"mystery", "artifact"}, "DINO5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveCode(tc.clues)
			if string(got[:]) != tc.want {
				t.Fatalf("DeriveCode(%v) = %q, want %q", tc.clues, string(got[:]), tc.want)
			}
		})
	}
}

func TestBootGatesInput(t *testing.T) {
	h := newHarness(Config{})
	h.puzzle.StartBoot()

	h.puzzle.TypeRune('D')
	if h.puzzle.Slots() != [Length]rune{} {
		t.Fatal("typing during boot filled a slot")
	}
	if h.puzzle.Submit() {
		t.Fatal("submit during boot accepted")
	}

	h.advance(clock.Millis(bootLineMillis*len(bootLines)) + 1)
	if h.puzzle.Phase() != PhaseInput {
		t.Fatalf("phase %v after boot, want input", h.puzzle.Phase())
	}
	if got := len(h.puzzle.BootedLines()); got != len(bootLines) {
		t.Fatalf("printed %d boot lines, want %d", got, len(bootLines))
	}
}

func TestBootLinesPrintInOrder(t *testing.T) {
	var printed []string
	h := newHarness(Config{OnBootLine: func(line string) { printed = append(printed, line) }})
	h.puzzle.StartBoot()
	h.advance(clock.Millis(bootLineMillis*len(bootLines)) + 1)

	if len(printed) != len(bootLines) {
		t.Fatalf("printed %d lines, want %d", len(printed), len(bootLines))
	}
	for i, line := range printed {
		if line != bootLines[i] {
			t.Fatalf("line %d = %q, want %q", i, line, bootLines[i])
		}
	}
}

func TestTypingAutoAdvances(t *testing.T) {
	h := newHarness(Config{})
	h.boot(t)

	h.typeCode("din")
	if h.puzzle.Active() != 3 {
		t.Fatalf("active slot %d after three runes, want 3", h.puzzle.Active())
	}
	if slots := h.puzzle.Slots(); slots[0] != 'D' || slots[1] != 'I' || slots[2] != 'N' {
		t.Fatalf("slots = %v, want lowercase input upcased", slots)
	}

	// Deleting slot 1 and typing again fills the hole, then wraps past
	// occupied slots to the next empty one.
	h.puzzle.MoveActive(-2)
	h.puzzle.Delete()
	h.puzzle.TypeRune('I')
	if h.puzzle.Active() != 3 {
		t.Fatalf("active slot %d after refill, want 3", h.puzzle.Active())
	}

	h.puzzle.TypeRune('!')
	if h.puzzle.Slots()[3] != 0 {
		t.Fatal("punctuation filled a slot")
	}
}

func TestMoveActiveWraps(t *testing.T) {
	h := newHarness(Config{})
	h.boot(t)

	h.puzzle.MoveActive(-1)
	if h.puzzle.Active() != Length-1 {
		t.Fatalf("active %d after left from 0, want %d", h.puzzle.Active(), Length-1)
	}
	h.puzzle.MoveActive(1)
	if h.puzzle.Active() != 0 {
		t.Fatalf("active %d after right wrap, want 0", h.puzzle.Active())
	}
}

func TestIncompleteSubmitRejected(t *testing.T) {
	attempts := 0
	h := newHarness(Config{Callbacks: puzzle.Callbacks{OnFailure: func(int) { attempts++ }}})
	h.boot(t)

	h.typeCode("dino")
	if h.puzzle.Submit() {
		t.Fatal("incomplete submit accepted")
	}
	if attempts != 0 || h.puzzle.Attempts() != 0 {
		t.Fatal("incomplete submit counted an attempt")
	}
}

func TestCorrectSubmitSolves(t *testing.T) {
	solved := false
	var entered string
	h := newHarness(Config{
		Callbacks: puzzle.Callbacks{OnSuccess: func() { solved = true }},
		OnEntered: func(code string, correct bool) {
			entered = code
			if !correct {
				t.Errorf("correct code reported as incorrect")
			}
		},
	})
	h.boot(t)

	h.typeCode("dino5")
	if !h.puzzle.Submit() {
		t.Fatal("complete submit rejected")
	}
	if !solved || !h.puzzle.Solved() {
		t.Fatal("correct code did not solve")
	}
	if entered != "DINO5" {
		t.Fatalf("entered callback got %q", entered)
	}

	h.puzzle.TypeRune('X')
	if h.puzzle.Slots()[0] != 'D' {
		t.Fatal("typing after solve mutated slots")
	}
}

func TestWrongSubmitWipesAfterDelay(t *testing.T) {
	h := newHarness(Config{})
	h.boot(t)

	h.typeCode("xxxxx")
	h.puzzle.Submit()
	if h.puzzle.Attempts() != 1 {
		t.Fatalf("attempts = %d, want 1", h.puzzle.Attempts())
	}
	if h.puzzle.Slots() == ([Length]rune{}) {
		t.Fatal("slots wiped before the retry delay")
	}

	h.advance(clock.Millis(retryWipeMillis) + 1)
	if h.puzzle.Slots() != ([Length]rune{}) {
		t.Fatal("slots not wiped after the retry delay")
	}
	if h.puzzle.Active() != 0 {
		t.Fatalf("active %d after wipe, want 0", h.puzzle.Active())
	}
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	lockouts := 0
	var failures []int
	h := newHarness(Config{
		Callbacks: puzzle.Callbacks{OnFailure: func(n int) { failures = append(failures, n) }},
		OnLockout: func() { lockouts++ },
	})
	h.boot(t)

	for i := 0; i < MaxAttempts; i++ {
		h.typeCode("xxxxx")
		h.puzzle.Submit()
		h.advance(clock.Millis(retryWipeMillis) + 1)
	}

	if !h.puzzle.Locked() {
		t.Fatalf("phase %v after %d failures, want locked", h.puzzle.Phase(), MaxAttempts)
	}
	if lockouts != 1 {
		t.Fatalf("lockout fired %d times, want 1", lockouts)
	}
	if len(failures) != MaxAttempts || failures[MaxAttempts-1] != MaxAttempts {
		t.Fatalf("failure callbacks = %v", failures)
	}

	h.typeCode("dino5")
	if h.puzzle.Submit() {
		t.Fatal("submit accepted while locked")
	}
}

func TestResetRestoresBoot(t *testing.T) {
	h := newHarness(Config{})
	h.boot(t)
	h.typeCode("xxxxx")
	h.puzzle.Submit()

	h.puzzle.Reset()
	if h.puzzle.Phase() != PhaseBoot {
		t.Fatalf("phase %v after reset, want boot", h.puzzle.Phase())
	}
	if h.puzzle.Attempts() != 0 {
		t.Fatalf("attempts = %d after reset, want 0", h.puzzle.Attempts())
	}
	if h.puzzle.Slots() != ([Length]rune{}) {
		t.Fatal("slots survived reset")
	}

	// The pre-reset wipe timer must not fire into the new run.
	h.boot(t)
	h.typeCode("din")
	h.advance(clock.Millis(retryWipeMillis) + 1)
	if h.puzzle.Slots()[0] != 'D' {
		t.Fatal("stale wipe timer cleared fresh input")
	}
}

func TestTeardownLeavesStateIntact(t *testing.T) {
	h := newHarness(Config{})
	h.boot(t)
	h.typeCode("xxxxx")
	h.puzzle.Submit()

	h.puzzle.Teardown()
	h.advance(clock.Millis(retryWipeMillis) + 1)
	if h.puzzle.Slots() == ([Length]rune{}) {
		t.Fatal("teardown let the wipe timer fire")
	}
	if h.puzzle.Attempts() != 1 {
		t.Fatalf("attempts = %d after teardown, want 1", h.puzzle.Attempts())
	}
}
