package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle/code"
)

// sectionLockout is the chapter 5 terminal failure conversation.
const sectionLockout = "lockout"

// CodeScene is chapter 5: the GENESIS vault terminal.
type CodeScene struct {
	chapterScene
	puzzle *code.Puzzle
	locked bool
}

// NewCodeScene builds the chapter 5 scene.
func NewCodeScene(deps Deps, next string) *CodeScene {
	s := &CodeScene{chapterScene: newChapterScene(deps, 5, next)}
	s.hooks = s
	return s
}

func (s *CodeScene) buildPuzzle(context.Context) error {
	clues := s.deps.Tracker.Snapshot().Clues
	s.locked = false
	s.puzzle = code.New(code.Config{
		Clues: clues,
		Callbacks: puzzle.Callbacks{
			OnSuccess: s.onSolved,
			OnFailure: s.onFailed,
		},
		OnLockout: s.onLockout,
	}, s.deps.Timers)
	s.puzzle.StartBoot()
	return nil
}

// onLockout is terminal for this scene instance: a distinct conversation
// plays and the keypad stays dead until the scene is reset from outside.
func (s *CodeScene) onLockout() {
	s.locked = true
	s.phase = PhaseFailure
	s.deps.Cast.Byte.IncreaseSuspicion(30)
	s.startConversation(sectionLockout, func() {})
}

func (s *CodeScene) onFailed(attempts int) {
	if attempts >= code.MaxAttempts {
		// The lockout callback owns the terminal path.
		return
	}
	s.chapterScene.onFailed(attempts)
}

func (s *CodeScene) teardownPuzzle() {
	if s.puzzle != nil {
		s.puzzle.Teardown()
		s.puzzle = nil
	}
}

func (s *CodeScene) puzzleUpdate() {}

func (s *CodeScene) puzzleInput(_ context.Context, ev Event) bool {
	if s.puzzle == nil || s.locked {
		return false
	}
	switch ev.Kind {
	case EventRune:
		s.puzzle.TypeRune(ev.Rune)
		return true
	case EventKey:
		switch ev.Key {
		case KeyEnter:
			return s.puzzle.Submit()
		case KeyDelete:
			s.puzzle.Delete()
			return true
		case KeyLeft:
			s.puzzle.MoveActive(-1)
			return true
		case KeyRight:
			s.puzzle.MoveActive(1)
			return true
		case KeyClear:
			s.puzzle.ClearAll()
			return true
		}
	}
	return false
}

func (s *CodeScene) retryPuzzle(context.Context) bool {
	// Below the lockout threshold the puzzle wipes its own slots; the same
	// terminal instance keeps accepting input.
	return !s.locked
}

// ResetTerminal restores a locked terminal to the boot phase. This is the
// external scene-level reset the lockout requires.
func (s *CodeScene) ResetTerminal() {
	if s.puzzle == nil {
		return
	}
	s.puzzle.Reset()
	s.puzzle.StartBoot()
	s.locked = false
	s.phase = PhasePuzzle
}

// Puzzle exposes the live puzzle for views.
func (s *CodeScene) Puzzle() *code.Puzzle { return s.puzzle }

// Locked reports the terminal lockout.
func (s *CodeScene) Locked() bool { return s.locked }

// cursorGlowPeriod is the frame period of the active-slot glow cycle.
const cursorGlowPeriod = 48

// CursorGlow returns the active slot's highlight intensity for the current
// frame. A locked terminal has no glow.
func (s *CodeScene) CursorGlow() float64 {
	if s.puzzle == nil || s.locked {
		return 0
	}
	return clock.Pulse(s.deps.Clock.Frame(), cursorGlowPeriod, 0.35, 1)
}
