package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle/nav"
)

// NavScene is chapter 4: the jungle circuit grid.
type NavScene struct {
	chapterScene
	puzzle *nav.Puzzle
}

// NewNavScene builds the chapter 4 scene.
func NewNavScene(deps Deps, next string) *NavScene {
	s := &NavScene{chapterScene: newChapterScene(deps, 4, next)}
	s.hooks = s
	return s
}

func (s *NavScene) buildPuzzle(context.Context) error {
	p, err := nav.New(nav.Config{
		Seed: s.deps.NewSeed(),
		Callbacks: puzzle.Callbacks{
			OnSuccess: s.onSolved,
			OnFailure: s.onFailed,
		},
		OnFragment: func(int) { s.deps.Cast.Byte.DecreaseSuspicion(5) },
	})
	if err != nil {
		return err
	}
	s.puzzle = p
	return nil
}

func (s *NavScene) teardownPuzzle() {
	s.puzzle = nil
}

func (s *NavScene) puzzleUpdate() {
	if s.puzzle != nil {
		s.puzzle.Update()
	}
}

func (s *NavScene) puzzleInput(_ context.Context, ev Event) bool {
	if s.puzzle == nil || ev.Kind != EventKey {
		return false
	}
	switch ev.Key {
	case KeyUp:
		return s.puzzle.Move(0, -1)
	case KeyDown:
		return s.puzzle.Move(0, 1)
	case KeyLeft:
		return s.puzzle.Move(-1, 0)
	case KeyRight:
		return s.puzzle.Move(1, 0)
	}
	return false
}

func (s *NavScene) retryPuzzle(context.Context) bool {
	// A collision regenerates the whole grid with a fresh seed.
	if err := s.puzzle.Retry(); err != nil {
		s.deps.Logger.Printf("chapter 4 retry: %v", err)
		return false
	}
	return true
}

// Puzzle exposes the live puzzle for views.
func (s *NavScene) Puzzle() *nav.Puzzle { return s.puzzle }
