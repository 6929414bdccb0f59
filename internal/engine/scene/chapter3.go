package scene

import (
	"context"
	"strconv"

	"github.com/louisbranch/aikira.quest/internal/engine/character"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle/riddle"
)

// RiddleScene is chapter 3: BYTE's riddle of the buried mind.
type RiddleScene struct {
	chapterScene
	puzzle *riddle.Puzzle
}

// NewRiddleScene builds the chapter 3 scene.
func NewRiddleScene(deps Deps, next string) *RiddleScene {
	s := &RiddleScene{chapterScene: newChapterScene(deps, 3, next)}
	s.hooks = s
	return s
}

func (s *RiddleScene) buildPuzzle(ctx context.Context) error {
	p, err := riddle.New(riddle.Config{
		Seed:   s.deps.NewSeed(),
		Timers: s.deps.Timers,
		Callbacks: puzzle.Callbacks{
			OnSuccess: s.onSolved,
			OnFailure: s.onFailed,
		},
		OnAttempt: func(_ int, correct bool) {
			if correct {
				s.deps.Cast.Byte.SetAnimation(character.AnimJudge)
			} else {
				s.deps.Cast.Byte.Bark()
			}
			s.recordByte(ctx)
		},
	})
	if err != nil {
		return err
	}
	s.puzzle = p
	return nil
}

// recordByte counts the riddle exchange as a sentinel interaction.
func (s *RiddleScene) recordByte(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.deps.Tracker.RecordByteInteraction(ctx)
}

func (s *RiddleScene) teardownPuzzle() {
	if s.puzzle != nil {
		s.puzzle.Teardown()
		s.puzzle = nil
	}
}

func (s *RiddleScene) puzzleUpdate() {}

func (s *RiddleScene) puzzleInput(_ context.Context, ev Event) bool {
	if s.puzzle == nil {
		return false
	}
	switch ev.Kind {
	case EventKey:
		switch ev.Key {
		case KeyEnter:
			return s.puzzle.HandleContinue()
		case KeyHint:
			return s.puzzle.RequestHint() != ""
		}
	case EventRune:
		// Options answer to keys 1 through 4.
		if i, err := strconv.Atoi(string(ev.Rune)); err == nil {
			return s.puzzle.SelectOption(i - 1)
		}
	}
	return false
}

func (s *RiddleScene) retryPuzzle(context.Context) bool {
	// HandleContinue already returned the same riddle to a selectable state.
	return true
}

// Puzzle exposes the live puzzle for views.
func (s *RiddleScene) Puzzle() *riddle.Puzzle { return s.puzzle }
