package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle/symbol"
)

// SymbolScene is chapter 1: the carved symbol sequence.
type SymbolScene struct {
	chapterScene
	puzzle *symbol.Puzzle
}

// NewSymbolScene builds the chapter 1 scene.
func NewSymbolScene(deps Deps, next string) *SymbolScene {
	s := &SymbolScene{chapterScene: newChapterScene(deps, 1, next)}
	s.hooks = s
	return s
}

// defaultPlacements spreads the five carvings across the stone wall.
func defaultPlacements() []symbol.Placement {
	kinds := []symbol.Kind{symbol.KindDNA, symbol.KindEgg, symbol.KindClaw, symbol.KindEye, symbol.KindStar}
	placements := make([]symbol.Placement, len(kinds))
	for i, k := range kinds {
		placements[i] = symbol.Placement{
			Kind: k,
			Pos:  puzzle.Point{X: float64(120 + i*140), Y: 300},
		}
	}
	return placements
}

func (s *SymbolScene) buildPuzzle(context.Context) error {
	p, err := symbol.New(symbol.Config{
		Placements: defaultPlacements(),
		Callbacks: puzzle.Callbacks{
			OnSuccess: s.onSolved,
			OnFailure: s.onFailed,
			OnWarning: func(int) { s.deps.Cast.Byte.Bark() },
		},
	})
	if err != nil {
		return err
	}
	s.puzzle = p
	return nil
}

func (s *SymbolScene) teardownPuzzle() {
	s.puzzle = nil
}

func (s *SymbolScene) puzzleUpdate() {}

func (s *SymbolScene) puzzleInput(_ context.Context, ev Event) bool {
	if ev.Kind != EventClick || s.puzzle == nil {
		return false
	}
	return s.puzzle.HandleClick(ev.X, ev.Y)
}

func (s *SymbolScene) retryPuzzle(context.Context) bool {
	// Failure already cleared the selection; the same board is retryable.
	return true
}

// Puzzle exposes the live puzzle for views.
func (s *SymbolScene) Puzzle() *symbol.Puzzle { return s.puzzle }
