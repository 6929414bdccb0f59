package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle/memory"
)

// MemoryScene is chapter 2: the singing stones.
type MemoryScene struct {
	chapterScene
	puzzle *memory.Puzzle
	// highlights is the glyph order revealed by the running playback, reset
	// each time playback restarts. Views read it so a client can observe the
	// sequence instead of guessing.
	highlights []int
}

// NewMemoryScene builds the chapter 2 scene.
func NewMemoryScene(deps Deps, next string) *MemoryScene {
	s := &MemoryScene{chapterScene: newChapterScene(deps, 2, next)}
	s.hooks = s
	return s
}

// defaultGlyphs lays the four singing stones in an arc.
func defaultGlyphs() []puzzle.Point {
	return []puzzle.Point{
		{X: 160, Y: 360},
		{X: 320, Y: 300},
		{X: 480, Y: 300},
		{X: 640, Y: 360},
	}
}

func (s *MemoryScene) buildPuzzle(context.Context) error {
	s.highlights = nil
	p, err := memory.New(memory.Config{
		Glyphs: defaultGlyphs(),
		Seed:   s.deps.NewSeed(),
		Timers: s.deps.Timers,
		Callbacks: puzzle.Callbacks{
			OnSuccess: s.onSolved,
			OnFailure: s.onFailed,
			OnWarning: func(int) { s.deps.Cast.Byte.Bark() },
		},
		OnHighlight: func(glyph, position int) {
			if position == 0 {
				s.highlights = s.highlights[:0]
			}
			s.highlights = append(s.highlights, glyph)
		},
	})
	if err != nil {
		return err
	}
	s.puzzle = p
	p.StartPlayback()
	return nil
}

func (s *MemoryScene) teardownPuzzle() {
	if s.puzzle != nil {
		s.puzzle.Teardown()
		s.puzzle = nil
	}
}

func (s *MemoryScene) puzzleUpdate() {}

func (s *MemoryScene) puzzleInput(_ context.Context, ev Event) bool {
	if ev.Kind != EventClick || s.puzzle == nil {
		return false
	}
	return s.puzzle.HandleClick(ev.X, ev.Y)
}

func (s *MemoryScene) retryPuzzle(context.Context) bool {
	// The puzzle schedules its own replay of the unchanged sequence after a
	// failure.
	return true
}

// Puzzle exposes the live puzzle for views.
func (s *MemoryScene) Puzzle() *memory.Puzzle { return s.puzzle }

// Highlights returns the glyph order the running playback has revealed so
// far.
func (s *MemoryScene) Highlights() []int {
	out := make([]int, len(s.highlights))
	copy(out, s.highlights)
	return out
}
