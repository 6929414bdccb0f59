package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
)

// IntroScene is the title card: the protocol wakes up and hands off to the
// furthest unlocked chapter.
type IntroScene struct {
	deps   Deps
	runner *Runner
	done   bool

	advance func(ctx context.Context, name string) error
}

// NewIntroScene builds the title scene.
func NewIntroScene(deps Deps) *IntroScene {
	return &IntroScene{deps: deps, runner: NewRunner(deps.Timers)}
}

// SetAdvance wires completion to a manager transition.
func (s *IntroScene) SetAdvance(fn func(ctx context.Context, name string) error) {
	s.advance = fn
}

func (s *IntroScene) Name() string { return "intro" }

func (s *IntroScene) Enter(ctx context.Context) {
	s.done = false
	cast := s.deps.Cast
	cast.Aikira.Show()
	cast.Cliza.Show()
	cast.Byte.Hide()

	entries, err := s.deps.Dialogue.Lookup(0, dialogue.SectionIntro)
	if err != nil {
		s.deps.Logger.Printf("intro dialogue: %v", err)
		s.finish(ctx)
		return
	}
	s.runner.Start(entries, func() { s.finish(ctx) })
}

func (s *IntroScene) finish(ctx context.Context) {
	s.done = true
	if s.advance == nil {
		return
	}
	next := chapterName(s.deps.Tracker.Chapter())
	if err := s.advance(ctx, next); err != nil {
		s.deps.Logger.Printf("intro advance: %v", err)
	}
}

// chapterName maps an unlocked chapter to its scene registry key.
func chapterName(chapter int) string {
	switch {
	case chapter >= 6:
		return "reward"
	case chapter < 1:
		return "chapter1"
	default:
		names := []string{"chapter1", "chapter2", "chapter3", "chapter4", "chapter5"}
		return names[chapter-1]
	}
}

func (s *IntroScene) Exit() {
	s.runner.Stop()
	s.deps.Timers.CancelAll()
}

func (s *IntroScene) Update() {
	s.deps.Cast.Cliza.Update()
}

func (s *IntroScene) HandleInput(ctx context.Context, ev Event) bool {
	if !s.runner.Active() {
		return false
	}
	if ev.Kind == EventClick || (ev.Kind == EventKey && ev.Key == KeyEnter) {
		s.runner.Advance()
		return true
	}
	return false
}

func (s *IntroScene) Resize(width, height int) {
	s.deps.Cast.Aikira.SetPosition(float64(width)/2, float64(height)/3)
	s.deps.Cast.Cliza.SetPosition(float64(width)/2-120, float64(height)*0.7)
}

// Runner exposes the conversation for views.
func (s *IntroScene) Runner() *Runner { return s.runner }
