package scene

import (
	"context"
	"fmt"

	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
)

// puzzleHooks is the per-chapter surface the shared scene skeleton drives.
type puzzleHooks interface {
	// buildPuzzle creates a fresh puzzle wired to onSolved and onFailed.
	buildPuzzle(ctx context.Context) error
	// teardownPuzzle cancels puzzle timers before the instance is dropped.
	teardownPuzzle()
	// puzzleInput routes an event while the puzzle is active.
	puzzleInput(ctx context.Context, ev Event) bool
	// puzzleUpdate advances per-frame puzzle state.
	puzzleUpdate()
	// retryPuzzle restores a retryable state after a failure conversation.
	// Returning false marks the failure terminal for this scene instance.
	retryPuzzle(ctx context.Context) bool
}

// chapterScene is the state machine every trial shares: intro conversation,
// active puzzle, then a success or failure conversation. Chapters embed it
// and implement puzzleHooks.
type chapterScene struct {
	deps    Deps
	chapter int
	hooks   puzzleHooks
	runner  *Runner
	phase   Phase

	// ctx is the session context captured on Enter so timer callbacks can
	// persist progress. Cleared on Exit.
	ctx context.Context

	// next is the scene to advance to once the chapter completes.
	next string
	// advance is wired by the session to the manager transition.
	advance func(ctx context.Context, name string) error
}

func newChapterScene(deps Deps, chapter int, next string) chapterScene {
	return chapterScene{
		deps:    deps,
		chapter: chapter,
		next:    next,
		runner:  NewRunner(deps.Timers),
	}
}

// Name returns the registry key, "chapter1" through "chapter5".
func (c *chapterScene) Name() string {
	return fmt.Sprintf("chapter%d", c.chapter)
}

// SetAdvance wires scene completion to a manager transition.
func (c *chapterScene) SetAdvance(fn func(ctx context.Context, name string) error) {
	c.advance = fn
}

// Phase exposes the state machine for views and tests.
func (c *chapterScene) Phase() Phase { return c.phase }

// Runner exposes the active conversation for views.
func (c *chapterScene) Runner() *Runner { return c.runner }

func (c *chapterScene) Enter(ctx context.Context) {
	c.ctx = ctx
	c.phase = PhaseEntering
	c.placeCast()
	if err := c.hooks.buildPuzzle(ctx); err != nil {
		c.deps.Logger.Printf("chapter %d puzzle build: %v", c.chapter, err)
	}
	c.phase = PhaseIntro
	c.startConversation(dialogue.SectionIntro, func() {
		c.phase = PhasePuzzle
	})
}

func (c *chapterScene) Exit() {
	c.runner.Stop()
	c.hooks.teardownPuzzle()
	c.deps.Cast.Byte.Teardown()
	c.deps.Timers.CancelAll()
	c.ctx = nil
	c.phase = PhaseEntering
}

func (c *chapterScene) placeCast() {
	cast := c.deps.Cast
	cast.Aikira.Show()
	cast.Aikira.SetPosition(400, 80)
	cast.Cliza.Show()
	cast.Cliza.SetPosition(120, 420)
	cast.Byte.Show()
	cast.Byte.SetPosition(680, 420)
}

func (c *chapterScene) Resize(width, height int) {
	cast := c.deps.Cast
	cast.Aikira.SetPosition(float64(width)/2, 80)
	cast.Cliza.SetPosition(float64(width)*0.15, float64(height)*0.85)
	cast.Byte.SetPosition(float64(width)*0.85, float64(height)*0.85)
}

func (c *chapterScene) startConversation(section string, done func()) {
	entries, err := c.deps.Dialogue.Lookup(c.chapter, section)
	if err != nil {
		c.deps.Logger.Printf("chapter %d dialogue %s: %v", c.chapter, section, err)
		done()
		return
	}
	c.runner.Start(entries, done)
}

// onSolved is the puzzle success callback shared by every chapter.
func (c *chapterScene) onSolved() {
	c.phase = PhaseSuccess
	c.deps.Cast.Byte.DecreaseSuspicion(10)
	c.startConversation(dialogue.SectionSuccess, func() {
		c.complete()
	})
}

// onFailed is the puzzle failure callback shared by every chapter.
func (c *chapterScene) onFailed(attempts int) {
	if c.phase != PhasePuzzle {
		return
	}
	c.phase = PhaseFailure
	c.deps.Cast.Byte.IncreaseSuspicion(5 * attempts)
	c.startConversation(dialogue.SectionFailure, func() {
		if c.hooks.retryPuzzle(c.ctx) {
			c.phase = PhasePuzzle
		}
	})
}

func (c *chapterScene) complete() {
	c.phase = PhaseComplete
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	c.deps.Tracker.MarkSolved(ctx, c.chapter)
	if c.advance != nil {
		if err := c.advance(ctx, c.next); err != nil {
			c.deps.Logger.Printf("chapter %d advance: %v", c.chapter, err)
		}
	}
}

func (c *chapterScene) Update() {
	c.deps.Cast.Cliza.Update()
	if c.phase == PhasePuzzle {
		c.hooks.puzzleUpdate()
	}
}

func (c *chapterScene) HandleInput(ctx context.Context, ev Event) bool {
	if c.runner.Active() {
		if ev.Kind == EventClick || (ev.Kind == EventKey && ev.Key == KeyEnter) {
			c.runner.Advance()
			return true
		}
		return false
	}
	if c.phase != PhasePuzzle {
		return false
	}
	if ev.Kind == EventKey && ev.Key == KeyHint {
		// Puzzles with their own hint mechanics take the key first; the
		// chapter hint conversation is the fallback.
		if c.hooks.puzzleInput(ctx, ev) {
			return true
		}
		c.showHint()
		return true
	}
	return c.hooks.puzzleInput(ctx, ev)
}

func (c *chapterScene) showHint() {
	if !c.deps.Dialogue.Has(c.chapter, dialogue.SectionHint) {
		return
	}
	c.startConversation(dialogue.SectionHint, func() {})
}
