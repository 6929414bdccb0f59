// Package character implements the three shared game agents: AIKIRA the
// protocol voice, CLIZA the exploration AI, and BYTE the sentinel hound.
// Agents are created once at boot and repositioned by whichever scene is
// active.
package character

import "github.com/louisbranch/aikira.quest/internal/engine/puzzle"

// Context tags a dialogue request.
type Context string

const (
	ContextGreeting   Context = "greeting"
	ContextPuzzleHint Context = "puzzle_hint"
	ContextSuccess    Context = "success"
	ContextFailure    Context = "failure"
	ContextDefault    Context = "default"
)

// Animation is a render hint for the agent's sprite.
type Animation string

const (
	AnimIdle  Animation = "idle"
	AnimAlert Animation = "alert"
	AnimBark  Animation = "bark"
	AnimJudge Animation = "judge"
)

// Agent is the state shared by all three characters.
type Agent struct {
	name      string
	pos       puzzle.Point
	visible   bool
	animation Animation

	lines map[Context][]string
	next  map[Context]int
}

func newAgent(name string, lines map[Context][]string) *Agent {
	return &Agent{
		name:      name,
		animation: AnimIdle,
		lines:     lines,
		next:      make(map[Context]int),
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string { return a.name }

// Show makes the agent visible.
func (a *Agent) Show() { a.visible = true }

// Hide removes the agent from render.
func (a *Agent) Hide() { a.visible = false }

// Visible reports render visibility.
func (a *Agent) Visible() bool { return a.visible }

// SetPosition relocates the agent.
func (a *Agent) SetPosition(x, y float64) {
	a.pos = puzzle.Point{X: x, Y: y}
}

// Position returns the agent's location.
func (a *Agent) Position() puzzle.Point { return a.pos }

// Animation returns the current sprite state.
func (a *Agent) Animation() Animation { return a.animation }

// SetAnimation switches the sprite state.
func (a *Agent) SetAnimation(anim Animation) { a.animation = anim }

// Dialogue returns the next scripted line for the context, cycling through
// the context's lines. Unknown contexts fall back to the default pool.
func (a *Agent) Dialogue(ctx Context) string {
	pool, ok := a.lines[ctx]
	if !ok || len(pool) == 0 {
		pool = a.lines[ContextDefault]
		ctx = ContextDefault
	}
	if len(pool) == 0 {
		return ""
	}
	i := a.next[ctx] % len(pool)
	a.next[ctx] = i + 1
	return pool[i]
}
