// Package puzzle defines the shared contract every chapter puzzle honors.
//
// A puzzle is a self-contained finite-state machine owned by exactly one
// scene. It never reaches outward: success, failure, and escalation all flow
// through the Callbacks surface, so puzzles can be exercised in isolation
// without a scene, characters, or progress state.
package puzzle

import "math"

// Callbacks is the outward-facing surface a scene registers on a puzzle.
// Any callback may be nil; puzzles must treat nil callbacks as no-ops.
type Callbacks struct {
	// OnSuccess fires exactly once when the puzzle is solved.
	OnSuccess func()
	// OnFailure fires on every failed attempt with the running attempt count.
	OnFailure func(attempts int)
	// OnWarning fires when the attempt count reaches the puzzle's escalation
	// threshold, letting the scene bring in BYTE.
	OnWarning func(attempts int)
}

// Success invokes OnSuccess if registered.
func (c Callbacks) Success() {
	if c.OnSuccess != nil {
		c.OnSuccess()
	}
}

// Failure invokes OnFailure if registered.
func (c Callbacks) Failure(attempts int) {
	if c.OnFailure != nil {
		c.OnFailure(attempts)
	}
}

// Warning invokes OnWarning if registered.
func (c Callbacks) Warning(attempts int) {
	if c.OnWarning != nil {
		c.OnWarning(attempts)
	}
}

// Puzzle is the minimal surface the scene layer drives uniformly.
type Puzzle interface {
	// Update advances puzzle-internal animation one frame.
	Update()
	// Reset returns the puzzle to a freshly initialized state.
	Reset()
	// Solved reports whether the puzzle reached its terminal success state.
	Solved() bool
	// Attempts returns the number of failed attempts so far.
	Attempts() int
}

// Point is a 2D position in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
