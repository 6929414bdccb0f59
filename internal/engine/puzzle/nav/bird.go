package nav

import "math"

// Pattern selects a bird's patrol motion.
type Pattern int

const (
	PatternLinear Pattern = iota
	PatternCircular
	PatternZigzag
)

// BirdState is the patrol adversary state machine.
type BirdState int

const (
	// StatePatrol follows the bird's assigned pattern around its anchor.
	StatePatrol BirdState = iota
	// StateChase pursues the player's last known position.
	StateChase
	// StateReturn flies back to the patrol anchor.
	StateReturn
)

func (s BirdState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Movement tuning, in cells and cells per frame.
const (
	detectRadius  = 3.0
	returnRadius  = detectRadius * 2
	collideRadius = 0.6
	patrolSpeed   = 0.05
	chaseSpeed    = 0.09
	anchorEpsilon = 0.2
	patrolSpan    = 2.5
)

// Bird is a single patrol adversary. Positions are continuous cell
// coordinates.
type Bird struct {
	X, Y    float64
	State   BirdState
	Pattern Pattern

	anchorX, anchorY float64
	phase            float64
	dir              float64
}

func newBird(spawn [2]int, pattern Pattern) *Bird {
	return &Bird{
		X:       float64(spawn[0]),
		Y:       float64(spawn[1]),
		Pattern: pattern,
		anchorX: float64(spawn[0]),
		anchorY: float64(spawn[1]),
		dir:     1,
	}
}

func (b *Bird) distTo(x, y float64) float64 {
	dx := b.X - x
	dy := b.Y - y
	return math.Sqrt(dx*dx + dy*dy)
}

// update advances the bird one frame. px, py is the player's position from
// the previous frame, so detection always lags the player by one tick.
func (b *Bird) update(px, py float64) {
	d := b.distTo(px, py)

	switch b.State {
	case StatePatrol:
		if d <= detectRadius {
			b.State = StateChase
		}
	case StateChase:
		if d > returnRadius {
			b.State = StateReturn
		}
	case StateReturn:
		if d <= detectRadius {
			b.State = StateChase
		} else if b.distTo(b.anchorX, b.anchorY) <= anchorEpsilon {
			b.State = StatePatrol
		}
	}

	switch b.State {
	case StatePatrol:
		b.patrol()
	case StateChase:
		b.moveToward(px, py, chaseSpeed)
	case StateReturn:
		b.moveToward(b.anchorX, b.anchorY, patrolSpeed)
	}
}

func (b *Bird) patrol() {
	switch b.Pattern {
	case PatternLinear:
		b.X += patrolSpeed * b.dir
		if math.Abs(b.X-b.anchorX) >= patrolSpan {
			b.dir = -b.dir
		}
	case PatternCircular:
		b.phase += patrolSpeed / patrolSpan
		b.X = b.anchorX + patrolSpan*math.Cos(b.phase)
		b.Y = b.anchorY + patrolSpan*math.Sin(b.phase)
	case PatternZigzag:
		b.X += patrolSpeed * b.dir
		b.Y = b.anchorY + math.Sin((b.X-b.anchorX)*2)*0.8
		if math.Abs(b.X-b.anchorX) >= patrolSpan {
			b.dir = -b.dir
		}
	}
}

func (b *Bird) moveToward(tx, ty, speed float64) {
	dx := tx - b.X
	dy := ty - b.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d <= speed || d == 0 {
		b.X = tx
		b.Y = ty
		return
	}
	b.X += dx / d * speed
	b.Y += dy / d * speed
}

// collides reports whether the bird overlaps the player position.
func (b *Bird) collides(px, py float64) bool {
	return b.distTo(px, py) <= collideRadius
}
