// Package nav implements the chapter 4 grid navigation puzzle: a
// procedurally generated jungle grid the player crosses to collect data
// fragments while avoiding patrolling birds, then escapes through the exit
// portal.
package nav

import (
	"math"
	"math/rand"

	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
)

// DefaultPlayerSpeed is the traversal speed in cells per frame. Stream cells
// halve it.
const DefaultPlayerSpeed = 0.15

// Config parameterizes a navigation puzzle.
type Config struct {
	Seed        int64
	Size        int
	PlayerSpeed float64
	Callbacks   puzzle.Callbacks
	// OnFragment fires after each fragment pickup with the collected count.
	OnFragment func(collected int)
	// OnExitActivated fires once when the last fragment opens the exit.
	OnExitActivated func()
}

// Puzzle is the grid navigation state machine. Movement is cell-discrete at
// the command level and continuous at the animation level.
type Puzzle struct {
	cfg   Config
	grid  *Grid
	birds []*Bird

	exit      [2]int
	fragments map[[2]int]bool

	px, py           float64
	cellX, cellY     int
	targetX, targetY int
	moving           bool

	prevPX, prevPY float64

	exitActive bool
	solved     bool
	failed     bool
	attempts   int

	rng *rand.Rand
}

// New generates the grid and layout and returns a ready puzzle. The first
// roll uses cfg.Seed so generation stays reproducible; a terrain roll that
// cannot place the layout re-rolls from the seeded stream rather than
// failing, so every seed yields a playable grid.
func New(cfg Config) (*Puzzle, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.PlayerSpeed == 0 {
		cfg.PlayerSpeed = DefaultPlayerSpeed
	}
	p := &Puzzle{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
	if err := p.regenerate(cfg.Seed); err != nil {
		if err := p.regenerateFresh(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Puzzle) regenerate(seed int64) error {
	grid, err := GenerateGrid(seed, p.cfg.Size)
	if err != nil {
		return err
	}
	layout, err := GenerateLayout(grid, seed)
	if err != nil {
		return err
	}

	p.grid = grid
	p.exit = layout.Exit
	p.fragments = make(map[[2]int]bool, len(layout.Fragments))
	for _, f := range layout.Fragments {
		p.fragments[f] = false
	}
	p.birds = p.birds[:0]
	for i, spawn := range layout.Birds {
		p.birds = append(p.birds, newBird(spawn, Pattern(i%3)))
	}

	p.cellX, p.cellY = layout.Player[0], layout.Player[1]
	p.targetX, p.targetY = p.cellX, p.cellY
	p.px, p.py = float64(p.cellX), float64(p.cellY)
	p.prevPX, p.prevPY = p.px, p.py
	p.moving = false
	p.exitActive = false
	p.failed = false
	return nil
}

// Move requests a one-cell step. Rejected while a previous step is still
// animating, after failure or solve, and into impassable or out-of-bounds
// cells. Rejected moves change nothing.
func (p *Puzzle) Move(dx, dy int) bool {
	if p.moving || p.solved || p.failed {
		return false
	}
	if (dx != 0 && dy != 0) || (dx == 0 && dy == 0) {
		return false
	}
	nx, ny := p.cellX+dx, p.cellY+dy
	if !p.grid.Passable(nx, ny) {
		return false
	}
	p.targetX, p.targetY = nx, ny
	p.moving = true
	return true
}

// Update advances one frame: player interpolation, bird state machines, and
// collision and pickup checks. Frozen after solve or failure.
func (p *Puzzle) Update() {
	if p.solved || p.failed {
		return
	}

	// Birds see where the player was last frame, never where it lands this
	// frame.
	lagX, lagY := p.prevPX, p.prevPY
	p.prevPX, p.prevPY = p.px, p.py

	p.advancePlayer()
	for _, b := range p.birds {
		b.update(lagX, lagY)
	}

	for _, b := range p.birds {
		if b.collides(p.px, p.py) {
			p.fail()
			return
		}
	}

	if !p.moving {
		p.checkCell()
	}
}

func (p *Puzzle) advancePlayer() {
	if !p.moving {
		return
	}
	speed := p.cfg.PlayerSpeed
	if p.grid.At(p.targetX, p.targetY).Type == CellStream {
		speed /= 2
	}
	tx, ty := float64(p.targetX), float64(p.targetY)
	dx, dy := tx-p.px, ty-p.py
	d := math.Sqrt(dx*dx + dy*dy)
	if d <= speed {
		p.px, p.py = tx, ty
		p.cellX, p.cellY = p.targetX, p.targetY
		p.moving = false
		return
	}
	p.px += dx / d * speed
	p.py += dy / d * speed
}

func (p *Puzzle) checkCell() {
	pos := [2]int{p.cellX, p.cellY}
	if collected, present := p.fragments[pos]; present && !collected {
		p.fragments[pos] = true
		p.grid.SetEffect(pos[0], pos[1], EffectGlow)
		count := p.Collected()
		if p.cfg.OnFragment != nil {
			p.cfg.OnFragment(count)
		}
		if count == len(p.fragments) {
			p.exitActive = true
			p.grid.SetEffect(p.exit[0], p.exit[1], EffectPortal)
			if p.cfg.OnExitActivated != nil {
				p.cfg.OnExitActivated()
			}
		}
	}
	if p.exitActive && pos == p.exit {
		p.solved = true
		p.cfg.Callbacks.Success()
	}
}

func (p *Puzzle) fail() {
	p.failed = true
	p.attempts++
	p.cfg.Callbacks.Failure(p.attempts)
}

// regenerateFresh rolls new seeds until one places, so a single unlucky
// terrain roll never strands a retry.
func (p *Puzzle) regenerateFresh() error {
	var err error
	for i := 0; i < placementAttempts; i++ {
		if err = p.regenerate(p.rng.Int63()); err == nil {
			return nil
		}
	}
	return err
}

// Retry regenerates the grid with a fresh seed after a failure. Attempts
// persist across retries.
func (p *Puzzle) Retry() error {
	if !p.failed {
		return nil
	}
	return p.regenerateFresh()
}

// Reset regenerates from a fresh seed and zeroes attempts and solve state.
func (p *Puzzle) Reset() {
	p.attempts = 0
	p.solved = false
	// An error here leaves the previous grid in place.
	_ = p.regenerateFresh()
}

// Solved reports whether the player escaped through the exit.
func (p *Puzzle) Solved() bool { return p.solved }

// Failed reports whether a bird caught the player this run.
func (p *Puzzle) Failed() bool { return p.failed }

// Attempts returns the cumulative failure count.
func (p *Puzzle) Attempts() int { return p.attempts }

// Collected returns the number of fragments picked up.
func (p *Puzzle) Collected() int {
	n := 0
	for _, done := range p.fragments {
		if done {
			n++
		}
	}
	return n
}

// FragmentCount returns the total fragments on the grid.
func (p *Puzzle) FragmentCount() int { return len(p.fragments) }

// ExitActive reports whether the exit portal is open.
func (p *Puzzle) ExitActive() bool { return p.exitActive }

// Player returns the continuous player position in cell coordinates.
func (p *Puzzle) Player() (float64, float64) { return p.px, p.py }

// PlayerCell returns the player's current discrete cell.
func (p *Puzzle) PlayerCell() (int, int) { return p.cellX, p.cellY }

// Moving reports whether a step animation is in flight.
func (p *Puzzle) Moving() bool { return p.moving }

// Grid exposes the terrain for rendering.
func (p *Puzzle) Grid() *Grid { return p.grid }

// Birds exposes patrol adversaries for rendering.
func (p *Puzzle) Birds() []*Bird { return p.birds }

// Exit returns the exit cell.
func (p *Puzzle) Exit() (int, int) { return p.exit[0], p.exit[1] }
