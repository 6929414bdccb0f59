package nav

import (
	"math/rand"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// CellType classifies a grid cell's terrain.
type CellType int

const (
	// CellEmpty is freely passable ground.
	CellEmpty CellType = iota
	// CellForest is impassable vegetation.
	CellForest
	// CellStream is passable but halves traversal speed.
	CellStream
	// CellObstacle is an impassable rock outcrop.
	CellObstacle
)

func (c CellType) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellForest:
		return "forest"
	case CellStream:
		return "stream"
	case CellObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Effect is a transient render overlay on a cell. It never affects
// passability.
type Effect int

const (
	EffectNone Effect = iota
	// EffectGlow marks a collected-fragment flash.
	EffectGlow
	// EffectPortal marks the activated exit.
	EffectPortal
)

// Cell is one grid tile. Terrain is immutable after generation; Circuit and
// Effect are cosmetic overlays.
type Cell struct {
	Type CellType
	// Circuit marks the decorative circuit-trace overlay carved after
	// terrain generation.
	Circuit bool
	Effect  Effect
}

// DefaultSize is the square grid dimension for chapter 4.
const DefaultSize = 16

// Noise thresholds: samples above forestThreshold become forest (with the
// extreme peaks hardening into obstacles) and samples below streamThreshold
// become streams.
const (
	forestThreshold   = 0.64
	obstacleThreshold = 0.88
	streamThreshold   = 0.30
	noiseScale        = 0.23
	noiseOctaves      = 3
	circuitPaths      = 3
)

// ErrBadSize indicates an unsupported grid dimension.
var ErrBadSize = apperrors.New(apperrors.CodeGridInvalidSize, "grid size must be at least 8")

// Grid is the generated chapter 4 terrain.
type Grid struct {
	size  int
	cells []Cell
}

// GenerateGrid builds a size×size terrain grid from coherent noise, then
// carves decorative circuit paths. The same seed always produces the same
// grid.
func GenerateGrid(seed int64, size int) (*Grid, error) {
	if size < 8 {
		return nil, ErrBadSize
	}

	noise := valueNoise{seed: seed}
	g := &Grid{size: size, cells: make([]Cell, size*size)}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sample := noise.fractal(float64(x)*noiseScale, float64(y)*noiseScale, noiseOctaves)
			cellType := CellEmpty
			switch {
			case sample >= obstacleThreshold:
				cellType = CellObstacle
			case sample >= forestThreshold:
				cellType = CellForest
			case sample <= streamThreshold:
				cellType = CellStream
			}
			g.cells[y*size+x] = Cell{Type: cellType}
		}
	}

	g.carveCircuits(rand.New(rand.NewSource(seed)))
	return g, nil
}

// carveCircuits overlays a few random walk traces on passable cells. Flavor
// only: passability is untouched.
func (g *Grid) carveCircuits(rng *rand.Rand) {
	for i := 0; i < circuitPaths; i++ {
		x := rng.Intn(g.size)
		y := rng.Intn(g.size)
		length := g.size/2 + rng.Intn(g.size)
		for step := 0; step < length; step++ {
			if g.InBounds(x, y) && g.At(x, y).Type != CellForest && g.At(x, y).Type != CellObstacle {
				g.cells[y*g.size+x].Circuit = true
			}
			if rng.Intn(2) == 0 {
				x += rng.Intn(3) - 1
			} else {
				y += rng.Intn(3) - 1
			}
			if x < 0 || x >= g.size || y < 0 || y >= g.size {
				break
			}
		}
	}
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether the cell coordinate is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// At returns the cell at the coordinate. Callers must check InBounds first.
func (g *Grid) At(x, y int) Cell {
	return g.cells[y*g.size+x]
}

// Passable reports whether an entity may occupy the cell.
func (g *Grid) Passable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	t := g.At(x, y).Type
	return t != CellForest && t != CellObstacle
}

// SetEffect applies a transient render overlay to a cell.
func (g *Grid) SetEffect(x, y int, effect Effect) {
	if g.InBounds(x, y) {
		g.cells[y*g.size+x].Effect = effect
	}
}

// reachable computes the set of cells reachable from (sx, sy) by 4-way
// movement over passable cells.
func (g *Grid) reachable(sx, sy int) map[[2]int]bool {
	seen := map[[2]int]bool{}
	if !g.Passable(sx, sy) {
		return seen
	}
	queue := [][2]int{{sx, sy}}
	seen[[2]int{sx, sy}] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := cur[0]+d[0], cur[1]+d[1]
			key := [2]int{nx, ny}
			if !seen[key] && g.Passable(nx, ny) {
				seen[key] = true
				queue = append(queue, key)
			}
		}
	}
	return seen
}
