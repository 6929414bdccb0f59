package nav

import (
	"math"
	"math/rand"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Layout holds entity placements for a generated grid. Placement is computed
// separately from terrain so callers can re-roll entities without re-rolling
// the map.
type Layout struct {
	Player    [2]int
	Exit      [2]int
	Fragments [][2]int
	Birds     [][2]int
}

// Placement constraints, in cells.
const (
	fragmentCount      = 3
	minBirds           = 3
	maxBirds           = 5
	fragmentPlayerDist = 4.0
	fragmentSpacing    = 3.0
	birdPlayerDist     = 5.0
	placementAttempts  = 40
)

// ErrPlacement indicates no valid entity placement exists on the grid.
var ErrPlacement = apperrors.New(apperrors.CodeGridPlacementFailed, "no valid entity placement on generated grid")

func cellDist(a, b [2]int) float64 {
	dx := float64(a[0] - b[0])
	dy := float64(a[1] - b[1])
	return math.Sqrt(dx*dx + dy*dy)
}

// GenerateLayout places the player, exit, data fragments and patrol birds on
// the grid. The player spawns near the left edge, the exit near the right,
// fragments in the middle band. Every fragment and the exit must be reachable
// from the player by 4-way movement. Fails with ErrPlacement after a bounded
// number of attempts.
func GenerateLayout(g *Grid, seed int64) (*Layout, error) {
	rng := rand.New(rand.NewSource(seed))
	size := g.Size()

	for attempt := 0; attempt < placementAttempts; attempt++ {
		layout, ok := tryLayout(g, rng, size)
		if ok {
			return layout, nil
		}
	}
	return nil, ErrPlacement
}

func tryLayout(g *Grid, rng *rand.Rand, size int) (*Layout, bool) {
	player, ok := pickColumn(g, rng, 1, 2)
	if !ok {
		return nil, false
	}
	exit, ok := pickColumn(g, rng, size-2, size-1)
	if !ok {
		return nil, false
	}

	reach := g.reachable(player[0], player[1])
	if !reach[exit] {
		return nil, false
	}

	fragments := make([][2]int, 0, fragmentCount)
	midLo, midHi := size*5/16, size*10/16
	for tries := 0; len(fragments) < fragmentCount && tries < 200; tries++ {
		cand := [2]int{midLo + rng.Intn(midHi-midLo+1), rng.Intn(size)}
		if !g.Passable(cand[0], cand[1]) || !reach[cand] {
			continue
		}
		if cellDist(cand, player) < fragmentPlayerDist {
			continue
		}
		spaced := true
		for _, f := range fragments {
			if cellDist(cand, f) < fragmentSpacing {
				spaced = false
				break
			}
		}
		if spaced {
			fragments = append(fragments, cand)
		}
	}
	if len(fragments) < fragmentCount {
		return nil, false
	}

	birdCount := minBirds + rng.Intn(maxBirds-minBirds+1)
	birds := make([][2]int, 0, birdCount)
	for tries := 0; len(birds) < birdCount && tries < 200; tries++ {
		cand := [2]int{rng.Intn(size), rng.Intn(size)}
		if !g.Passable(cand[0], cand[1]) {
			continue
		}
		if cellDist(cand, player) < birdPlayerDist {
			continue
		}
		birds = append(birds, cand)
	}
	if len(birds) < birdCount {
		return nil, false
	}

	return &Layout{Player: player, Exit: exit, Fragments: fragments, Birds: birds}, true
}

// pickColumn returns a random passable cell whose x is in [lo, hi].
func pickColumn(g *Grid, rng *rand.Rand, lo, hi int) ([2]int, bool) {
	var candidates [][2]int
	for x := lo; x <= hi; x++ {
		for y := 0; y < g.Size(); y++ {
			if g.Passable(x, y) {
				candidates = append(candidates, [2]int{x, y})
			}
		}
	}
	if len(candidates) == 0 {
		return [2]int{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
