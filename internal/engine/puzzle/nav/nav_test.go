package nav

import (
	"testing"

	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// newPuzzle searches a handful of seeds for one whose placement succeeds so
// tests stay independent of any single terrain roll.
func newPuzzle(t *testing.T, cfg Config) *Puzzle {
	t.Helper()
	for seed := int64(1); seed <= 64; seed++ {
		cfg.Seed = seed
		p, err := New(cfg)
		if err == nil {
			return p
		}
	}
	t.Fatal("no seed in range produced a placeable grid")
	return nil
}

func TestNewSucceedsForEverySeed(t *testing.T) {
	for seed := int64(0); seed < 2000; seed++ {
		if _, err := New(Config{Seed: seed}); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}

func TestGenerateGridDeterministic(t *testing.T) {
	a, err := GenerateGrid(42, DefaultSize)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateGrid(42, DefaultSize)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for y := 0; y < DefaultSize; y++ {
		for x := 0; x < DefaultSize; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("cell (%d,%d) differs across identical seeds", x, y)
			}
		}
	}
	c, err := GenerateGrid(43, DefaultSize)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	same := true
	for y := 0; y < DefaultSize && same; y++ {
		for x := 0; x < DefaultSize; x++ {
			if a.At(x, y) != c.At(x, y) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical grids")
	}
}

func TestGenerateGridRejectsSmallSize(t *testing.T) {
	_, err := GenerateGrid(1, 4)
	if !apperrors.IsCode(err, apperrors.CodeGridInvalidSize) {
		t.Fatalf("want GRID_INVALID_SIZE, got %v", err)
	}
}

func TestLayoutConstraints(t *testing.T) {
	for seed := int64(1); seed <= 64; seed++ {
		g, err := GenerateGrid(seed, DefaultSize)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		layout, err := GenerateLayout(g, seed)
		if err != nil {
			continue
		}

		if layout.Player[0] > 2 {
			t.Errorf("seed %d: player x=%d, want near left edge", seed, layout.Player[0])
		}
		if layout.Exit[0] < DefaultSize-2 {
			t.Errorf("seed %d: exit x=%d, want near right edge", seed, layout.Exit[0])
		}
		if len(layout.Fragments) != fragmentCount {
			t.Fatalf("seed %d: got %d fragments, want %d", seed, len(layout.Fragments), fragmentCount)
		}
		if n := len(layout.Birds); n < minBirds || n > maxBirds {
			t.Errorf("seed %d: got %d birds, want %d..%d", seed, n, minBirds, maxBirds)
		}

		reach := g.reachable(layout.Player[0], layout.Player[1])
		if !reach[layout.Exit] {
			t.Errorf("seed %d: exit unreachable from player", seed)
		}
		for i, f := range layout.Fragments {
			if !reach[f] {
				t.Errorf("seed %d: fragment %d unreachable", seed, i)
			}
			if d := cellDist(f, layout.Player); d < fragmentPlayerDist {
				t.Errorf("seed %d: fragment %d only %.1f cells from player", seed, i, d)
			}
			for j := i + 1; j < len(layout.Fragments); j++ {
				if d := cellDist(f, layout.Fragments[j]); d < fragmentSpacing {
					t.Errorf("seed %d: fragments %d and %d only %.1f cells apart", seed, i, j, d)
				}
			}
		}
		for i, b := range layout.Birds {
			if d := cellDist(b, layout.Player); d < birdPlayerDist {
				t.Errorf("seed %d: bird %d only %.1f cells from player", seed, i, d)
			}
		}
		return
	}
	t.Fatal("no seed in range produced a placeable grid")
}

func TestMoveRejectionsMutateNothing(t *testing.T) {
	p := newPuzzle(t, Config{})
	x, y := p.PlayerCell()

	if p.Move(1, 1) {
		t.Fatal("diagonal move accepted")
	}
	if p.Move(0, 0) {
		t.Fatal("zero move accepted")
	}
	if nx, ny := p.PlayerCell(); nx != x || ny != y {
		t.Fatalf("rejected moves changed cell to (%d,%d)", nx, ny)
	}
	if p.Moving() {
		t.Fatal("rejected moves started an animation")
	}
}

func TestMoveBlockedWhileAnimating(t *testing.T) {
	p := newPuzzle(t, Config{})

	moved := false
	for _, d := range [][2]int{{1, 0}, {0, 1}, {0, -1}, {-1, 0}} {
		if p.Move(d[0], d[1]) {
			moved = true
			break
		}
	}
	if !moved {
		t.Skip("player spawned with no passable neighbor")
	}
	if p.Move(1, 0) || p.Move(0, 1) || p.Move(-1, 0) || p.Move(0, -1) {
		t.Fatal("second move accepted mid-animation")
	}
	for i := 0; i < 60 && p.Moving(); i++ {
		p.Update()
	}
	if p.Moving() {
		t.Fatal("step never completed")
	}
}

func TestBirdDetectionTransitions(t *testing.T) {
	b := newBird([2]int{5, 5}, PatternLinear)

	b.update(100, 100)
	if b.State != StatePatrol {
		t.Fatalf("distant player: state %v, want patrol", b.State)
	}

	b.update(5+detectRadius-0.1, 5)
	if b.State != StateChase {
		t.Fatalf("player inside detect radius: state %v, want chase", b.State)
	}

	b.update(100, 100)
	if b.State != StateReturn {
		t.Fatalf("player beyond return radius: state %v, want return", b.State)
	}

	for i := 0; i < 2000 && b.State == StateReturn; i++ {
		b.update(100, 100)
	}
	if b.State != StatePatrol {
		t.Fatalf("bird never resumed patrol, state %v", b.State)
	}
}

func TestCollisionFailsExactlyOnce(t *testing.T) {
	failures := 0
	p := newPuzzle(t, Config{
		Callbacks: puzzle.Callbacks{
			OnFailure: func(int) { failures++ },
		},
	})

	px, py := p.Player()
	bird := p.Birds()[0]
	bird.X, bird.Y = px, py

	p.Update()
	p.Update()
	p.Update()

	if !p.Failed() {
		t.Fatal("overlapping bird did not fail the run")
	}
	if failures != 1 {
		t.Fatalf("failure callback fired %d times, want 1", failures)
	}
	if p.Attempts() != 1 {
		t.Fatalf("attempts = %d, want 1", p.Attempts())
	}
}

func TestRetryRegeneratesAndKeepsAttempts(t *testing.T) {
	p := newPuzzle(t, Config{})

	px, py := p.Player()
	p.Birds()[0].X, p.Birds()[0].Y = px, py
	p.Update()
	if !p.Failed() {
		t.Fatal("setup: run did not fail")
	}

	if err := p.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if p.Failed() {
		t.Fatal("retry left puzzle in failed state")
	}
	if p.Attempts() != 1 {
		t.Fatalf("attempts = %d after retry, want 1", p.Attempts())
	}
	if p.Collected() != 0 {
		t.Fatalf("retry kept %d collected fragments", p.Collected())
	}
}

func TestResetZeroesAttempts(t *testing.T) {
	p := newPuzzle(t, Config{})

	px, py := p.Player()
	p.Birds()[0].X, p.Birds()[0].Y = px, py
	p.Update()
	if p.Attempts() != 1 {
		t.Fatalf("setup: attempts = %d", p.Attempts())
	}

	p.Reset()
	if p.Attempts() != 0 {
		t.Fatalf("attempts = %d after reset, want 0", p.Attempts())
	}
	if p.Failed() || p.Solved() {
		t.Fatal("reset left terminal state set")
	}
}

func TestFragmentCollectionOpensExit(t *testing.T) {
	var pickups []int
	exitOpened := false
	solved := false

	p := newPuzzle(t, Config{
		OnFragment:      func(n int) { pickups = append(pickups, n) },
		OnExitActivated: func() { exitOpened = true },
		Callbacks:       puzzle.Callbacks{OnSuccess: func() { solved = true }},
	})

	// Drop the player onto each fragment cell directly. Collection is keyed
	// on the resting cell, not on the path taken.
	var cells [][2]int
	for cell := range p.fragments {
		cells = append(cells, cell)
	}
	for i, cell := range cells {
		p.cellX, p.cellY = cell[0], cell[1]
		p.px, p.py = float64(cell[0]), float64(cell[1])
		p.checkCell()
		if p.Collected() != i+1 {
			t.Fatalf("collected = %d after %d pickups", p.Collected(), i+1)
		}
	}
	if len(pickups) != 3 || pickups[2] != 3 {
		t.Fatalf("pickup callbacks = %v", pickups)
	}
	if !exitOpened || !p.ExitActive() {
		t.Fatal("collecting all fragments did not open the exit")
	}

	// Revisiting a collected fragment is inert.
	p.checkCell()
	if p.Collected() != 3 {
		t.Fatalf("revisit changed collected count to %d", p.Collected())
	}

	ex, ey := p.Exit()
	p.cellX, p.cellY = ex, ey
	p.px, p.py = float64(ex), float64(ey)
	p.checkCell()
	if !solved || !p.Solved() {
		t.Fatal("reaching the open exit did not solve the puzzle")
	}
}

func TestExitInertBeforeFragments(t *testing.T) {
	p := newPuzzle(t, Config{})
	ex, ey := p.Exit()
	p.cellX, p.cellY = ex, ey
	p.checkCell()
	if p.Solved() {
		t.Fatal("exit solved the puzzle before fragments were collected")
	}
}

func TestStreamCellsHalveSpeed(t *testing.T) {
	g := &Grid{size: 8, cells: make([]Cell, 64)}
	g.cells[0*8+1] = Cell{Type: CellStream}

	p := &Puzzle{cfg: Config{Size: 8, PlayerSpeed: 0.2}, grid: g}
	p.cellX, p.cellY = 0, 0
	p.targetX, p.targetY = 0, 0

	if !p.Move(1, 0) {
		t.Fatal("move into stream rejected")
	}
	p.advancePlayer()
	if x, _ := p.Player(); x != 0.1 {
		t.Fatalf("stream step advanced %.2f cells, want 0.10", x)
	}

	p.px, p.cellX, p.targetX = 0, 0, 0
	p.moving = false
	g.cells[0*8+1] = Cell{Type: CellEmpty}
	if !p.Move(1, 0) {
		t.Fatal("move into empty cell rejected")
	}
	p.advancePlayer()
	if x, _ := p.Player(); x != 0.2 {
		t.Fatalf("empty step advanced %.2f cells, want 0.20", x)
	}
}
