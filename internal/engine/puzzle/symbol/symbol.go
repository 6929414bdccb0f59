// Package symbol implements the chapter 1 symbol sequence puzzle.
//
// N tokens are placed on screen, each tagged with a semantic kind. The
// player must activate K of them in the target order. Comparison happens
// element by element on every activation, so the first wrong pick fails the
// attempt immediately instead of waiting for a full-length entry.
package symbol

import (
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Kind tags a token with its semantic meaning.
type Kind string

const (
	KindDNA  Kind = "dna"
	KindEgg  Kind = "egg"
	KindClaw Kind = "claw"
	KindEye  Kind = "eye"
	KindStar Kind = "star"
)

// DefaultTarget is the canonical genesis sequence for chapter 1.
var DefaultTarget = []Kind{KindDNA, KindEgg, KindClaw, KindEye, KindStar}

const (
	// DefaultHitRadius is the radial hit-test distance for a token click.
	DefaultHitRadius = 40.0
	// DefaultWarnThreshold is the failed-attempt count that escalates to a
	// warning (the scene brings in BYTE).
	DefaultWarnThreshold = 3
)

// ErrNoTokens indicates the puzzle was configured without token placements.
var ErrNoTokens = apperrors.New(apperrors.CodeSequenceInvalidLength, "at least one token placement is required")

// ErrTargetNotPlaced indicates a target kind with no matching token.
var ErrTargetNotPlaced = apperrors.New(apperrors.CodeSequenceInvalidLength, "every target kind must have a placed token")

// Placement positions one token of a given kind.
type Placement struct {
	Kind Kind
	Pos  puzzle.Point
}

// Token is the live state of one placed symbol.
type Token struct {
	Kind      Kind
	Pos       puzzle.Point
	Activated bool
}

// Config configures a symbol puzzle instance.
type Config struct {
	Placements    []Placement
	Target        []Kind // defaults to DefaultTarget
	HitRadius     float64
	WarnThreshold int
	Callbacks     puzzle.Callbacks
	// OnActivated fires when a token is accepted into the running sequence.
	OnActivated func(kind Kind, position int)
}

// Puzzle is the chapter 1 symbol sequence state machine.
type Puzzle struct {
	tokens    []Token
	target    []Kind
	entered   []Kind
	attempts  int
	solved    bool
	hitRadius float64
	warnAt    int
	cb        puzzle.Callbacks
	onActive  func(Kind, int)
}

// New creates a symbol puzzle from the provided configuration.
func New(cfg Config) (*Puzzle, error) {
	if len(cfg.Placements) == 0 {
		return nil, ErrNoTokens
	}

	target := cfg.Target
	if len(target) == 0 {
		target = DefaultTarget
	}

	placed := make(map[Kind]int)
	for _, p := range cfg.Placements {
		placed[p.Kind]++
	}
	for _, kind := range target {
		if placed[kind] == 0 {
			return nil, ErrTargetNotPlaced
		}
	}

	hitRadius := cfg.HitRadius
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}
	warnAt := cfg.WarnThreshold
	if warnAt <= 0 {
		warnAt = DefaultWarnThreshold
	}

	tokens := make([]Token, len(cfg.Placements))
	for i, p := range cfg.Placements {
		tokens[i] = Token{Kind: p.Kind, Pos: p.Pos}
	}

	return &Puzzle{
		tokens:    tokens,
		target:    target,
		hitRadius: hitRadius,
		warnAt:    warnAt,
		cb:        cfg.Callbacks,
		onActive:  cfg.OnActivated,
	}, nil
}

// HandleClick hit-tests tokens by radial distance and advances the running
// sequence. Clicks on activated tokens, misses, and clicks after solve are
// all no-ops.
func (p *Puzzle) HandleClick(x, y float64) bool {
	if p.solved {
		return false
	}

	idx := p.hitTest(x, y)
	if idx < 0 || p.tokens[idx].Activated {
		return false
	}

	p.tokens[idx].Activated = true
	kind := p.tokens[idx].Kind
	p.entered = append(p.entered, kind)
	if p.onActive != nil {
		p.onActive(kind, len(p.entered)-1)
	}

	pos := len(p.entered) - 1
	if p.entered[pos] != p.target[pos] {
		p.fail()
		return true
	}

	if len(p.entered) == len(p.target) {
		p.solved = true
		p.cb.Success()
	}
	return true
}

// hitTest returns the index of the nearest token within the hit radius, or
// -1 when the click misses every token.
func (p *Puzzle) hitTest(x, y float64) int {
	click := puzzle.Point{X: x, Y: y}
	best := -1
	bestDist := p.hitRadius
	for i := range p.tokens {
		d := puzzle.Dist(click, p.tokens[i].Pos)
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// fail counts the attempt, clears token and sequence state, and escalates
// once the warning threshold is reached.
func (p *Puzzle) fail() {
	p.attempts++
	p.clearSelection()
	p.cb.Failure(p.attempts)
	if p.attempts >= p.warnAt {
		p.cb.Warning(p.attempts)
	}
}

func (p *Puzzle) clearSelection() {
	p.entered = p.entered[:0]
	for i := range p.tokens {
		p.tokens[i].Activated = false
	}
}

// Update advances cosmetic animation. The symbol puzzle has no timed state.
func (p *Puzzle) Update() {}

// Reset returns the puzzle to its initial state.
func (p *Puzzle) Reset() {
	p.clearSelection()
	p.attempts = 0
	p.solved = false
}

// Solved reports whether the full target sequence was entered.
func (p *Puzzle) Solved() bool { return p.solved }

// Attempts returns the failed attempt count.
func (p *Puzzle) Attempts() int { return p.attempts }

// Entered returns a copy of the running player sequence.
func (p *Puzzle) Entered() []Kind {
	out := make([]Kind, len(p.entered))
	copy(out, p.entered)
	return out
}

// Tokens returns a copy of the live token state for rendering.
func (p *Puzzle) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}
