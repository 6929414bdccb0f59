// Package memory implements the chapter 2 memory/tone sequence puzzle.
//
// The puzzle generates a random glyph sequence once per instance, plays it
// back as a timed highlight sequence, then lets the player reproduce it.
// The sequence survives failed attempts; only Reset regenerates it.
//
// Playback is a chain of owned timers on the set the scene provides, so a
// scene exiting mid-playback cancels every pending highlight in one call.
package memory

import (
	"math/rand"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/puzzle"
	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Phase is the current interaction mode of the puzzle.
type Phase int

const (
	// PhaseIdle is the state before the first playback starts.
	PhaseIdle Phase = iota
	// PhasePlayback means the system is highlighting the sequence;
	// player input is ignored.
	PhasePlayback
	// PhaseInput means the player is reproducing the sequence.
	PhaseInput
	// PhaseSolved is the terminal success state.
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayback:
		return "playback"
	case PhaseInput:
		return "input"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

const (
	// DefaultSequenceLength is the number of tones in the generated sequence.
	DefaultSequenceLength = 5
	// DefaultWarnThreshold escalates after this many failed attempts.
	DefaultWarnThreshold = 2
	// DefaultHitRadius is the radial hit-test distance for a glyph click.
	DefaultHitRadius = 45.0
	// toneDelayMillis is the inter-tone delay during playback.
	toneDelayMillis = 700
	// retryPauseMillis is the pause before replaying after a failure.
	retryPauseMillis = 1200
)

// ErrNoGlyphs indicates the puzzle was configured without glyph positions.
var ErrNoGlyphs = apperrors.New(apperrors.CodeSequenceInvalidLength, "at least one glyph position is required")

// ErrBadLength indicates a non-positive sequence length.
var ErrBadLength = apperrors.New(apperrors.CodeSequenceInvalidLength, "sequence length must be positive")

// Config configures a memory puzzle instance.
type Config struct {
	Glyphs         []puzzle.Point
	SequenceLength int // defaults to DefaultSequenceLength
	Seed           int64
	Timers         *clock.TimerSet
	HitRadius      float64
	WarnThreshold  int
	Callbacks      puzzle.Callbacks
	// OnHighlight fires for each glyph the system highlights during playback.
	OnHighlight func(glyph int, position int)
	// OnActivated fires for each correct glyph the player enters.
	OnActivated func(glyph int, position int)
	// OnPlaybackDone fires when playback completes and input opens.
	OnPlaybackDone func()
}

// Puzzle is the chapter 2 memory sequence state machine.
type Puzzle struct {
	glyphs    []puzzle.Point
	target    []int
	entered   []int
	phase     Phase
	attempts  int
	hitRadius float64
	warnAt    int
	seqLen    int
	rng       *rand.Rand
	timers    *clock.TimerSet
	handles   []clock.Handle
	cb        puzzle.Callbacks
	onHi      func(int, int)
	onAct     func(int, int)
	onDone    func()
}

// New creates a memory puzzle and generates its target sequence. The same
// glyph may appear consecutively; the distribution is uniform.
func New(cfg Config) (*Puzzle, error) {
	if len(cfg.Glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	seqLen := cfg.SequenceLength
	if seqLen == 0 {
		seqLen = DefaultSequenceLength
	}
	if seqLen < 0 {
		return nil, ErrBadLength
	}
	hitRadius := cfg.HitRadius
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}
	warnAt := cfg.WarnThreshold
	if warnAt <= 0 {
		warnAt = DefaultWarnThreshold
	}

	p := &Puzzle{
		glyphs:    cfg.Glyphs,
		phase:     PhaseIdle,
		hitRadius: hitRadius,
		warnAt:    warnAt,
		seqLen:    seqLen,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		timers:    cfg.Timers,
		cb:        cfg.Callbacks,
		onHi:      cfg.OnHighlight,
		onAct:     cfg.OnActivated,
		onDone:    cfg.OnPlaybackDone,
	}
	p.generate()
	return p, nil
}

// generate draws a fresh uniform sequence over the glyph indices.
func (p *Puzzle) generate() {
	p.target = make([]int, p.seqLen)
	for i := range p.target {
		p.target[i] = p.rng.Intn(len(p.glyphs))
	}
}

// StartPlayback schedules the highlight sequence. It is a no-op while a
// playback is already running or after the puzzle is solved.
func (p *Puzzle) StartPlayback() {
	if p.phase == PhasePlayback || p.phase == PhaseSolved || p.timers == nil {
		return
	}

	p.phase = PhasePlayback
	p.entered = p.entered[:0]

	toneFrames := clock.Millis(toneDelayMillis)
	for i, glyph := range p.target {
		glyph, i := glyph, i
		handle := p.timers.After(toneFrames*(i+1), func() {
			if p.phase != PhasePlayback {
				return
			}
			if p.onHi != nil {
				p.onHi(glyph, i)
			}
			if i == len(p.target)-1 {
				p.phase = PhaseInput
				if p.onDone != nil {
					p.onDone()
				}
			}
		})
		p.handles = append(p.handles, handle)
	}
}

// HandleClick hit-tests glyphs and advances the player's reproduction.
// Clicks outside the input phase are ignored.
func (p *Puzzle) HandleClick(x, y float64) bool {
	if p.phase != PhaseInput {
		return false
	}

	glyph := p.hitTest(x, y)
	if glyph < 0 {
		return false
	}

	pos := len(p.entered)
	p.entered = append(p.entered, glyph)

	if glyph != p.target[pos] {
		p.fail()
		return true
	}

	if p.onAct != nil {
		p.onAct(glyph, pos)
	}
	if len(p.entered) == len(p.target) {
		p.phase = PhaseSolved
		p.cancelPending()
		p.cb.Success()
	}
	return true
}

func (p *Puzzle) hitTest(x, y float64) int {
	click := puzzle.Point{X: x, Y: y}
	best := -1
	bestDist := p.hitRadius
	for i := range p.glyphs {
		d := puzzle.Dist(click, p.glyphs[i])
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// fail clears player progress, counts the attempt, and schedules a replay of
// the unchanged sequence after a short pause.
func (p *Puzzle) fail() {
	p.attempts++
	p.entered = p.entered[:0]
	p.phase = PhaseIdle
	p.cb.Failure(p.attempts)
	if p.attempts >= p.warnAt {
		p.cb.Warning(p.attempts)
	}

	if p.timers != nil {
		handle := p.timers.After(clock.Millis(retryPauseMillis), func() {
			if p.phase == PhaseIdle {
				p.StartPlayback()
			}
		})
		p.handles = append(p.handles, handle)
	}
}

// cancelPending drops every playback timer this puzzle scheduled.
func (p *Puzzle) cancelPending() {
	if p.timers != nil {
		for _, handle := range p.handles {
			p.timers.Cancel(handle)
		}
	}
	p.handles = p.handles[:0]
}

// Update advances cosmetic animation. Timed behavior lives on the timer set.
func (p *Puzzle) Update() {}

// Reset cancels pending playback, regenerates the sequence, and returns the
// puzzle to its initial state.
func (p *Puzzle) Reset() {
	p.cancelPending()
	p.entered = p.entered[:0]
	p.attempts = 0
	p.phase = PhaseIdle
	p.generate()
}

// Teardown cancels pending playback without mutating puzzle state. Scenes
// call it on exit so a torn-down puzzle cannot receive late highlights.
func (p *Puzzle) Teardown() {
	p.cancelPending()
}

// Solved reports whether the player reproduced the full sequence.
func (p *Puzzle) Solved() bool { return p.phase == PhaseSolved }

// Attempts returns the failed attempt count.
func (p *Puzzle) Attempts() int { return p.attempts }

// Phase returns the current interaction mode.
func (p *Puzzle) Phase() Phase { return p.phase }

// GlyphCount returns the number of clickable glyphs.
func (p *Puzzle) GlyphCount() int { return len(p.glyphs) }

// Target returns a copy of the generated sequence.
func (p *Puzzle) Target() []int {
	out := make([]int, len(p.target))
	copy(out, p.target)
	return out
}

// Entered returns a copy of the player's running sequence.
func (p *Puzzle) Entered() []int {
	out := make([]int, len(p.entered))
	copy(out, p.entered)
	return out
}
