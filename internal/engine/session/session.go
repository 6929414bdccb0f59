// Package session hosts one running game per player: the frame clock, the
// scene graph, and the shared cast, behind a facade the transports drive.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
	"github.com/louisbranch/aikira.quest/internal/engine/progress"
	"github.com/louisbranch/aikira.quest/internal/engine/reward"
	"github.com/louisbranch/aikira.quest/internal/engine/scene"
	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
	"github.com/louisbranch/aikira.quest/internal/platform/id"
	"github.com/louisbranch/aikira.quest/internal/platform/random"
)

const tracerName = "github.com/louisbranch/aikira.quest/internal/engine/session"

// Config wires a session's collaborators.
type Config struct {
	Store  progress.Store
	Slot   string
	Logger *log.Logger
	Wallet reward.Wallet
	Minter reward.Minter
	// NewSeed supplies puzzle seeds; defaults to crypto-seeded randomness.
	NewSeed func() int64
}

// Session is one running game. All methods serialize on an internal mutex
// so the engine underneath only ever runs on one goroutine at a time.
type Session struct {
	mu sync.Mutex

	id      string
	clock   *clock.Clock
	timers  *clock.TimerSet
	manager *scene.Manager
	tracker *progress.Tracker
	logger  *log.Logger
	tracer  trace.Tracer

	chapter5 *scene.CodeScene
	rewardSc *scene.RewardScene
}

// New builds a session, registers every scene, and opens on the title card.
func New(ctx context.Context, cfg Config) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	newSeed := cfg.NewSeed
	if newSeed == nil {
		newSeed = func() int64 {
			seed, err := random.NewSeed()
			if err != nil {
				logger.Printf("crypto seed unavailable, using clock: %v", err)
				return time.Now().UnixNano()
			}
			return seed
		}
	}
	slot := cfg.Slot
	if slot == "" {
		slot = "default"
	}

	lib, err := dialogue.Load()
	if err != nil {
		return nil, err
	}

	c := clock.New()
	timers := clock.NewTimerSet(c)
	tracker := progress.NewTracker(ctx, cfg.Store, slot, logger)

	deps := scene.Deps{
		Clock:    c,
		Timers:   timers,
		Cast:     scene.NewCast(timers),
		Dialogue: lib,
		Tracker:  tracker,
		Logger:   logger,
		NewSeed:  newSeed,
	}

	sessionID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s := &Session{
		id:      sessionID,
		clock:   c,
		timers:  timers,
		manager: scene.NewManager(logger),
		tracker: tracker,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}

	intro := scene.NewIntroScene(deps)
	intro.SetAdvance(s.manager.TransitionTo)

	chapters := []interface {
		scene.Scene
		SetAdvance(func(ctx context.Context, name string) error)
	}{
		scene.NewSymbolScene(deps, "chapter2"),
		scene.NewMemoryScene(deps, "chapter3"),
		scene.NewRiddleScene(deps, "chapter4"),
		scene.NewNavScene(deps, "chapter5"),
	}
	ch5 := scene.NewCodeScene(deps, "reward")
	ch5.SetAdvance(s.manager.TransitionTo)
	s.chapter5 = ch5

	claimer := reward.NewClaimer(s.id, cfg.Wallet, cfg.Minter)
	rewardScene := scene.NewRewardScene(deps, claimer)
	s.rewardSc = rewardScene

	s.manager.Register(intro)
	for _, ch := range chapters {
		ch.SetAdvance(s.manager.TransitionTo)
		s.manager.Register(ch)
	}
	s.manager.Register(ch5)
	s.manager.Register(rewardScene)
	s.manager.Resize(800, 600)

	if err := s.manager.TransitionTo(ctx, "intro"); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Advance runs the given number of frames.
func (s *Session) Advance(ctx context.Context, frames int) {
	_, span := s.tracer.Start(ctx, "session.Advance")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		s.clock.Advance()
		s.timers.Tick()
		s.manager.Update()
	}
}

// AdvanceMillis runs enough frames to cover the duration.
func (s *Session) AdvanceMillis(ctx context.Context, ms int) {
	s.Advance(ctx, clock.Millis(ms))
}

// Click dispatches a pointer press and runs one frame so owned timers see
// its consequences.
func (s *Session) Click(ctx context.Context, x, y float64) bool {
	ctx, span := s.tracer.Start(ctx, "session.Click")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	handled := s.manager.HandleInput(ctx, scene.Click(x, y))
	s.step()
	return handled
}

// Key dispatches a named key press.
func (s *Session) Key(ctx context.Context, name string) bool {
	ctx, span := s.tracer.Start(ctx, "session.Key")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	handled := s.manager.HandleInput(ctx, scene.Key(name))
	s.step()
	return handled
}

// Type dispatches printable input, one rune at a time.
func (s *Session) Type(ctx context.Context, text string) bool {
	ctx, span := s.tracer.Start(ctx, "session.Type")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	handled := false
	for _, r := range text {
		if s.manager.HandleInput(ctx, scene.Rune(r)) {
			handled = true
		}
	}
	s.step()
	return handled
}

func (s *Session) step() {
	s.clock.Advance()
	s.timers.Tick()
	s.manager.Update()
}

// Resize updates the viewport for every scene that follows.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager.Resize(width, height)
}

// TransitionTo jumps to a named scene. Chapter gating applies: a chapter
// scene beyond the tracker's unlock is refused.
func (s *Session) TransitionTo(ctx context.Context, name string) error {
	ctx, span := s.tracer.Start(ctx, "session.TransitionTo")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if chapter, ok := chapterNumber(name); ok && !s.tracker.ChapterUnlocked(chapter) {
		return lockedErr(chapter)
	}
	return s.manager.TransitionTo(ctx, name)
}

// ResetTerminal recovers the chapter 5 lockout. It is only meaningful while
// the vault scene is active.
func (s *Session) ResetTerminal(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "session.ResetTerminal")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager.Current() != s.chapter5 {
		return apperrors.New(apperrors.CodeSceneTransitionInvalid, "terminal reset outside the vault scene")
	}
	s.chapter5.ResetTerminal()
	return nil
}

// ResetProgress wipes the save slot and returns to the title card.
func (s *Session) ResetProgress(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.ResetProgress")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset(ctx)
	return s.manager.TransitionTo(ctx, "intro")
}

// Claim performs the reward mint when the reward scene is active.
func (s *Session) Claim(ctx context.Context) (reward.MintResult, error) {
	ctx, span := s.tracer.Start(ctx, "session.Claim")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewardSc.Claim(ctx)
	return s.rewardSc.LastClaim()
}
