package scene

import (
	"context"

	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
	"github.com/louisbranch/aikira.quest/internal/engine/reward"
)

// RewardScene is the final screen: the vault stands open and a finished
// playthrough can mint its proof.
type RewardScene struct {
	deps    Deps
	runner  *Runner
	claimer *reward.Claimer

	lastResult reward.MintResult
	lastErr    error
}

// NewRewardScene builds the reward scene around the claim gate.
func NewRewardScene(deps Deps, claimer *reward.Claimer) *RewardScene {
	return &RewardScene{deps: deps, runner: NewRunner(deps.Timers), claimer: claimer}
}

func (s *RewardScene) Name() string { return "reward" }

func (s *RewardScene) Enter(ctx context.Context) {
	cast := s.deps.Cast
	cast.Aikira.Show()
	cast.Cliza.Show()
	cast.Byte.Show()
	cast.Byte.DecreaseSuspicion(100)

	entries, err := s.deps.Dialogue.Lookup(6, dialogue.SectionIntro)
	if err != nil {
		s.deps.Logger.Printf("reward dialogue: %v", err)
		return
	}
	s.runner.Start(entries, func() {})
}

func (s *RewardScene) Exit() {
	s.runner.Stop()
	s.deps.Timers.CancelAll()
}

func (s *RewardScene) Update() {
	s.deps.Cast.Cliza.Update()
}

// HandleInput advances the closing conversation; once it ends, enter
// attempts the mint.
func (s *RewardScene) HandleInput(ctx context.Context, ev Event) bool {
	if s.runner.Active() {
		if ev.Kind == EventClick || (ev.Kind == EventKey && ev.Key == KeyEnter) {
			s.runner.Advance()
			return true
		}
		return false
	}
	if ev.Kind == EventKey && ev.Key == KeyEnter {
		s.Claim(ctx)
		return true
	}
	return false
}

// Claim performs the one-shot mint for the tracked playthrough.
func (s *RewardScene) Claim(ctx context.Context) {
	result, err := s.claimer.Claim(ctx, s.deps.Tracker.Snapshot())
	s.lastResult, s.lastErr = result, err
	if err != nil {
		s.deps.Logger.Printf("reward claim: %v", err)
	}
}

func (s *RewardScene) Resize(width, height int) {
	s.deps.Cast.Aikira.SetPosition(float64(width)/2, 80)
	s.deps.Cast.Cliza.SetPosition(float64(width)*0.3, float64(height)*0.8)
	s.deps.Cast.Byte.SetPosition(float64(width)*0.7, float64(height)*0.8)
}

// Runner exposes the closing conversation for views.
func (s *RewardScene) Runner() *Runner { return s.runner }

// LastClaim returns the most recent mint outcome for views.
func (s *RewardScene) LastClaim() (reward.MintResult, error) {
	return s.lastResult, s.lastErr
}
