// Package scene orchestrates the game's screens: the title card, the five
// trial chapters, and the reward vault. Each scene owns its puzzle, its
// timers, and its slice of the shared character cast.
package scene

import (
	"context"
	"log"

	"github.com/louisbranch/aikira.quest/internal/engine/character"
	"github.com/louisbranch/aikira.quest/internal/engine/clock"
	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
	"github.com/louisbranch/aikira.quest/internal/engine/progress"
)

// Scene is one screen of the game. Enter and Exit bracket the scene's
// lifetime; Exit is the cancellation point for every timer the scene
// scheduled. HandleInput reports whether the event was consumed.
type Scene interface {
	Name() string
	Enter(ctx context.Context)
	Exit()
	Update()
	HandleInput(ctx context.Context, ev Event) bool
	Resize(width, height int)
}

// Cast bundles the three character singletons shared by every scene.
type Cast struct {
	Aikira *character.Aikira
	Cliza  *character.Cliza
	Byte   *character.Byte
}

// NewCast builds the character singletons against the session timer set.
func NewCast(timers *clock.TimerSet) *Cast {
	return &Cast{
		Aikira: character.NewAikira(),
		Cliza:  character.NewCliza(),
		Byte:   character.NewByte(timers),
	}
}

// Deps is everything a scene needs injected. Scenes never reach for globals.
type Deps struct {
	Clock    *clock.Clock
	Timers   *clock.TimerSet
	Cast     *Cast
	Dialogue *dialogue.Library
	Tracker  *progress.Tracker
	Logger   *log.Logger
	// NewSeed supplies fresh puzzle seeds. Tests pin it for determinism.
	NewSeed func() int64
}

// Phase is the common chapter scene state machine.
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseIntro
	PhasePuzzle
	PhaseSuccess
	PhaseFailure
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseIntro:
		return "intro"
	case PhasePuzzle:
		return "puzzle"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}
