package scenario

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/louisbranch/aikira.quest/internal/engine/session"
)

// dialogueClickBudget bounds skip_dialogue so a script cannot spin forever
// on a conversation that never ends.
const dialogueClickBudget = 200

// Runner replays scenarios against sessions started from a registry.
type Runner struct {
	registry *session.Registry
	logger   *log.Logger
}

// NewRunner builds a runner over the given registry.
func NewRunner(registry *session.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{registry: registry, logger: logger}
}

// Run executes every step in order. It stops at the first failing step and
// wraps the error with the step position.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario is required")
	}

	var sess *session.Session
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step.Kind != "start" && sess == nil {
			return fmt.Errorf("step %d (%s): no session started", i+1, step.Kind)
		}

		var err error
		sess, err = r.runStep(ctx, sess, step)
		if err != nil {
			return fmt.Errorf("scenario %q step %d (%s): %w", scenario.Name, i+1, step.Kind, err)
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, sess *session.Session, step Step) (*session.Session, error) {
	switch step.Kind {
	case "start":
		started, err := r.registry.Start(ctx, stringArg(step, "slot"))
		if err != nil {
			return sess, err
		}
		r.logger.Printf("scenario session %s started", started.ID())
		return started, nil
	case "advance":
		sess.AdvanceMillis(ctx, intArg(step, "millis"))
	case "click":
		sess.Click(ctx, floatArg(step, "x"), floatArg(step, "y"))
	case "key":
		sess.Key(ctx, stringArg(step, "name"))
	case "type_text":
		sess.Type(ctx, stringArg(step, "text"))
	case "skip_dialogue":
		for i := 0; i < dialogueClickBudget; i++ {
			if sess.View().Dialogue == nil {
				return sess, nil
			}
			sess.Click(ctx, 400, 300)
		}
		return sess, fmt.Errorf("dialogue still active after %d clicks", dialogueClickBudget)
	case "goto_scene":
		return sess, sess.TransitionTo(ctx, stringArg(step, "name"))
	case "reset_terminal":
		return sess, sess.ResetTerminal(ctx)
	case "reset_progress":
		return sess, sess.ResetProgress(ctx)
	case "claim_reward":
		result, err := sess.Claim(ctx)
		if err != nil {
			return sess, err
		}
		if result.Error != "" {
			return sess, fmt.Errorf("mint rejected: %s", result.Error)
		}
	case "expect_scene":
		if got, want := sess.View().Scene, stringArg(step, "name"); got != want {
			return sess, fmt.Errorf("scene = %q, want %q", got, want)
		}
	case "expect_phase":
		if got, want := sess.View().Phase, stringArg(step, "name"); got != want {
			return sess, fmt.Errorf("phase = %q, want %q", got, want)
		}
	case "expect_chapter":
		if got, want := sess.View().Chapter, intArg(step, "value"); got != want {
			return sess, fmt.Errorf("chapter = %d, want %d", got, want)
		}
	case "expect_clue":
		want := stringArg(step, "id")
		if clues := sess.View().Clues; !slices.Contains(clues, want) {
			return sess, fmt.Errorf("clue %q not held, have %v", want, clues)
		}
	case "expect_puzzle":
		puzzle := sess.View().Puzzle
		want := stringArg(step, "kind")
		if puzzle == nil {
			return sess, fmt.Errorf("no puzzle active, want %q", want)
		}
		if puzzle.Kind != want {
			return sess, fmt.Errorf("puzzle = %q, want %q", puzzle.Kind, want)
		}
	default:
		return sess, fmt.Errorf("unknown step kind")
	}
	return sess, nil
}

func stringArg(step Step, key string) string {
	value, _ := step.Args[key].(string)
	return value
}

func intArg(step Step, key string) int {
	switch value := step.Args[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

func floatArg(step Step, key string) float64 {
	switch value := step.Args[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}
