// Package scenario loads scripted playthroughs written in Lua and replays
// them against a live game session. Scripts build a step list through a
// Scenario userdata; the runner executes the steps in order and fails on the
// first unmet expectation.
package scenario

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

// Scenario is a named sequence of playthrough steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadFile evaluates a Lua script from disk. The script must return a
// Scenario value.
func LoadFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := evaluate(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// Load evaluates a Lua script from a reader. The script must return a
// Scenario value.
func Load(r io.Reader, name string) (*Scenario, error) {
	state := newState()
	if err := state.Load(r, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := evaluate(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func evaluate(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}
