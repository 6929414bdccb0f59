package scenario

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/louisbranch/aikira.quest/internal/engine/progress"
	"github.com/louisbranch/aikira.quest/internal/engine/reward"
	"github.com/louisbranch/aikira.quest/internal/engine/session"
)

type memStore struct {
	mu    sync.Mutex
	slots map[string]progress.Progress
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[string]progress.Progress)}
}

func (m *memStore) Save(_ context.Context, slot string, p progress.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = p
	return nil
}

func (m *memStore) Load(_ context.Context, slot string) (progress.Progress, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.slots[slot]
	return p, ok, nil
}

func (m *memStore) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

type fakeWallet struct{}

func (fakeWallet) Connected() bool { return true }
func (fakeWallet) Address() string { return "0xAB" }

type fakeMinter struct{}

func (fakeMinter) MintReward(context.Context, reward.Claim) (reward.MintResult, error) {
	return reward.MintResult{ID: "mint-1"}, nil
}

func testRunner() *Runner {
	registry := session.NewRegistry(session.Config{
		Store:   newMemStore(),
		Wallet:  fakeWallet{},
		Minter:  fakeMinter{},
		NewSeed: func() int64 { return 11 },
	})
	return NewRunner(registry, nil)
}

func load(t *testing.T, src string) *Scenario {
	t.Helper()
	scenario, err := Load(strings.NewReader(src), "inline")
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	return scenario
}

func TestLoadBuildsSteps(t *testing.T) {
	scenario := load(t, `
local s = Scenario.new("smoke")
s:start("alpha")
s:advance(1000)
s:click(120, 300)
s:key("enter")
s:type_text("DINO5")
s:expect_scene("intro")
return s
`)

	if scenario.Name != "smoke" {
		t.Errorf("name = %q, want smoke", scenario.Name)
	}
	kinds := make([]string, 0, len(scenario.Steps))
	for _, step := range scenario.Steps {
		kinds = append(kinds, step.Kind)
	}
	want := []string{"start", "advance", "click", "key", "type_text", "expect_scene"}
	if len(kinds) != len(want) {
		t.Fatalf("steps = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, kinds[i], want[i])
		}
	}
	if got := scenario.Steps[1].Args["millis"]; got != 1000 {
		t.Errorf("advance millis = %v, want 1000", got)
	}
	if got := scenario.Steps[2].Args["x"]; got != 120.0 {
		t.Errorf("click x = %v, want 120", got)
	}
}

func TestLoadDefaultsNameFromChunk(t *testing.T) {
	scenario := load(t, `
local s = Scenario.new()
s:start("alpha")
return s
`)
	if scenario.Name != "inline" {
		t.Errorf("name = %q, want inline", scenario.Name)
	}
}

func TestLoadRejectsNonScenarioReturn(t *testing.T) {
	if _, err := Load(strings.NewReader(`return 42`), "inline"); err == nil {
		t.Fatal("expected error for a script not returning Scenario")
	}
}

func TestLoadRejectsBrokenScript(t *testing.T) {
	if _, err := Load(strings.NewReader(`this is not lua`), "inline"); err == nil {
		t.Fatal("expected error for invalid lua")
	}
}

func TestRunOpeningScript(t *testing.T) {
	scenario := load(t, `
local s = Scenario.new("opening")
s:start("alpha")
s:expect_scene("intro")
s:skip_dialogue()
s:expect_scene("chapter1")
s:expect_puzzle("symbol")
s:expect_chapter(1)
return s
`)

	if err := testRunner().Run(context.Background(), scenario); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunReportsFailingStep(t *testing.T) {
	scenario := load(t, `
local s = Scenario.new("wrong")
s:start("alpha")
s:expect_scene("chapter5")
return s
`)

	err := testRunner().Run(context.Background(), scenario)
	if err == nil {
		t.Fatal("expected expectation failure")
	}
	if !strings.Contains(err.Error(), "step 2 (expect_scene)") {
		t.Errorf("error missing step position: %v", err)
	}
}

func TestRunRequiresStartFirst(t *testing.T) {
	scenario := load(t, `
local s = Scenario.new("nostart")
s:click(1, 1)
return s
`)

	err := testRunner().Run(context.Background(), scenario)
	if err == nil || !strings.Contains(err.Error(), "no session started") {
		t.Fatalf("expected no-session error, got %v", err)
	}
}
