package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

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

type fakeWallet struct{ connected bool }

func (w fakeWallet) Connected() bool { return w.connected }
func (w fakeWallet) Address() string { return "0xAB" }

type fakeMinter struct{ mints int }

func (m *fakeMinter) MintReward(context.Context, reward.Claim) (reward.MintResult, error) {
	m.mints++
	return reward.MintResult{ID: "mint-1"}, nil
}

func testRegistry() *session.Registry {
	return session.NewRegistry(session.Config{
		Store:   newMemStore(),
		Wallet:  fakeWallet{connected: true},
		Minter:  &fakeMinter{},
		NewSeed: func() int64 { return 11 },
	})
}

// connect serves the MCP server over an in-memory transport and returns a
// connected client session.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	sess, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		sess.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return sess
}

func callTool(t *testing.T, sess *mcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := sess.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("call %s returned tool error: %+v", name, result.Content)
	}
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal %s output: %v", name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal %s output: %v", name, err)
	}
	return out
}

func view(out map[string]any) map[string]any {
	v, _ := out["view"].(map[string]any)
	return v
}

func TestListToolsExposesGameSurface(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	listed, err := sess.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	names := make(map[string]bool, len(listed.Tools))
	for _, tool := range listed.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"session_start", "session_view", "session_advance", "session_click",
		"session_key", "session_type", "session_end",
		"scene_transition", "terminal_reset", "progress_reset", "reward_claim",
	} {
		if !names[want] {
			t.Errorf("tool %s not listed", want)
		}
	}
}

func TestSessionStartOpensOnIntro(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	out := callTool(t, sess, "session_start", map[string]any{"slot": "alpha"})
	id, _ := out["session_id"].(string)
	if id == "" {
		t.Fatal("expected a session id")
	}
	v := view(out)
	if v["scene"] != "intro" {
		t.Errorf("scene = %v, want intro", v["scene"])
	}
	if v["dialogue"] == nil {
		t.Error("expected intro dialogue to be active")
	}
}

func TestClickAdvancesDialogue(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	out := callTool(t, sess, "session_start", map[string]any{"slot": "alpha"})
	id := out["session_id"].(string)

	for i := 0; i < 100; i++ {
		out = callTool(t, sess, "session_click", map[string]any{
			"session_id": id, "x": 400.0, "y": 300.0,
		})
		if view(out)["dialogue"] == nil {
			break
		}
	}
	if view(out)["dialogue"] != nil {
		t.Fatal("dialogue never finished")
	}
	scene, _ := view(out)["scene"].(string)
	if !strings.HasPrefix(scene, "chapter") {
		t.Errorf("scene = %q, want a chapter after the title card", scene)
	}
}

func TestTransitionToLockedChapterFails(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	out := callTool(t, sess, "session_start", map[string]any{"slot": "alpha"})
	id := out["session_id"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := sess.CallTool(ctx, &mcp.CallToolParams{
		Name:      "scene_transition",
		Arguments: map[string]any{"session_id": id, "scene": "chapter3"},
	})
	if err != nil {
		t.Fatalf("call scene_transition: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error for a locked chapter")
	}
}

func TestUnknownSessionIsAToolError(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := sess.CallTool(ctx, &mcp.CallToolParams{
		Name:      "session_view",
		Arguments: map[string]any{"session_id": "missing"},
	})
	if err != nil {
		t.Fatalf("call session_view: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error for an unknown session")
	}
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text += tc.Text
		}
	}
	// The client sees the reader-facing message, not the internal one.
	if !strings.Contains(text, "Session missing was not found") {
		t.Fatalf("error text = %q", text)
	}
}

func TestSessionEndRemovesSession(t *testing.T) {
	registry := testRegistry()
	sess := connect(t, New(registry))

	out := callTool(t, sess, "session_start", map[string]any{"slot": "alpha"})
	id := out["session_id"].(string)

	out = callTool(t, sess, "session_end", map[string]any{"session_id": id})
	if out["ended"] != true {
		t.Errorf("ended = %v, want true", out["ended"])
	}
	if registry.Len() != 0 {
		t.Errorf("registry len = %d, want 0", registry.Len())
	}
}

func TestReadSessionStateResource(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	out := callTool(t, sess, "session_start", map[string]any{"slot": "alpha"})
	id := out["session_id"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resource, err := sess.ReadResource(ctx, &mcp.ReadResourceParams{URI: "session://" + id + "/state"})
	if err != nil {
		t.Fatalf("read session state: %v", err)
	}
	if len(resource.Contents) != 1 {
		t.Fatalf("contents len = %d, want 1", len(resource.Contents))
	}
	var snapshot map[string]any
	if err := json.Unmarshal([]byte(resource.Contents[0].Text), &snapshot); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snapshot["scene"] != "intro" {
		t.Errorf("scene = %v, want intro", snapshot["scene"])
	}
}

func TestReadSessionStateResourceUnknownSession(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := sess.ReadResource(ctx, &mcp.ReadResourceParams{URI: "session://missing/state"}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestReadDialogueLibraryResource(t *testing.T) {
	sess := connect(t, New(testRegistry()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resource, err := sess.ReadResource(ctx, &mcp.ReadResourceParams{URI: "dialogue://library"})
	if err != nil {
		t.Fatalf("read dialogue library: %v", err)
	}
	if len(resource.Contents) != 1 {
		t.Fatalf("contents len = %d, want 1", len(resource.Contents))
	}
	var payload struct {
		Conversations []struct {
			Chapter int    `json:"chapter"`
			Section string `json:"section"`
		} `json:"conversations"`
	}
	if err := json.Unmarshal([]byte(resource.Contents[0].Text), &payload); err != nil {
		t.Fatalf("unmarshal library: %v", err)
	}
	if len(payload.Conversations) == 0 {
		t.Fatal("expected at least one conversation")
	}
	found := false
	for _, c := range payload.Conversations {
		if c.Chapter == 1 && c.Section == "intro" {
			found = true
		}
	}
	if !found {
		t.Error("chapter 1 intro conversation not listed")
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	err := New(testRegistry()).Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}
