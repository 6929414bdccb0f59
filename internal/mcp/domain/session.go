package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aikira.quest/internal/engine/session"
)

// SessionStartInput represents the MCP tool input for starting a session.
type SessionStartInput struct {
	Slot string `json:"slot,omitempty" jsonschema:"save slot identifier (defaults to a shared slot)"`
}

// SessionStartResult represents the MCP tool output for starting a session.
type SessionStartResult struct {
	SessionID string       `json:"session_id" jsonschema:"session identifier"`
	View      session.View `json:"view" jsonschema:"initial session snapshot"`
}

// SessionStartTool defines the MCP tool schema for starting a session.
func SessionStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_start",
		Description: "Starts a game session bound to a save slot and opens on the title card.",
	}
}

// SessionStartHandler executes a session start request.
func SessionStartHandler(registry *session.Registry) mcp.ToolHandlerFor[SessionStartInput, SessionStartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionStartInput) (*mcp.CallToolResult, SessionStartResult, error) {
		s, err := registry.Start(ctx, input.Slot)
		if err != nil {
			return nil, SessionStartResult{}, toolError(err)
		}
		return nil, SessionStartResult{SessionID: s.ID(), View: s.View()}, nil
	}
}

// SessionViewInput represents the MCP tool input for a session snapshot.
type SessionViewInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionViewResult represents the MCP tool output for a session snapshot.
type SessionViewResult struct {
	View session.View `json:"view" jsonschema:"current session snapshot"`
}

// SessionViewTool defines the MCP tool schema for reading session state.
func SessionViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_view",
		Description: "Returns the current scene, dialogue line, puzzle state and progress for a session.",
	}
}

// SessionViewHandler executes a session view request.
func SessionViewHandler(registry *session.Registry) mcp.ToolHandlerFor[SessionViewInput, SessionViewResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SessionViewInput) (*mcp.CallToolResult, SessionViewResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, SessionViewResult{}, toolError(err)
		}
		return nil, SessionViewResult{View: s.View()}, nil
	}
}

// AdvanceInput represents the MCP tool input for running frames.
type AdvanceInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Millis    int    `json:"millis,omitempty" jsonschema:"game time to run, in milliseconds (defaults to one frame)"`
}

// AdvanceResult represents the MCP tool output after running frames.
type AdvanceResult struct {
	View session.View `json:"view" jsonschema:"session snapshot after the elapsed time"`
}

// AdvanceTool defines the MCP tool schema for running game time.
func AdvanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_advance",
		Description: "Runs game time forward so timers, playback and animations progress.",
	}
}

// AdvanceHandler executes an advance request.
func AdvanceHandler(registry *session.Registry) mcp.ToolHandlerFor[AdvanceInput, AdvanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AdvanceInput) (*mcp.CallToolResult, AdvanceResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, AdvanceResult{}, toolError(err)
		}
		if input.Millis > 0 {
			s.AdvanceMillis(ctx, input.Millis)
		} else {
			s.Advance(ctx, 1)
		}
		return nil, AdvanceResult{View: s.View()}, nil
	}
}

// ClickInput represents the MCP tool input for a pointer press.
type ClickInput struct {
	SessionID string  `json:"session_id" jsonschema:"session identifier"`
	X         float64 `json:"x" jsonschema:"scene x coordinate"`
	Y         float64 `json:"y" jsonschema:"scene y coordinate"`
}

// InputResult represents the MCP tool output for any input dispatch.
type InputResult struct {
	Handled bool         `json:"handled" jsonschema:"whether the scene consumed the input"`
	View    session.View `json:"view" jsonschema:"session snapshot after the input"`
}

// ClickTool defines the MCP tool schema for pointer input.
func ClickTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_click",
		Description: "Sends a pointer press to the current scene: advances dialogue, activates tokens and glyphs.",
	}
}

// ClickHandler executes a click request.
func ClickHandler(registry *session.Registry) mcp.ToolHandlerFor[ClickInput, InputResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClickInput) (*mcp.CallToolResult, InputResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, InputResult{}, toolError(err)
		}
		handled := s.Click(ctx, input.X, input.Y)
		return nil, InputResult{Handled: handled, View: s.View()}, nil
	}
}

// KeyInput represents the MCP tool input for a named key press.
type KeyInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Key       string `json:"key" jsonschema:"key name: enter, delete, left, right, up, down, clear, hint"`
}

// KeyTool defines the MCP tool schema for named key input.
func KeyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_key",
		Description: "Sends a named key press: movement, enter, delete, clear, hint.",
	}
}

// KeyHandler executes a key press request.
func KeyHandler(registry *session.Registry) mcp.ToolHandlerFor[KeyInput, InputResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input KeyInput) (*mcp.CallToolResult, InputResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, InputResult{}, toolError(err)
		}
		handled := s.Key(ctx, input.Key)
		return nil, InputResult{Handled: handled, View: s.View()}, nil
	}
}

// TypeInput represents the MCP tool input for printable text.
type TypeInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Text      string `json:"text" jsonschema:"printable characters, dispatched one at a time"`
}

// TypeTool defines the MCP tool schema for printable input.
func TypeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_type",
		Description: "Types printable characters into the current scene, such as vault code entry.",
	}
}

// TypeHandler executes a typing request.
func TypeHandler(registry *session.Registry) mcp.ToolHandlerFor[TypeInput, InputResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TypeInput) (*mcp.CallToolResult, InputResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, InputResult{}, toolError(err)
		}
		handled := s.Type(ctx, input.Text)
		return nil, InputResult{Handled: handled, View: s.View()}, nil
	}
}

// SessionEndInput represents the MCP tool input for ending a session.
type SessionEndInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionEndResult represents the MCP tool output for ending a session.
type SessionEndResult struct {
	Ended bool `json:"ended" jsonschema:"whether the session was removed"`
}

// SessionEndTool defines the MCP tool schema for ending a session.
func SessionEndTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_end",
		Description: "Ends a session. Progress stays in the save slot.",
	}
}

// SessionEndHandler executes a session end request.
func SessionEndHandler(registry *session.Registry) mcp.ToolHandlerFor[SessionEndInput, SessionEndResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SessionEndInput) (*mcp.CallToolResult, SessionEndResult, error) {
		if _, err := registry.Get(input.SessionID); err != nil {
			return nil, SessionEndResult{}, toolError(err)
		}
		registry.End(input.SessionID)
		return nil, SessionEndResult{Ended: true}, nil
	}
}
