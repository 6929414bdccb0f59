package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aikira.quest/internal/engine/session"
)

// TransitionInput represents the MCP tool input for a scene transition.
type TransitionInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Scene     string `json:"scene" jsonschema:"scene name: intro, chapter1 through chapter5, reward"`
}

// TransitionResult represents the MCP tool output for a scene transition.
type TransitionResult struct {
	View session.View `json:"view" jsonschema:"session snapshot in the new scene"`
}

// TransitionTool defines the MCP tool schema for scene transitions.
func TransitionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_transition",
		Description: "Jumps to a scene by name. Chapters beyond the unlocked one are refused.",
	}
}

// TransitionHandler executes a scene transition request.
func TransitionHandler(registry *session.Registry) mcp.ToolHandlerFor[TransitionInput, TransitionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransitionInput) (*mcp.CallToolResult, TransitionResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, TransitionResult{}, toolError(err)
		}
		if err := s.TransitionTo(ctx, input.Scene); err != nil {
			return nil, TransitionResult{}, toolError(err)
		}
		return nil, TransitionResult{View: s.View()}, nil
	}
}

// TerminalResetInput represents the MCP tool input for a terminal reset.
type TerminalResetInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// TerminalResetResult represents the MCP tool output for a terminal reset.
type TerminalResetResult struct {
	View session.View `json:"view" jsonschema:"session snapshot after the reset"`
}

// TerminalResetTool defines the MCP tool schema for resetting a locked vault terminal.
func TerminalResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "terminal_reset",
		Description: "Reboots the vault terminal after a lockout, restoring code entry.",
	}
}

// TerminalResetHandler executes a terminal reset request.
func TerminalResetHandler(registry *session.Registry) mcp.ToolHandlerFor[TerminalResetInput, TerminalResetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TerminalResetInput) (*mcp.CallToolResult, TerminalResetResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, TerminalResetResult{}, toolError(err)
		}
		if err := s.ResetTerminal(ctx); err != nil {
			return nil, TerminalResetResult{}, toolError(err)
		}
		return nil, TerminalResetResult{View: s.View()}, nil
	}
}

// ProgressResetInput represents the MCP tool input for wiping progress.
type ProgressResetInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// ProgressResetResult represents the MCP tool output for wiping progress.
type ProgressResetResult struct {
	View session.View `json:"view" jsonschema:"session snapshot after the wipe"`
}

// ProgressResetTool defines the MCP tool schema for wiping save progress.
func ProgressResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "progress_reset",
		Description: "Wipes the save slot and restarts the session from chapter one.",
	}
}

// ProgressResetHandler executes a progress reset request.
func ProgressResetHandler(registry *session.Registry) mcp.ToolHandlerFor[ProgressResetInput, ProgressResetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProgressResetInput) (*mcp.CallToolResult, ProgressResetResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, ProgressResetResult{}, toolError(err)
		}
		if err := s.ResetProgress(ctx); err != nil {
			return nil, ProgressResetResult{}, toolError(err)
		}
		return nil, ProgressResetResult{View: s.View()}, nil
	}
}

// RewardClaimInput represents the MCP tool input for claiming the completion reward.
type RewardClaimInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// RewardClaimResult represents the MCP tool output for claiming the completion reward.
type RewardClaimResult struct {
	MintID string       `json:"mint_id,omitempty" jsonschema:"identifier of the minted reward"`
	View   session.View `json:"view" jsonschema:"session snapshot after the claim"`
}

// RewardClaimTool defines the MCP tool schema for claiming the completion reward.
func RewardClaimTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "reward_claim",
		Description: "Claims the one-time completion reward once all five chapters are solved.",
	}
}

// RewardClaimHandler executes a reward claim request.
func RewardClaimHandler(registry *session.Registry) mcp.ToolHandlerFor[RewardClaimInput, RewardClaimResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RewardClaimInput) (*mcp.CallToolResult, RewardClaimResult, error) {
		s, err := registry.Get(input.SessionID)
		if err != nil {
			return nil, RewardClaimResult{}, toolError(err)
		}
		result, err := s.Claim(ctx)
		if err != nil {
			return nil, RewardClaimResult{}, toolError(err)
		}
		return nil, RewardClaimResult{MintID: result.ID, View: s.View()}, nil
	}
}
