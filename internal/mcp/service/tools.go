package service

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
	"github.com/louisbranch/aikira.quest/internal/engine/session"
	"github.com/louisbranch/aikira.quest/internal/mcp/domain"
)

// registerSessionTools wires session lifecycle and input dispatch tools.
func registerSessionTools(server *mcp.Server, registry *session.Registry) {
	mcp.AddTool(server, domain.SessionStartTool(), domain.SessionStartHandler(registry))
	mcp.AddTool(server, domain.SessionViewTool(), domain.SessionViewHandler(registry))
	mcp.AddTool(server, domain.AdvanceTool(), domain.AdvanceHandler(registry))
	mcp.AddTool(server, domain.ClickTool(), domain.ClickHandler(registry))
	mcp.AddTool(server, domain.KeyTool(), domain.KeyHandler(registry))
	mcp.AddTool(server, domain.TypeTool(), domain.TypeHandler(registry))
	mcp.AddTool(server, domain.SessionEndTool(), domain.SessionEndHandler(registry))
}

// registerGameTools wires scene navigation, recovery, and reward tools.
func registerGameTools(server *mcp.Server, registry *session.Registry) {
	mcp.AddTool(server, domain.TransitionTool(), domain.TransitionHandler(registry))
	mcp.AddTool(server, domain.TerminalResetTool(), domain.TerminalResetHandler(registry))
	mcp.AddTool(server, domain.ProgressResetTool(), domain.ProgressResetHandler(registry))
	mcp.AddTool(server, domain.RewardClaimTool(), domain.RewardClaimHandler(registry))
}

// registerResources wires the readable state and content resources.
func registerResources(server *mcp.Server, registry *session.Registry) {
	server.AddResourceTemplate(domain.SessionStateResourceTemplate(), domain.SessionStateResourceHandler(registry))

	library, err := dialogue.Load()
	if err != nil {
		log.Printf("dialogue library resource unavailable: %v", err)
		return
	}
	server.AddResource(domain.DialogueLibraryResource(), domain.DialogueLibraryResourceHandler(library))
}
