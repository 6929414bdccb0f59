// Package service hosts the MCP server: tool registration over the session
// registry and transport selection for stdio and HTTP runs.
package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aikira.quest/internal/engine/session"
	"github.com/louisbranch/aikira.quest/internal/platform/branding"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// Server binds the MCP protocol server to a session registry.
type Server struct {
	mcpServer *mcp.Server
	registry  *session.Registry
}

type registrationModule struct {
	name     string
	register func(server *mcp.Server, registry *session.Registry)
}

func newRegistrationModules() []registrationModule {
	return []registrationModule{
		{name: "session-tools", register: registerSessionTools},
		{name: "game-tools", register: registerGameTools},
		{name: "resources", register: registerResources},
	}
}

// New creates a configured MCP server with every tool registered against the
// given registry.
func New(registry *session.Registry) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{})
	for _, module := range newRegistrationModules() {
		module.register(mcpServer, registry)
	}
	return &Server{mcpServer: mcpServer, registry: registry}
}
