package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aikira.quest/internal/engine/dialogue"
	"github.com/louisbranch/aikira.quest/internal/engine/session"
)

// SessionStateResourceTemplate defines the MCP resource template for session
// state snapshots.
func SessionStateResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "session_state",
		Title:       "Session state",
		Description: "Readable snapshot of a running session. URI format: session://{session_id}/state",
		MIMEType:    "application/json",
		URITemplate: "session://{session_id}/state",
	}
}

// SessionStateResourceHandler returns a readable session state resource.
func SessionStateResourceHandler(registry *session.Registry) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if registry == nil {
			return nil, fmt.Errorf("session registry is not configured")
		}

		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("session ID is required; use URI format session://{session_id}/state")
		}
		uri := req.Params.URI

		sessionID, err := parseSessionIDFromStateURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse session ID from URI: %w", err)
		}

		s, err := registry.Get(sessionID)
		if err != nil {
			return nil, toolError(err)
		}

		data, err := json.MarshalIndent(s.View(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal session state: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// parseSessionIDFromStateURI extracts the session ID from a URI of the form
// session://{session_id}/state.
func parseSessionIDFromStateURI(uri string) (string, error) {
	prefix := "session://"
	suffix := "/state"

	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("URI must start with %q", prefix)
	}
	rest := strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(rest, suffix) {
		return "", fmt.Errorf("URI must end with %q", suffix)
	}

	sessionID := strings.TrimSpace(strings.TrimSuffix(rest, suffix))
	if sessionID == "" {
		return "", fmt.Errorf("session ID is required in URI")
	}
	if strings.ContainsAny(sessionID, "/?#") {
		return "", fmt.Errorf("session ID must not contain path segments, query parameters, or fragments")
	}
	return sessionID, nil
}

// DialogueLibraryResource defines the MCP resource exposing the embedded
// conversation library.
func DialogueLibraryResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "dialogue_library",
		Title:       "Dialogue library",
		Description: "Readable listing of every scripted conversation by chapter and section",
		MIMEType:    "application/json",
		URI:         "dialogue://library",
	}
}

// DialogueLibraryResourceHandler returns a readable dialogue library resource.
func DialogueLibraryResourceHandler(library *dialogue.Library) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if library == nil {
			return nil, fmt.Errorf("dialogue library is not configured")
		}

		uri := DialogueLibraryResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		payload := struct {
			Conversations []dialogue.CatalogEntry `json:"conversations"`
		}{Conversations: library.Catalog()}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal dialogue library: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
