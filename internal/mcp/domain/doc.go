// Package domain defines the MCP tool surface for driving game sessions:
// typed inputs and outputs, tool schemas, and handlers bound to the session
// registry.
package domain
