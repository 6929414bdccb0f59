// Package branding centralizes user-facing product naming.
package branding

// AppName is the product name shown to players and MCP clients.
const AppName = "Aikira Quest"
