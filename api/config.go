// Package api provides the neno HTTP API for managing reminders, talking to
// the assistant and inspecting its memory.
package api

import (
	"github.com/papercomputeco/neno/api/mcp"
	"github.com/papercomputeco/neno/pkg/assistant"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/reminder/service"
)

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., "127.0.0.1:8787")
	ListenAddr string

	Reminders *service.Service
	Assistant *assistant.Assistant
	History   memory.Driver
	Knowledge *knowledge.Base

	// MCP is mounted at /mcp when set.
	MCP *mcp.Server
}
