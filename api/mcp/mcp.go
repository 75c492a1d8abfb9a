// Package mcp provides an MCP (Model Context Protocol) server exposing the
// neno reminders, the interpreter and the conversation memory as tools.
package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/neno/pkg/assistant"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/utils"
)

type Config struct {
	// Reminders backs the add_reminder and list_reminders tools.
	Reminders *service.Service

	// Assistant answers the ask tool.
	Assistant *assistant.Assistant

	// History for fact recall (optional, enables the recall_fact tool)
	History memory.Driver

	// Noop for empty MCP server
	Noop bool

	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the reminder and assistant tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "neno",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)
	s.mcpServer = mcpServer
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	if c.Noop {
		return s, nil
	}

	if c.Reminders == nil {
		return nil, errors.New("reminder service is required")
	}
	if c.Assistant == nil {
		return nil, errors.New("assistant is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        addReminderToolName,
		Description: addReminderDescription,
	}, s.handleAddReminder)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        listRemindersToolName,
		Description: listRemindersDescription,
	}, s.handleListReminders)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        askToolName,
		Description: askDescription,
	}, s.handleAsk)

	if c.History != nil {
		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        recallFactToolName,
			Description: recallFactDescription,
		}, s.handleRecallFact)
	}

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// jsonResult renders v as the text content of a successful result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil
}
