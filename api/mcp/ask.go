package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/neno/pkg/interpreter"
)

var (
	askToolName    = "ask"
	askDescription = "Send a message to neno in Spanish, exactly as a user would type it, and get its reply. Reminders, personal facts and knowledge base questions are handled the same way as in a conversation."
)

// AskInput represents the input arguments for the ask tool.
type AskInput struct {
	Text string `json:"text" jsonschema:"the message for the assistant"`
}

func (s *Server) handleAsk(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, interpreter.Result, error) {
	if strings.TrimSpace(input.Text) == "" {
		return errorResult("text is required"), interpreter.Result{}, nil
	}

	output := s.config.Assistant.Handle(ctx, input.Text)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: output.Reply},
		},
	}, output, nil
}
