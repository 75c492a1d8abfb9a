package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/neno/pkg/memory"
)

var (
	recallFactToolName    = "recall_fact"
	recallFactDescription = "Recall personal facts the user told neno (name, age, city, doctor, medication...). Pass a kind to get a single fact, or leave it empty to get every known fact."
)

// RecallFactInput represents the input arguments for the recall_fact tool.
type RecallFactInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"fact kind such as name, city, doctor or medication; empty for all"`
}

// RecallFactOutput represents the structured output of a fact recall.
type RecallFactOutput struct {
	Facts []memory.Fact `json:"facts"`
}

func (s *Server) handleRecallFact(ctx context.Context, _ *mcp.CallToolRequest, input RecallFactInput) (*mcp.CallToolResult, RecallFactOutput, error) {
	facts, err := s.recall(ctx, input.Kind)
	if err != nil {
		return errorResult("Memory recall failed: %v", err), RecallFactOutput{}, nil
	}

	output := RecallFactOutput{Facts: facts}
	result, err := jsonResult(output)
	if err != nil {
		return errorResult("Failed to serialize results: %v", err), RecallFactOutput{}, nil
	}
	return result, output, nil
}

func (s *Server) recall(ctx context.Context, rawKind string) ([]memory.Fact, error) {
	if rawKind == "" {
		facts, err := memory.RecallAll(ctx, s.config.History)
		if err != nil {
			return nil, err
		}
		if facts == nil {
			facts = []memory.Fact{}
		}
		return facts, nil
	}

	kind, err := memory.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}

	value, ok, err := memory.Recall(ctx, s.config.History, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []memory.Fact{}, nil
	}
	return []memory.Fact{{Kind: kind, Value: value}}, nil
}
