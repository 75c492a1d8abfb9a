// Package openai is a chat.Backend over the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/papercomputeco/neno/pkg/chat"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Config configures the OpenAI backend.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Backend calls chat completions through the official SDK.
type Backend struct {
	client sdk.Client
	model  string
}

// New creates an OpenAI backend.
func New(c Config) *Backend {
	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithMaxRetries(1),
	}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(c.BaseURL, "/")+"/"))
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	return &Backend{
		client: sdk.NewClient(opts...),
		model:  model,
	}
}

func (b *Backend) Name() string {
	return "openai"
}

func (b *Backend) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(b.model),
		Messages: make([]sdk.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, m := range messages {
		switch m.Role {
		case chat.RoleSystem:
			params.Messages = append(params.Messages, sdk.SystemMessage(m.Content))
		case chat.RoleAssistant:
			params.Messages = append(params.Messages, sdk.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, sdk.UserMessage(m.Content))
		}
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &chat.StatusError{Backend: b.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
