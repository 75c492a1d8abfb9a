// Package anthropic is a chat.Backend over the Anthropic messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/papercomputeco/neno/pkg/chat"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-3-5-haiku-latest"

	maxTokens = 1024
)

// Config configures the Anthropic backend.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Backend calls the messages API through the official SDK.
type Backend struct {
	client sdk.Client
	model  string
}

// New creates an Anthropic backend.
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
	return "anthropic"
}

// Complete sends the conversation. System messages go to the system field,
// the rest keep their order.
func (b *Backend) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(b.model),
		MaxTokens: maxTokens,
	}

	for _, m := range messages {
		switch m.Role {
		case chat.RoleSystem:
			params.System = append(params.System, sdk.TextBlockParam{Text: m.Content})
		case chat.RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &chat.StatusError{Backend: b.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
