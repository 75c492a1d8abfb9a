// Package ollama is a chat.Backend for a local Ollama server using its
// native /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/neno/pkg/chat"
)

const (
	// DefaultTarget is the local Ollama address.
	DefaultTarget = "http://localhost:11434"

	// DefaultModel is used when no model is configured.
	DefaultModel = "llama3.2"
)

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error"`
}

// Backend talks to Ollama over HTTP.
type Backend struct {
	target string
	model  string
	client *http.Client
}

// New creates an Ollama backend. Empty values take the defaults.
func New(target, model string) *Backend {
	if target == "" {
		target = DefaultTarget
	}
	if model == "" {
		model = DefaultModel
	}

	return &Backend{
		target: strings.TrimRight(target, "/"),
		model:  model,
		client: &http.Client{
			// Local models can be slow to load.
			Timeout: 2 * time.Minute,
		},
	}
}

func (b *Backend) Name() string {
	return "ollama"
}

func (b *Backend) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	request := ollamaRequest{
		Model:    b.model,
		Messages: make([]ollamaMessage, 0, len(messages)),
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.target+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &chat.StatusError{Backend: b.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("ollama error: %s", response.Error)
	}

	return response.Message.Content, nil
}
