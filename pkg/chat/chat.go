// Package chat holds the conversational mode: a Backend contract any
// provider satisfies and a Session that keeps the running exchange.
package chat

import (
	"context"
	"errors"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn sent to a backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Backend completes a conversation. Implementations receive the full message
// list, system prompt first, and return the assistant's reply text.
type Backend interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ErrNotConfigured is returned when no conversational backend is set up.
var ErrNotConfigured = errors.New("conversational backend not configured")

// SystemPrompt sets the assistant persona for every session.
const SystemPrompt = "Eres Neno, un asistente virtual amigable y servicial. " +
	"Respondes en español de forma natural, concisa y útil. " +
	"Eres parte de un sistema de asistente de escritorio que ayuda con recordatorios y tareas."
