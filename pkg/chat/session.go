package chat

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Turn is one user message with the reply it got.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// EndMessage is returned when a conversation is closed.
const EndMessage = "Conversación finalizada. Fue un placer charlar contigo."

// Session is a conversation with a backend. It is safe for concurrent use;
// sends are serialised so replies stay in order.
type Session struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	active   bool
	messages []Message
	history  []Turn
}

// NewSession creates a session. A nil backend yields a session that is never
// available.
func NewSession(backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{backend: backend, logger: logger}
}

// Available reports whether a backend is configured.
func (s *Session) Available() bool {
	return s.backend != nil
}

// BackendName returns the configured backend name, or "" when none is.
func (s *Session) BackendName() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// Start begins a fresh conversation seeded with the system prompt.
func (s *Session) Start() error {
	if s.backend == nil {
		return ErrNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.active = true
	s.messages = []Message{{Role: RoleSystem, Content: SystemPrompt}}
	s.history = nil
}

// Send delivers text and returns the reply, starting a conversation when
// none is active. On failure the user message is dropped so it can be
// retried, and the error is returned for the caller to translate with
// FriendlyError.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if s.backend == nil {
		return "", ErrNotConfigured
	}

	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		s.reset()
	}

	s.messages = append(s.messages, Message{Role: RoleUser, Content: text})

	s.logger.Debug("sending chat message",
		"backend", s.backend.Name(),
		"message_count", len(s.messages),
	)

	reply, err := s.backend.Complete(ctx, slices.Clone(s.messages))
	if err != nil {
		s.messages = s.messages[:len(s.messages)-1]
		s.logger.Warn("chat backend failed", "backend", s.backend.Name(), "error", err)
		return "", err
	}

	reply = strings.TrimSpace(reply)
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: reply})
	s.history = append(s.history, Turn{User: text, Assistant: reply})
	return reply, nil
}

// End closes the conversation and returns the farewell line.
func (s *Session) End() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	s.messages = nil
	return EndMessage
}

// Active reports whether a conversation is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// History returns the turns of the current conversation.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Clear forgets the history and, when a conversation is active, restarts it.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	if s.active {
		s.reset()
	}
}
