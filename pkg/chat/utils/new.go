package chatutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/papercomputeco/neno/pkg/chat"
	"github.com/papercomputeco/neno/pkg/chat/provider/anthropic"
	"github.com/papercomputeco/neno/pkg/chat/provider/ollama"
	"github.com/papercomputeco/neno/pkg/chat/provider/openai"
)

// NewBackendOpts selects and configures a conversational backend.
type NewBackendOpts struct {
	// Provider is one of ollama, openai or anthropic.
	Provider string
	Model    string

	// Target overrides the provider base URL.
	Target string

	// APIKey falls back to OPENAI_API_KEY or ANTHROPIC_API_KEY.
	APIKey string
}

// NewBackend builds the backend for o.Provider. An empty provider returns
// chat.ErrNotConfigured.
func NewBackend(o *NewBackendOpts) (chat.Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(o.Provider))

	switch provider {
	case "":
		return nil, chat.ErrNotConfigured
	case "ollama":
		return ollama.New(o.Target, o.Model), nil
	case "openai":
		key := resolveAPIKey(o.APIKey, "OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("%w: openai needs chat.api_key or OPENAI_API_KEY", chat.ErrNotConfigured)
		}
		return openai.New(openai.Config{APIKey: key, Model: o.Model, BaseURL: o.Target}), nil
	case "anthropic":
		key := resolveAPIKey(o.APIKey, "ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("%w: anthropic needs chat.api_key or ANTHROPIC_API_KEY", chat.ErrNotConfigured)
		}
		return anthropic.New(anthropic.Config{APIKey: key, Model: o.Model, BaseURL: o.Target}), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", o.Provider)
	}
}

func resolveAPIKey(explicit, env string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(env)
}
