package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Replies shown to the user when the backend fails.
const (
	ErrorAuth    = "Error de autenticación. Por favor, verifica tu API key en la configuración."
	ErrorQuota   = "Has alcanzado el límite de uso de la API. Intenta más tarde o verifica tu cuenta."
	ErrorNetwork = "Error de conexión. Verifica tu conexión a internet."
	ErrorGeneric = "Lo siento, hubo un error al procesar tu mensaje. Intenta de nuevo."
	ErrorSetup   = "Lo siento, necesito que configures un modelo conversacional (neno config preset) para poder charlar."
)

// StatusError is returned by backends for a non-success HTTP status.
type StatusError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Backend, e.StatusCode, e.Body)
}

// FriendlyError maps a backend error to a short Spanish message.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrNotConfigured) {
		return ErrorSetup
	}

	var status *StatusError
	if errors.As(err, &status) {
		switch {
		case status.StatusCode == 401 || status.StatusCode == 403:
			return ErrorAuth
		case status.StatusCode == 429:
			return ErrorQuota
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "authentication") || strings.Contains(msg, "401"):
		return ErrorAuth
	case strings.Contains(msg, "quota") || strings.Contains(msg, "limit") || strings.Contains(msg, "429"):
		return ErrorQuota
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection"):
		return ErrorNetwork
	}
	return ErrorGeneric
}
