package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

// Server is the API server for one user's reminders and conversation.
type Server struct {
	config Config
	logger *slog.Logger
	app    *fiber.App
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a new API server. The reminder service and the
// assistant are shared with the scheduler and the CLI running in the same
// process.
func NewServer(config Config, logger *slog.Logger) (*Server, error) {
	if config.Reminders == nil {
		return nil, errors.New("reminder service is required")
	}
	if config.Assistant == nil {
		return nil, errors.New("assistant is required")
	}
	if config.History == nil {
		return nil, errors.New("history driver is required")
	}
	if config.Knowledge == nil {
		return nil, errors.New("knowledge base is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	app.Get("/reminders", s.handleListReminders)
	app.Post("/reminders", s.handleCreateReminder)
	app.Get("/reminders/:id", s.handleGetReminder)
	app.Put("/reminders/:id", s.handleUpdateReminder)
	app.Delete("/reminders/:id", s.handleDeleteReminder)

	app.Post("/ask", s.handleAsk)

	app.Get("/history", s.handleGetHistory)
	app.Delete("/history", s.handleClearHistory)
	app.Get("/history/facts", s.handleGetFacts)

	app.Get("/kb", s.handleGetKnowledge)

	if config.MCP != nil {
		app.All("/mcp", adaptor.HTTPHandler(config.MCP.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
