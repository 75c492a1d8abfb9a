package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
)

// ReminderRequest is the body of POST /reminders and PUT /reminders/:id.
type ReminderRequest struct {
	Text   string `json:"text"`
	When   string `json:"when"`
	Repeat string `json:"repeat"`
}

// ReminderResponse is a stored reminder with its due time in spoken Spanish.
type ReminderResponse struct {
	*reminder.Reminder
	Spoken string `json:"spoken"`
}

// ReminderListResponse is the body of GET /reminders.
type ReminderListResponse struct {
	Count     int                `json:"count"`
	Reminders []ReminderResponse `json:"reminders"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Text string `json:"text"`
}

// HistoryResponse contains the conversation transcript, oldest first.
type HistoryResponse struct {
	Count   int            `json:"count"`
	Entries []memory.Entry `json:"entries"`
}

// FactsResponse lists the personal facts recalled from the transcript.
type FactsResponse struct {
	Facts []memory.Fact `json:"facts"`
}

// KnowledgeResponse is the body of GET /kb.
type KnowledgeResponse struct {
	Path    string            `json:"path,omitempty"`
	Count   int               `json:"count"`
	Entries []knowledge.Entry `json:"entries"`
}

func newReminderResponse(r *reminder.Reminder) ReminderResponse {
	return ReminderResponse{Reminder: r, Spoken: reminder.FormatForSpeech(r.When)}
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListReminders returns every reminder in creation order.
func (s *Server) handleListReminders(c *fiber.Ctx) error {
	reminders, err := s.config.Reminders.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list reminders", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to list reminders")
	}

	out := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, newReminderResponse(r))
	}

	return c.JSON(ReminderListResponse{Count: len(out), Reminders: out})
}

// handleCreateReminder stores a new reminder.
func (s *Server) handleCreateReminder(c *fiber.Ctx) error {
	req, repeat, err := parseReminderRequest(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	r, err := s.config.Reminders.Add(c.Context(), req.Text, req.When, repeat)
	if err != nil {
		return s.reminderError(c, err, "failed to add reminder")
	}

	return c.Status(fiber.StatusCreated).JSON(newReminderResponse(r))
}

// handleGetReminder returns a single reminder by its ID.
func (s *Server) handleGetReminder(c *fiber.Ctx) error {
	r, err := s.config.Reminders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.reminderError(c, err, "failed to get reminder")
	}

	return c.JSON(newReminderResponse(r))
}

// handleUpdateReminder edits a reminder and marks it pending again.
func (s *Server) handleUpdateReminder(c *fiber.Ctx) error {
	req, repeat, err := parseReminderRequest(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	r, err := s.config.Reminders.Update(c.Context(), c.Params("id"), req.Text, req.When, repeat)
	if err != nil {
		return s.reminderError(c, err, "failed to update reminder")
	}

	return c.JSON(newReminderResponse(r))
}

// handleDeleteReminder removes a reminder.
func (s *Server) handleDeleteReminder(c *fiber.Ctx) error {
	if err := s.config.Reminders.Delete(c.Context(), c.Params("id")); err != nil {
		return s.reminderError(c, err, "failed to delete reminder")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleAsk sends a message to the assistant and returns its reply and any
// requested action.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "text is required")
	}

	return c.JSON(s.config.Assistant.Handle(c.Context(), req.Text))
}

// handleGetHistory returns the conversation transcript.
func (s *Server) handleGetHistory(c *fiber.Ctx) error {
	entries, err := s.config.History.Load(c.Context())
	if err != nil {
		s.logger.Error("failed to load history", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load history")
	}
	if entries == nil {
		entries = []memory.Entry{}
	}

	return c.JSON(HistoryResponse{Count: len(entries), Entries: entries})
}

// handleClearHistory empties the conversation transcript.
func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	if err := s.config.History.Clear(c.Context()); err != nil {
		s.logger.Error("failed to clear history", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to clear history")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleGetFacts returns every personal fact found in the transcript.
func (s *Server) handleGetFacts(c *fiber.Ctx) error {
	facts, err := memory.RecallAll(c.Context(), s.config.History)
	if err != nil {
		s.logger.Error("failed to recall facts", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to recall facts")
	}
	if facts == nil {
		facts = []memory.Fact{}
	}

	return c.JSON(FactsResponse{Facts: facts})
}

// handleGetKnowledge returns the knowledge base entries.
func (s *Server) handleGetKnowledge(c *fiber.Ctx) error {
	entries := s.config.Knowledge.Entries()
	return c.JSON(KnowledgeResponse{
		Path:    s.config.Knowledge.Path(),
		Count:   len(entries),
		Entries: entries,
	})
}

func parseReminderRequest(c *fiber.Ctx) (*ReminderRequest, reminder.Repeat, error) {
	var req ReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, reminder.RepeatNone, errors.New("invalid request body")
	}
	if strings.TrimSpace(req.When) == "" {
		return nil, reminder.RepeatNone, errors.New("when is required")
	}

	repeat, err := reminder.ParseRepeat(req.Repeat)
	if err != nil {
		return nil, reminder.RepeatNone, err
	}
	return &req, repeat, nil
}

// reminderError maps service errors to HTTP statuses.
func (s *Server) reminderError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case storage.IsNotFound(err):
		return errorJSON(c, fiber.StatusNotFound, "reminder not found")
	case errors.Is(err, reminder.ErrInvalidWhen):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	default:
		s.logger.Error(msg, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, msg)
	}
}
