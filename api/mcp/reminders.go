package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/neno/pkg/reminder"
)

var (
	addReminderToolName    = "add_reminder"
	addReminderDescription = "Create a neno reminder. The time is either DD/MM/YYYY HH:MM or HH:MM (next occurrence). Set repeat to \"daily\" for a reminder that fires every day."

	listRemindersToolName    = "list_reminders"
	listRemindersDescription = "List every neno reminder in creation order, with its due time and whether it already fired."
)

// AddReminderInput represents the input arguments for the add_reminder tool.
type AddReminderInput struct {
	Text   string `json:"text" jsonschema:"what to remind about"`
	When   string `json:"when" jsonschema:"due time as DD/MM/YYYY HH:MM or HH:MM"`
	Repeat string `json:"repeat,omitempty" jsonschema:"empty for a one-off reminder or daily"`
}

// ReminderOutput is one reminder with its spoken due time.
type ReminderOutput struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	When     string `json:"when"`
	Repeat   string `json:"repeat"`
	Notified bool   `json:"notified"`
	Spoken   string `json:"spoken"`
}

// ListRemindersInput takes no arguments.
type ListRemindersInput struct{}

// ListRemindersOutput is the structured output of list_reminders.
type ListRemindersOutput struct {
	Count     int              `json:"count"`
	Reminders []ReminderOutput `json:"reminders"`
}

func toOutput(r *reminder.Reminder) ReminderOutput {
	return ReminderOutput{
		ID:       r.ID,
		Text:     r.Text,
		When:     r.When,
		Repeat:   string(r.Repeat),
		Notified: r.Notified,
		Spoken:   reminder.FormatForSpeech(r.When),
	}
}

func (s *Server) handleAddReminder(ctx context.Context, _ *mcp.CallToolRequest, input AddReminderInput) (*mcp.CallToolResult, ReminderOutput, error) {
	if input.When == "" {
		return errorResult("when is required"), ReminderOutput{}, nil
	}

	repeat, err := reminder.ParseRepeat(input.Repeat)
	if err != nil {
		return errorResult("%v", err), ReminderOutput{}, nil
	}

	r, err := s.config.Reminders.Add(ctx, input.Text, input.When, repeat)
	if err != nil {
		return errorResult("Adding reminder failed: %v", err), ReminderOutput{}, nil
	}

	output := toOutput(r)
	result, err := jsonResult(output)
	if err != nil {
		return errorResult("Failed to serialize results: %v", err), ReminderOutput{}, nil
	}
	return result, output, nil
}

func (s *Server) handleListReminders(ctx context.Context, _ *mcp.CallToolRequest, _ ListRemindersInput) (*mcp.CallToolResult, ListRemindersOutput, error) {
	reminders, err := s.config.Reminders.List(ctx)
	if err != nil {
		return errorResult("Listing reminders failed: %v", err), ListRemindersOutput{}, nil
	}

	output := ListRemindersOutput{
		Count:     len(reminders),
		Reminders: make([]ReminderOutput, 0, len(reminders)),
	}
	for _, r := range reminders {
		output.Reminders = append(output.Reminders, toOutput(r))
	}

	result, err := jsonResult(output)
	if err != nil {
		return errorResult("Failed to serialize results: %v", err), ListRemindersOutput{}, nil
	}
	return result, output, nil
}
