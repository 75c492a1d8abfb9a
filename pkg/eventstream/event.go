package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/neno/pkg/reminder"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeRemindersUpdated is emitted after the reminder list changes.
	EventTypeRemindersUpdated = "neno.reminders.updated"

	// EventTypeReminderFired is emitted after a due reminder was dispatched.
	EventTypeReminderFired = "neno.reminder.fired"
)

// Event is a transport-neutral payload describing a reminder change.
type Event struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	// User is the per-user data directory slug the reminder belongs to.
	User string `json:"user,omitempty"`

	// Action is "added", "updated" or "deleted" for list updates.
	Action string `json:"action,omitempty"`

	Reminder *reminder.Reminder `json:"reminder,omitempty"`
}

// NewEvent builds an event of the given type with a fresh ID.
func NewEvent(eventType string, r *reminder.Reminder) *Event {
	var snapshot *reminder.Reminder
	if r != nil {
		cp := *r
		snapshot = &cp
	}

	return &Event{
		SchemaVersion: SchemaVersionV1,
		EventType:     eventType,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Reminder:      snapshot,
	}
}

// Key returns the partition key for the event: the reminder ID when present.
func (e *Event) Key() string {
	if e.Reminder != nil {
		return e.Reminder.ID
	}
	return e.EventID
}
