// Package memory keeps the conversation transcript and recalls personal
// facts the user stated in it.
//
// The transcript is a bounded list of {role, text} entries. Facts are not
// stored separately: they are extracted on demand from the user's own
// messages, newest first, so correcting a fact is as simple as stating it
// again.
//
// Transcript drivers are pluggable:
//
//	jsonfile   conversation_history.json in the user's data directory
//	local      in-process, for tests and ephemeral runs
package memory

import (
	"context"
	"strings"
)

// MaxEntries is the number of transcript entries kept; older ones are dropped.
const MaxEntries = 200

// Roles written by the assistant service.
const (
	RoleUser      = "Tú"
	RoleAssistant = "Asistente"
)

// Entry is one transcript line.
type Entry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Driver persists the conversation transcript.
type Driver interface {
	// Load returns at most MaxEntries entries, oldest first.
	Load(ctx context.Context) ([]Entry, error)

	// Append adds one entry, dropping the oldest beyond MaxEntries. Entries
	// with a blank role or text are ignored.
	Append(ctx context.Context, role, text string) error

	// Replace swaps the whole transcript, keeping the newest MaxEntries
	// valid entries.
	Replace(ctx context.Context, entries []Entry) error

	// Clear empties the transcript.
	Clear(ctx context.Context) error

	// Close releases driver resources.
	Close() error
}

// Fact is a personal detail recalled from the transcript.
type Fact struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Clean trims entries, drops the ones with a blank role or text and keeps the
// newest MaxEntries.
func Clean(entries []Entry) []Entry {
	cleaned := make([]Entry, 0, len(entries))
	for _, e := range entries {
		role := strings.TrimSpace(e.Role)
		text := strings.TrimSpace(e.Text)
		if role == "" || text == "" {
			continue
		}
		cleaned = append(cleaned, Entry{Role: role, Text: text})
	}
	return Tail(cleaned)
}

// Tail keeps the newest MaxEntries entries.
func Tail(entries []Entry) []Entry {
	if len(entries) > MaxEntries {
		return entries[len(entries)-MaxEntries:]
	}
	return entries
}

// IsUserRole reports whether role marks a line spoken by the user.
func IsUserRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "tú", "tu", "usuario", "user":
		return true
	}
	return false
}
