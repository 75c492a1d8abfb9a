// Package storage defines the reminder persistence contract implemented by
// the jsonfile, inmemory, sqlite and postgres drivers.
package storage

import (
	"context"

	"github.com/papercomputeco/neno/pkg/reminder"
)

// Driver defines the interface for persisting and retrieving reminders in a
// storage backend. Every driver keeps reminders in insertion order.
type Driver interface {
	// List returns every reminder in insertion order.
	List(ctx context.Context) ([]*reminder.Reminder, error)

	// Get retrieves a reminder by its ID. Returns NotFoundError when the
	// reminder does not exist.
	Get(ctx context.Context, id string) (*reminder.Reminder, error)

	// Put inserts a reminder, or replaces the stored reminder with the same ID
	// keeping its position.
	Put(ctx context.Context, r *reminder.Reminder) error

	// Update replaces a stored reminder without ever inserting one. Returns
	// NotFoundError when the reminder is gone, e.g. deleted by another writer.
	Update(ctx context.Context, r *reminder.Reminder) error

	// Delete removes a reminder. Returns false when nothing was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Replace swaps the whole reminder list in one write.
	Replace(ctx context.Context, reminders []*reminder.Reminder) error

	// Close closes the store and releases any resources.
	Close() error
}
