// Package inmemory provides a map-backed reminder storage driver for tests
// and ephemeral runs.
package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the reminders map and order
	mu sync.RWMutex

	// reminders is keyed by reminder ID and holds private copies
	reminders map[string]reminder.Reminder

	// order holds reminder IDs in insertion order
	order []string
}

// NewDriver creates a new in-memory driver.
func NewDriver() *Driver {
	return &Driver{
		reminders: make(map[string]reminder.Reminder),
	}
}

// List returns copies of every reminder in insertion order.
func (d *Driver) List(_ context.Context) ([]*reminder.Reminder, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*reminder.Reminder, 0, len(d.order))
	for _, id := range d.order {
		r := d.reminders[id]
		out = append(out, &r)
	}
	return out, nil
}

// Get retrieves a reminder by its ID.
func (d *Driver) Get(_ context.Context, id string) (*reminder.Reminder, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.reminders[id]
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}
	return &r, nil
}

// Put inserts or replaces a reminder.
func (d *Driver) Put(_ context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.reminders[r.ID]; !ok {
		d.order = append(d.order, r.ID)
	}
	d.reminders[r.ID] = *r
	return nil
}

// Update replaces an existing reminder.
func (d *Driver) Update(_ context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.reminders[r.ID]; !ok {
		return storage.NotFoundError{ID: r.ID}
	}
	d.reminders[r.ID] = *r
	return nil
}

// Delete removes a reminder by ID.
func (d *Driver) Delete(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.reminders[id]; !ok {
		return false, nil
	}

	delete(d.reminders, id)
	d.order = slices.DeleteFunc(d.order, func(o string) bool { return o == id })
	return true, nil
}

// Replace swaps the whole list.
func (d *Driver) Replace(_ context.Context, reminders []*reminder.Reminder) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reminders = make(map[string]reminder.Reminder, len(reminders))
	d.order = d.order[:0]
	for _, r := range reminders {
		if r == nil {
			continue
		}
		if _, dup := d.reminders[r.ID]; !dup {
			d.order = append(d.order, r.ID)
		}
		d.reminders[r.ID] = *r
	}
	return nil
}

// Close is a no-op.
func (d *Driver) Close() error {
	return nil
}
