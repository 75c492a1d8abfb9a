// Package jsonfile provides the default reminder storage driver: a pretty
// printed JSON array in the user's data directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
	"github.com/papercomputeco/neno/pkg/utils"
)

// Driver implements storage.Driver over a single JSON file. One mutex guards
// every read-modify-write cycle; concurrent writers in other processes are
// last-write-wins.
type Driver struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewDriver opens the reminder file at path, creating it as an empty list
// when missing. Records written before IDs existed are assigned one and
// saved back.
func NewDriver(path string, logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Driver{
		path:   path,
		logger: logger,
	}

	if err := d.ensureFile(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	reminders, err := d.load()
	if err != nil {
		return nil, err
	}

	assigned := 0
	for _, r := range reminders {
		if r.ID == "" {
			r.ID = uuid.NewString()
			assigned++
		}
	}
	if assigned > 0 {
		if err := d.save(reminders); err != nil {
			return nil, err
		}
		d.logger.Info("assigned ids to legacy reminders", "count", assigned, "path", path)
	}

	return d, nil
}

// Path returns the reminder file path.
func (d *Driver) Path() string {
	return d.path
}

// List returns every reminder in file order.
func (d *Driver) List(_ context.Context) ([]*reminder.Reminder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.load()
}

// Get retrieves a reminder by its ID.
func (d *Driver) Get(_ context.Context, id string) (*reminder.Reminder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	reminders, err := d.load()
	if err != nil {
		return nil, err
	}

	for _, r := range reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, storage.NotFoundError{ID: id}
}

// Put appends a reminder, or replaces the one with the same ID in place.
func (d *Driver) Put(_ context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	reminders, err := d.load()
	if err != nil {
		return err
	}

	stored := *r
	replaced := false
	for i, existing := range reminders {
		if existing.ID == r.ID {
			reminders[i] = &stored
			replaced = true
			break
		}
	}
	if !replaced {
		reminders = append(reminders, &stored)
	}

	return d.save(reminders)
}

// Update replaces the reminder with the same ID, re-reading the file under
// the lock so a reminder removed since the caller listed it stays removed.
func (d *Driver) Update(_ context.Context, r *reminder.Reminder) error {
	if r == nil {
		return storage.ErrNilReminder
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	reminders, err := d.load()
	if err != nil {
		return err
	}

	i := slices.IndexFunc(reminders, func(existing *reminder.Reminder) bool { return existing.ID == r.ID })
	if i < 0 {
		return storage.NotFoundError{ID: r.ID}
	}

	stored := *r
	reminders[i] = &stored
	return d.save(reminders)
}

// Delete removes a reminder by ID.
func (d *Driver) Delete(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	reminders, err := d.load()
	if err != nil {
		return false, err
	}

	kept := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reminders) {
		return false, nil
	}

	return true, d.save(kept)
}

// Replace writes the whole list.
func (d *Driver) Replace(_ context.Context, reminders []*reminder.Reminder) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*reminder.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r != nil {
			out = append(out, r)
		}
	}
	return d.save(out)
}

// Close is a no-op; the file is opened per operation.
func (d *Driver) Close() error {
	return nil
}

func (d *Driver) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("creating reminders directory: %w", err)
	}

	_, err := os.Stat(d.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading reminders file: %w", err)
	}

	return utils.WriteJSONFile(d.path, []*reminder.Reminder{})
}

// load reads the file. A corrupt file reads as an empty list so the
// scheduler keeps running; the next save overwrites it.
func (d *Driver) load() ([]*reminder.Reminder, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*reminder.Reminder{}, nil
		}
		return nil, fmt.Errorf("reading reminders file: %w", err)
	}

	var reminders []*reminder.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		d.logger.Warn("reminders file is not valid JSON, treating as empty",
			"path", d.path,
			"error", err,
		)
		return []*reminder.Reminder{}, nil
	}

	out := reminders[:0]
	for _, r := range reminders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *Driver) save(reminders []*reminder.Reminder) error {
	if reminders == nil {
		reminders = []*reminder.Reminder{}
	}
	if err := utils.WriteJSONFile(d.path, reminders); err != nil {
		return fmt.Errorf("saving reminders: %w", err)
	}
	return nil
}
