// Package local provides an in-process transcript driver.
//
// Nothing survives a restart; it backs tests and runs with the memory
// storage driver.
package local

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/papercomputeco/neno/pkg/memory"
)

// Driver implements memory.Driver over a slice.
type Driver struct {
	mu      sync.RWMutex
	entries []memory.Entry
}

// NewDriver creates a local transcript driver, optionally pre-filled.
func NewDriver(entries ...memory.Entry) *Driver {
	return &Driver{entries: memory.Clean(entries)}
}

func (d *Driver) Load(_ context.Context) ([]memory.Entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	// Return a copy to avoid callers mutating internal state.
	return slices.Clone(d.entries), nil
}

func (d *Driver) Append(_ context.Context, role, text string) error {
	role = strings.TrimSpace(role)
	text = strings.TrimSpace(text)
	if role == "" || text == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = memory.Tail(append(d.entries, memory.Entry{Role: role, Text: text}))
	return nil
}

func (d *Driver) Replace(_ context.Context, entries []memory.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = memory.Clean(entries)
	return nil
}

func (d *Driver) Clear(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = nil
	return nil
}

// Close is a no-op for the local driver.
func (d *Driver) Close() error {
	return nil
}
