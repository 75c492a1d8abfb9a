// Package jsonfile stores the conversation transcript as a pretty printed
// JSON array.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/utils"
)

// Driver implements memory.Driver over a JSON file.
type Driver struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewDriver returns a driver for the transcript at path. The file is created
// on the first write.
func NewDriver(path string, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{path: path, logger: logger}
}

// Path returns the transcript file path.
func (d *Driver) Path() string {
	return d.path
}

func (d *Driver) Load(_ context.Context) ([]memory.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(), nil
}

func (d *Driver) Append(_ context.Context, role, text string) error {
	role = strings.TrimSpace(role)
	text = strings.TrimSpace(text)
	if role == "" || text == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	entries := append(d.load(), memory.Entry{Role: role, Text: text})
	return utils.WriteJSONFile(d.path, memory.Tail(entries))
}

func (d *Driver) Replace(_ context.Context, entries []memory.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return utils.WriteJSONFile(d.path, memory.Clean(entries))
}

func (d *Driver) Clear(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return utils.WriteJSONFile(d.path, []memory.Entry{})
}

// Close is a no-op; every operation opens the file itself.
func (d *Driver) Close() error {
	return nil
}

// load reads the transcript. A missing, unreadable or corrupt file reads as
// empty so the conversation can go on.
func (d *Driver) load() []memory.Entry {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("could not read conversation history", "path", d.path, "error", err)
		}
		return nil
	}

	var entries []memory.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		d.logger.Warn("could not parse conversation history", "path", d.path, "error", err)
		return nil
	}
	return memory.Clean(entries)
}
