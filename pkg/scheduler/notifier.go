package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/papercomputeco/neno/pkg/reminder"
)

// Notifier delivers a due reminder to the user, e.g. by speaking it.
type Notifier interface {
	Notify(ctx context.Context, r *reminder.Reminder) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, r *reminder.Reminder) error

func (f NotifierFunc) Notify(ctx context.Context, r *reminder.Reminder) error {
	return f(ctx, r)
}

// LogNotifier writes one structured log line per reminder.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, r *reminder.Reminder) error {
	n.Logger.Info("reminder due",
		"id", r.ID,
		"text", r.Text,
		"when", r.When,
		"repeat", string(r.Repeat),
	)
	return nil
}

// WriterNotifier prints "⏰ <text>" lines to W.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer

	// Format renders the line; defaults to "⏰ <text>".
	Format func(r *reminder.Reminder) string
}

func (n *WriterNotifier) Notify(_ context.Context, r *reminder.Reminder) error {
	line := "⏰ " + r.Text
	if n.Format != nil {
		line = n.Format(r)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.W, line)
	return err
}

// MultiNotifier delivers to every notifier even when one fails.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, r *reminder.Reminder) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
