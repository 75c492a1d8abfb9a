// Package service implements the reminder list operations shared by the
// interpreter, the CLI and the API: every change is validated, stored and
// announced to listeners and the event stream.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/eventstream/nop"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Service manages the reminder list of one user.
type Service struct {
	store       storage.Driver
	publisher   eventstream.Publisher
	broadcaster *eventstream.Broadcaster
	user        string
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the event stream publisher.
func WithPublisher(p eventstream.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithBroadcaster sets the in-process listener registry.
func WithBroadcaster(b *eventstream.Broadcaster) Option {
	return func(s *Service) { s.broadcaster = b }
}

// WithUser tags published events with the user slug.
func WithUser(user string) Option {
	return func(s *Service) { s.user = user }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service over store.
func New(store storage.Driver, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: nop.NewPublisher(),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.broadcaster == nil {
		s.broadcaster = eventstream.NewBroadcaster(s.logger)
	}
	return s
}

// Store returns the underlying driver.
func (s *Service) Store() storage.Driver {
	return s.store
}

// Broadcaster returns the listener registry notified on every change.
func (s *Service) Broadcaster() *eventstream.Broadcaster {
	return s.broadcaster
}

// Add validates and stores a new reminder. A time-only when is resolved to
// its next occurrence so the stored value is always DD/MM/YYYY HH:MM.
func (s *Service) Add(ctx context.Context, text, when string, repeat reminder.Repeat) (*reminder.Reminder, error) {
	resolved, err := reminder.Resolve(when, s.now())
	if err != nil {
		return nil, err
	}

	r := reminder.New(text, resolved, repeat)
	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("adding reminder: %w", err)
	}

	s.logger.Info("reminder added", "id", r.ID, "when", r.When, "repeat", string(r.Repeat))
	s.changed(ctx, ActionAdded, r)
	return r, nil
}

// Update replaces the text, time and repetition of an existing reminder and
// marks it pending again.
func (s *Service) Update(ctx context.Context, id, text, when string, repeat reminder.Repeat) (*reminder.Reminder, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := reminder.Resolve(when, s.now())
	if err != nil {
		return nil, err
	}

	if text = strings.TrimSpace(text); text != "" {
		r.Text = text
	}
	r.When = resolved
	r.Repeat = repeat
	r.Notified = false

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("updating reminder %s: %w", id, err)
	}

	s.logger.Info("reminder updated", "id", r.ID, "when", r.When)
	s.changed(ctx, ActionUpdated, r)
	return r, nil
}

// Delete removes a reminder. Returns storage.NotFoundError when it does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	if !ok {
		return storage.NotFoundError{ID: id}
	}

	s.logger.Info("reminder deleted", "id", id)
	s.changed(ctx, ActionDeleted, r)
	return nil
}

// List returns every reminder in insertion order.
func (s *Service) List(ctx context.Context) ([]*reminder.Reminder, error) {
	return s.store.List(ctx)
}

// Get returns one reminder.
func (s *Service) Get(ctx context.Context, id string) (*reminder.Reminder, error) {
	return s.store.Get(ctx, id)
}

// changed notifies listeners and publishes a list update. Publishing
// failures are logged; the change itself already succeeded.
func (s *Service) changed(ctx context.Context, action string, r *reminder.Reminder) {
	s.broadcaster.Notify()

	event := eventstream.NewEvent(eventstream.EventTypeRemindersUpdated, r)
	event.User = s.user
	event.Action = action
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("could not publish reminder update", "action", action, "error", err)
	}
}
