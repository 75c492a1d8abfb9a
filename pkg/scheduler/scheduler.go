// Package scheduler polls the reminder store, fires due reminders through a
// notification pool and reschedules daily ones.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/storage"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 30 * time.Second

// Config configures a Scheduler.
type Config struct {
	Store    storage.Driver
	Notifier Notifier

	// Publisher receives neno.reminder.fired events. Optional.
	Publisher eventstream.Publisher

	// Broadcaster is notified after a poll changed the stored list. Optional.
	Broadcaster *eventstream.Broadcaster

	Interval  time.Duration
	Workers   uint
	QueueSize uint
	User      string

	// Clock overrides time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

// Scheduler checks for due reminders on a fixed interval.
type Scheduler struct {
	store       storage.Driver
	broadcaster *eventstream.Broadcaster
	pool        *Pool
	interval    time.Duration
	clock       func() time.Time
	logger      *slog.Logger
}

// New creates a Scheduler and starts its notification workers.
func New(c *Config) (*Scheduler, error) {
	if c.Store == nil {
		return nil, errors.New("scheduler requires a reminder store")
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Notifier == nil {
		c.Notifier = LogNotifier{Logger: c.Logger}
	}

	pool, err := NewPool(&PoolConfig{
		Notifier:   c.Notifier,
		Publisher:  c.Publisher,
		User:       c.User,
		NumWorkers: c.Workers,
		QueueSize:  c.QueueSize,
		Logger:     c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating notification pool: %w", err)
	}

	return &Scheduler{
		store:       c.Store,
		broadcaster: c.Broadcaster,
		pool:        pool,
		interval:    c.Interval,
		clock:       c.Clock,
		logger:      c.Logger,
	}, nil
}

// Run polls immediately and then every interval until ctx is cancelled.
// Poll errors are logged and never stop the loop. Run closes the
// notification pool before returning, draining queued notifications.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.pool.Close()

	s.logger.Info("scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("scheduler poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one poll and returns the number of reminders fired. Each fired
// reminder is marked notified, daily ones are moved to their next
// occurrence, and every changed reminder is written back. A reminder that
// was deleted after the poll listed it is neither fired nor written.
func (s *Scheduler) Tick(ctx context.Context) (int, error) {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing reminders: %w", err)
	}

	now := s.clock()
	fired := 0
	var errs []error

	for _, r := range reminders {
		if !r.ShouldTrigger(now) {
			continue
		}

		snapshot := *r

		r.Notified = true
		if r.Reschedule(now) {
			s.logger.Debug("daily reminder rescheduled", "id", r.ID, "when", r.When)
		}

		// Written one by one so a reminder added while polling is not lost,
		// and as an update so one deleted while polling stays deleted.
		if err := s.store.Update(ctx, r); err != nil {
			if storage.IsNotFound(err) {
				s.logger.Debug("reminder deleted while polling", "id", r.ID)
				continue
			}
			errs = append(errs, fmt.Errorf("saving reminder %s: %w", r.ID, err))
		}

		s.pool.Enqueue(Job{Reminder: &snapshot, FiredAt: now})
		fired++
	}

	if fired > 0 && s.broadcaster != nil {
		s.broadcaster.Notify()
	}

	return fired, errors.Join(errs...)
}
