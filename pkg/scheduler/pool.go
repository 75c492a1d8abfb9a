package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/reminder"
)

var (
	defaultNumWorkers   uint = 2
	defaultJobQueueSize uint = 64
	defaultNotifyTimeout     = 30 * time.Second
)

// Job is a fired reminder waiting to be delivered.
type Job struct {
	Reminder *reminder.Reminder
	FiredAt  time.Time
}

// PoolConfig is the configuration options for the notification pool.
type PoolConfig struct {
	// Notifier delivers the reminder to the user.
	Notifier Notifier

	// Publisher receives a neno.reminder.fired event per delivered job.
	Publisher eventstream.Publisher

	// User tags published events with the user slug.
	User string

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 64).
	QueueSize uint

	Logger *slog.Logger
}

// Pool delivers fired reminders asynchronously so a slow notifier (speech,
// network) never delays the next poll.
type Pool struct {
	config *PoolConfig
	queue  chan Job
	wg     sync.WaitGroup
	once   sync.Once
	logger *slog.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *PoolConfig) (*Pool, error) {
	if c.Notifier == nil {
		return nil, fmt.Errorf("notification pool requires a notifier")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for delivery.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("reminder queued", "id", job.Reminder.ID)
		return true
	default:
		p.logger.Error("reminder not queued, queue full, notification dropped",
			"id", job.Reminder.ID,
			"text", job.Reminder.Text,
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// It is safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.queue) })
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("notification worker started", "worker_id", id)

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("notification worker stopped", "worker_id", id)
}

// processJob delivers one reminder and publishes the fired event. Failures
// are logged and never retried; the reminder is already marked notified.
func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultNotifyTimeout)
	defer cancel()

	if err := p.config.Notifier.Notify(ctx, job.Reminder); err != nil {
		p.logger.Error("reminder notification failed",
			"id", job.Reminder.ID,
			"error", err,
		)
	}

	if p.config.Publisher == nil {
		return
	}

	event := eventstream.NewEvent(eventstream.EventTypeReminderFired, job.Reminder)
	event.User = p.config.User
	event.EmittedAt = job.FiredAt.UTC()
	if err := p.config.Publisher.Publish(ctx, event); err != nil {
		p.logger.Warn("could not publish fired reminder",
			"id", job.Reminder.ID,
			"error", err,
		)
	}
}
