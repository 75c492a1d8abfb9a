package eventstream

import (
	"fmt"
	"log/slog"
	"sync"
)

// Broadcaster keeps in-process listeners in sync with the reminder list.
// Listeners are called synchronously on the goroutine that calls Notify.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[uint64]func()
	next      uint64
	logger    *slog.Logger
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		listeners: make(map[uint64]func()),
		logger:    logger,
	}
}

// Register adds a listener and returns a function that removes it. Calling
// the returned function more than once is safe.
func (b *Broadcaster) Register(fn func()) (func(), error) {
	if fn == nil {
		return nil, ErrNilListener
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}, nil
}

// Len returns the number of registered listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Notify calls every listener registered at the time of the call. A panic in
// one listener is logged and the rest still run.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	snapshot := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		snapshot = append(snapshot, fn)
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		b.call(fn)
	}
}

func (b *Broadcaster) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("reminder listener failed", "error", fmt.Sprint(r))
		}
	}()
	fn()
}
