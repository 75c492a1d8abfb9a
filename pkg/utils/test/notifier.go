package testutils

import (
	"context"
	"sync"

	"github.com/papercomputeco/neno/pkg/reminder"
)

// MockNotifier records delivered reminders.
type MockNotifier struct {
	mu        sync.Mutex
	delivered []*reminder.Reminder

	// Err is returned by Notify when set; the reminder is still recorded.
	Err error
}

func (m *MockNotifier) Notify(_ context.Context, r *reminder.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *r
	m.delivered = append(m.delivered, &c)
	return m.Err
}

// Delivered returns the reminders delivered so far.
func (m *MockNotifier) Delivered() []*reminder.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*reminder.Reminder(nil), m.delivered...)
}

// Texts returns the text of every delivered reminder in order.
func (m *MockNotifier) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.delivered))
	for _, r := range m.delivered {
		out = append(out, r.Text)
	}
	return out
}
