// Package interpreter turns a free-text Spanish message into a reply and,
// optionally, an action. Rules are tried in a fixed order and the first one
// that claims the message wins.
package interpreter

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/papercomputeco/neno/pkg/chat"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/reminder"
)

// BusyReply answers action requests while a blocking action runs.
const BusyReply = "Termina la tarea que está en curso antes de pedirme otra cosa."

// Result is the interpretation of one message.
type Result struct {
	Reply  string  `json:"reply"`
	Action *Action `json:"action,omitempty"`
}

// ReminderAdder stores reminders created from messages.
type ReminderAdder interface {
	Add(ctx context.Context, text, when string, repeat reminder.Repeat) (*reminder.Reminder, error)
}

// Config wires the interpreter to its collaborators. Reminders, History and
// Knowledge are required; Chat may be nil.
type Config struct {
	Reminders ReminderAdder
	History   memory.Driver
	Knowledge *knowledge.Base
	Chat      *chat.Session

	// SearchEngine is google (default) or duckduckgo.
	SearchEngine string

	Clock  func() time.Time
	Rand   func(n int) int
	Logger *slog.Logger
}

// Interpreter keeps the conversational-mode flag and the blocking-action
// lock between messages.
type Interpreter struct {
	reminders ReminderAdder
	history   memory.Driver
	kb        *knowledge.Base
	chat      *chat.Session
	engine    string
	clock     func() time.Time
	rand      func(n int) int
	logger    *slog.Logger

	mu       sync.Mutex
	chatMode bool
	busy     atomic.Bool

	rules []rule
}

// rule claims a message by returning ok.
type rule func(ctx context.Context, msg *message) (Result, bool)

// message carries the raw text with its normalised forms.
type message struct {
	raw     string
	lower   string
	trimmed string
}

// New creates an Interpreter.
func New(c *Config) *Interpreter {
	i := &Interpreter{
		reminders: c.Reminders,
		history:   c.History,
		kb:        c.Knowledge,
		chat:      c.Chat,
		engine:    strings.ToLower(strings.TrimSpace(c.SearchEngine)),
		clock:     c.Clock,
		rand:      c.Rand,
		logger:    c.Logger,
	}

	if i.clock == nil {
		i.clock = time.Now
	}
	if i.rand == nil {
		i.rand = rand.IntN
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}

	i.rules = []rule{
		i.factStatement,
		i.factQuestion,
		i.mailCommand,
		i.documentCommand,
		i.chatCommand,
		i.reminderRequest,
		i.terminalCommand,
		i.webSearch,
		i.smallTalk,
		i.knowledgeAnswer,
	}
	return i
}

// Interpret answers message. It never fails: collaborator errors are logged
// and turned into replies.
func (i *Interpreter) Interpret(ctx context.Context, text string) Result {
	msg := &message{
		raw:     text,
		lower:   strings.ToLower(text),
		trimmed: strings.TrimSpace(strings.ToLower(text)),
	}

	for _, r := range i.rules {
		if res, ok := r(ctx, msg); ok {
			return res
		}
	}
	return Result{Reply: i.fallback()}
}

// ChatMode reports whether messages are being routed to the conversational
// backend.
func (i *Interpreter) ChatMode() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.chatMode
}

// Busy reports whether a blocking action is running.
func (i *Interpreter) Busy() bool {
	return i.busy.Load()
}

// Release ends the blocking action started by a Result whose action is
// Blocking. Callers must call it once the action finished.
func (i *Interpreter) Release() {
	i.busy.Store(false)
}

// act returns the result for an action request, honouring the lock.
func (i *Interpreter) act(reply string, a *Action) Result {
	if a.Blocking() {
		if !i.busy.CompareAndSwap(false, true) {
			return Result{Reply: BusyReply}
		}
	} else if i.busy.Load() {
		return Result{Reply: BusyReply}
	}
	return Result{Reply: reply, Action: a}
}
