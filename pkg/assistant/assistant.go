// Package assistant ties the interpreter to the transcript and the host
// launcher: every message goes in, a reply comes out, both are remembered.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/memory"
)

// blockingTimeout bounds how long a blocking action may hold the lock.
const blockingTimeout = 30 * time.Minute

// Config wires the assistant.
type Config struct {
	Interpreter *interpreter.Interpreter
	History     memory.Driver
	Launcher    interpreter.Launcher

	// FollowUp receives the line said when a blocking action ends. Optional.
	FollowUp func(text string)

	Logger *slog.Logger
}

// Assistant handles user messages one at a time.
type Assistant struct {
	interp   *interpreter.Interpreter
	history  memory.Driver
	launcher interpreter.Launcher
	followUp func(string)
	logger   *slog.Logger

	mu sync.Mutex
	wg sync.WaitGroup
}

// New creates an Assistant. A nil launcher only logs actions.
func New(c *Config) *Assistant {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	launcher := c.Launcher
	if launcher == nil {
		launcher = interpreter.LogLauncher{Logger: logger}
	}

	return &Assistant{
		interp:   c.Interpreter,
		history:  c.History,
		launcher: launcher,
		followUp: c.FollowUp,
		logger:   logger,
	}
}

// Greeting is the first line said when the assistant starts.
func Greeting(user string) string {
	return fmt.Sprintf("Asistente iniciado. Hola %s, escribe 'neno chat' o usa la API para hablar conmigo.", user)
}

// Handle answers text. The exchange is appended to the transcript and any
// requested action is launched; blocking actions run in the background and
// report through FollowUp.
func (a *Assistant) Handle(ctx context.Context, text string) interpreter.Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return interpreter.Result{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	res := a.interp.Interpret(ctx, text)

	if res.Action != nil && !res.Action.Blocking() {
		if err := interpreter.Launch(ctx, a.launcher, res.Action); err != nil {
			a.logger.Error("action failed", "action", string(res.Action.Kind), "error", err)
			res.Reply = res.Action.Failure
		}
	}

	a.remember(ctx, memory.RoleUser, text)
	a.remember(ctx, memory.RoleAssistant, res.Reply)

	if res.Action != nil && res.Action.Blocking() {
		a.runBlocking(res.Action)
	}
	return res
}

// Wait blocks until background actions have finished.
func (a *Assistant) Wait() {
	a.wg.Wait()
}

func (a *Assistant) runBlocking(action *interpreter.Action) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.interp.Release()

		ctx, cancel := context.WithTimeout(context.Background(), blockingTimeout)
		defer cancel()

		line := action.FollowUp
		if err := interpreter.Launch(ctx, a.launcher, action); err != nil {
			a.logger.Error("blocking action failed", "action", string(action.Kind), "error", err)
			line = action.Failure
		}
		if line == "" {
			return
		}

		a.remember(ctx, memory.RoleAssistant, line)
		if a.followUp != nil {
			a.followUp(line)
		}
	}()
}

func (a *Assistant) remember(ctx context.Context, role, text string) {
	if err := a.history.Append(ctx, role, text); err != nil {
		a.logger.Warn("could not save conversation history", "error", err)
	}
}
