package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ActionKind names something the assistant does on the user's machine.
type ActionKind string

const (
	ActionWebSearch    ActionKind = "web_search"
	ActionOpenMail     ActionKind = "open_mail"
	ActionOpenEditor   ActionKind = "open_editor"
	ActionOpenTerminal ActionKind = "open_terminal"
)

// Action is a side effect requested by a message.
type Action struct {
	Kind  ActionKind `json:"kind"`
	URL   string     `json:"url,omitempty"`
	Query string     `json:"query,omitempty"`

	// FollowUp is said once the action finished, Failure when it failed.
	FollowUp string `json:"follow_up,omitempty"`
	Failure  string `json:"failure,omitempty"`
}

// Blocking reports whether the action holds the assistant until it ends.
func (a *Action) Blocking() bool {
	return a.Kind == ActionOpenTerminal
}

// Launcher executes actions on the host.
type Launcher interface {
	OpenURL(ctx context.Context, url string) error
	OpenMail(ctx context.Context) error
	OpenEditor(ctx context.Context) error
	OpenTerminal(ctx context.Context) error
}

// Launch runs a through l.
func Launch(ctx context.Context, l Launcher, a *Action) error {
	switch a.Kind {
	case ActionWebSearch:
		return l.OpenURL(ctx, a.URL)
	case ActionOpenMail:
		return l.OpenMail(ctx)
	case ActionOpenEditor:
		return l.OpenEditor(ctx)
	case ActionOpenTerminal:
		return l.OpenTerminal(ctx)
	default:
		return fmt.Errorf("unknown action %q", a.Kind)
	}
}

// LogLauncher records actions instead of starting programs. Lines are also
// written to W when set, so a terminal user can follow links by hand.
type LogLauncher struct {
	Logger *slog.Logger
	W      io.Writer
}

func (l LogLauncher) OpenURL(_ context.Context, url string) error {
	l.Logger.Info("open url", "url", url)
	l.print("→ " + url)
	return nil
}

func (l LogLauncher) OpenMail(_ context.Context) error {
	l.Logger.Info("open mail client")
	l.print("→ mailto:")
	return nil
}

func (l LogLauncher) OpenEditor(_ context.Context) error {
	l.Logger.Info("open text editor")
	return nil
}

func (l LogLauncher) OpenTerminal(_ context.Context) error {
	l.Logger.Info("open terminal")
	return nil
}

func (l LogLauncher) print(line string) {
	if l.W != nil {
		fmt.Fprintln(l.W, line)
	}
}
