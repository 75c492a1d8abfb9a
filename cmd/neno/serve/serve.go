// Package servecmder provides the serve command: the resident assistant that
// fires reminders and exposes the API and MCP server.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/api"
	"github.com/papercomputeco/neno/api/mcp"
	"github.com/papercomputeco/neno/pkg/assistant"
	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/daemon"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/scheduler"
	"github.com/papercomputeco/neno/pkg/storage/jsonfile"
)

type serveCommander struct {
	envFile string
	logFile string
	noAPI   bool
	debug   bool

	logger *slog.Logger
}

const serveLongDesc string = `Run the resident assistant.

The assistant checks the reminder list every poll interval and announces the
ones that are due, rescheduling daily reminders for the next day. While it
runs, the HTTP API and the MCP server (at /mcp) are served on the listen
address, and edits made to reminders.json by hand are picked up.

Only one instance may run per user; "neno status" shows the running one.

Examples:
  neno serve
  neno serve --listen 127.0.0.1:9000 --poll-interval 10s
  neno serve --storage sqlite --sqlite ~/.neno/reminders.db
  neno serve --no-api
  neno serve --log-file ~/.neno/serve.log --events-log ~/.neno/events.jsonl`

const serveShortDesc string = "Run the resident assistant"

var serveFlags = []string{
	config.FlagAPIListen,
	config.FlagPollInterval,
	config.FlagWorkers,
	config.FlagChatProvider,
	config.FlagChatModel,
	config.FlagChatTarget,
	config.FlagSearchEngine,
	config.FlagKafkaBrokers,
	config.FlagKafkaTopic,
	config.FlagEventsLog,
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.envFile, "env-file", ".env", "File with environment variables to load")
	cmd.Flags().BoolVar(&cmder.noAPI, "no-api", false, "Do not serve the HTTP API and MCP server")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append JSON logs to this file")

	assistantutils.AddCommandFlags(cmd)
	for _, key := range serveFlags {
		if key == config.FlagWorkers {
			config.AddUintFlag(cmd, config.Flags, key, new(uint))
			continue
		}
		config.AddStringFlag(cmd, config.Flags, key, new(string))
	}

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(c.envFile); err != nil {
		return err
	}

	closeLog, err := c.setupLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, dir, err := config.ResolveForCommand(cmd, append(append([]string{}, assistantutils.CommandFlags...), serveFlags...))
	if err != nil {
		return err
	}

	rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{
		Dir:      dir,
		Config:   cfg,
		Launcher: interpreter.LogLauncher{Logger: c.logger, W: out},
		FollowUp: func(text string) {
			fmt.Fprintf(out, "%s%s\n", cliui.AssistantPrompt, text)
		},
		Logger: c.logger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	manager, err := daemon.NewManager(rt.UserDir)
	if err != nil {
		return err
	}
	lock, err := manager.Lock()
	if err != nil {
		return err
	}
	defer lock.Release()

	sched, err := scheduler.New(&scheduler.Config{
		Store: rt.Store,
		Notifier: scheduler.MultiNotifier{
			&scheduler.WriterNotifier{W: out, Format: announce},
			scheduler.LogNotifier{Logger: c.logger},
		},
		Publisher:   rt.Publisher,
		Broadcaster: rt.Broadcaster,
		Interval:    cfg.Scheduler.Interval(),
		Workers:     cfg.Scheduler.Workers,
		User:        rt.User,
		Logger:      c.logger,
	})
	if err != nil {
		return err
	}

	unregister, err := rt.Broadcaster.Register(func() {
		c.logger.Debug("reminder list changed", "user", rt.User)
	})
	if err != nil {
		return err
	}
	defer unregister()

	state := &daemon.State{PID: os.Getpid(), User: rt.User}

	var apiServer *api.Server
	if !c.noAPI {
		err = cliui.Step(out, "Preparando la API en "+cfg.API.Listen, func() error {
			var err error
			apiServer, err = c.newAPIServer(cfg.API.Listen, rt)
			return err
		})
		if err != nil {
			return err
		}
		state.APIURL = apiURL(cfg.API.Listen)
	}

	if err := manager.SaveState(state); err != nil {
		return err
	}
	defer func() {
		if err := manager.ClearState(); err != nil {
			c.logger.Warn("could not clear serve state", "error", err)
		}
	}()

	fmt.Fprintf(out, "%s%s\n", cliui.AssistantPrompt, assistant.Greeting(rt.User))

	return c.serve(ctx, sched, apiServer, rt)
}

// setupLogger builds the console logger and, with --log-file, tees it into a
// JSON log file that records the source of every line.
func (c *serveCommander) setupLogger() (func(), error) {
	console := logger.NewCLI(c.debug)
	if c.logFile == "" {
		c.logger = console
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(c.logFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	c.logger = logger.Multi(console, logger.New(
		logger.WithJSON(true),
		logger.WithWriter(f),
		logger.WithDebug(c.debug),
		logger.WithSource(true),
	))
	return func() { _ = f.Close() }, nil
}

func (c *serveCommander) newAPIServer(listen string, rt *assistantutils.Runtime) (*api.Server, error) {
	mcpServer, err := mcp.NewServer(mcp.Config{
		Reminders: rt.Reminders,
		Assistant: rt.Assistant,
		History:   rt.History,
		Logger:    c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddr: listen,
		Reminders:  rt.Reminders,
		Assistant:  rt.Assistant,
		History:    rt.History,
		Knowledge:  rt.Knowledge,
		MCP:        mcpServer,
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("creating API server: %w", err)
	}
	return apiServer, nil
}

// serve runs the scheduler, the file watcher and the API server until ctx is
// cancelled or one of them fails.
func (c *serveCommander) serve(ctx context.Context, sched *scheduler.Scheduler, apiServer *api.Server, rt *assistantutils.Runtime) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sched.Run(ctx); err != nil {
			errChan <- fmt.Errorf("scheduler error: %w", err)
		}
	}()

	if store, ok := rt.Store.(*jsonfile.Driver); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Watch(ctx, rt.Broadcaster.Notify)
			if err != nil && !errors.Is(err, context.Canceled) {
				// Polling still picks up edits; only change notices are lost.
				c.logger.Warn("reminders file watcher stopped", "error", err)
			}
		}()
	}

	if apiServer != nil {
		go func() {
			if err := apiServer.Run(); err != nil {
				errChan <- fmt.Errorf("API server error: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		c.logger.Info("shutting down")
	case runErr = <-errChan:
	}

	cancel()
	if apiServer != nil {
		if err := apiServer.Shutdown(); err != nil {
			c.logger.Warn("could not shut down API server", "error", err)
		}
	}
	wg.Wait()

	return runErr
}

func announce(r *reminder.Reminder) string {
	return fmt.Sprintf("%s %s", cliui.BellMark, r.Text)
}

// apiURL turns a listen address into a URL clients can dial.
func apiURL(listen string) string {
	if strings.HasPrefix(listen, ":") {
		listen = "localhost" + listen
	}
	return "http://" + listen
}
