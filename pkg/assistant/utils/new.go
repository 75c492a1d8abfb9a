// Package assistantutils builds a fully wired assistant from the resolved
// configuration: storage, events, history, knowledge base and chat backend.
package assistantutils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/papercomputeco/neno/pkg/assistant"
	"github.com/papercomputeco/neno/pkg/chat"
	chatutils "github.com/papercomputeco/neno/pkg/chat/utils"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/dotdir"
	"github.com/papercomputeco/neno/pkg/eventstream"
	eventstreamutils "github.com/papercomputeco/neno/pkg/eventstream/utils"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/memory/jsonfile"
	"github.com/papercomputeco/neno/pkg/memory/local"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/storage"
	"github.com/papercomputeco/neno/pkg/storage/sqlite"
	storageutils "github.com/papercomputeco/neno/pkg/storage/utils"
)

type NewAssistantOpts struct {
	// Dir is the resolved .neno directory.
	Dir    string
	Config *config.Config

	// Launcher executes actions. Defaults to logging them.
	Launcher interpreter.Launcher

	// FollowUp receives the line said after a blocking action.
	FollowUp func(string)

	Logger *slog.Logger
}

// Runtime holds every component of one user's assistant.
type Runtime struct {
	User    string
	UserDir string

	Store       storage.Driver
	Publisher   eventstream.Publisher
	Broadcaster *eventstream.Broadcaster
	Reminders   *service.Service
	History     memory.Driver
	Knowledge   *knowledge.Base
	Chat        *chat.Session
	Interpreter *interpreter.Interpreter
	Assistant   *assistant.Assistant
}

// New wires a Runtime. A chat provider that is not configured leaves chat
// mode unavailable instead of failing.
func New(ctx context.Context, o *NewAssistantOpts) (*Runtime, error) {
	if o.Dir == "" {
		return nil, errors.New("neno directory is required")
	}
	cfg := o.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rt := &Runtime{User: dotdir.SanitizeUsername(cfg.Assistant.User)}
	if cfg.Assistant.User == "" {
		rt.User = dotdir.UserSlug()
	}

	var err error
	rt.UserDir, err = dotdir.UserDir(o.Dir, rt.User)
	if err != nil {
		return nil, err
	}

	remindersPath, err := dotdir.UserFile(o.Dir, rt.User, dotdir.RemindersFile)
	if err != nil {
		logger.Warn("could not migrate shared reminders file", "error", err)
	}
	historyPath, err := dotdir.UserFile(o.Dir, rt.User, dotdir.HistoryFile)
	if err != nil {
		logger.Warn("could not migrate shared history file", "error", err)
	}

	rt.Store, err = storageutils.NewDriver(ctx, &storageutils.NewDriverOpts{
		DriverType:  cfg.Storage.Driver,
		JSONPath:    remindersPath,
		SQLitePath:  sqlite.ResolvePath(rt.UserDir, cfg.Storage.SQLitePath),
		PostgresDSN: cfg.Storage.PostgresDSN,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating reminder storage: %w", err)
	}

	rt.Publisher, err = eventstreamutils.NewPublisher(&eventstreamutils.NewPublisherOpts{
		KafkaBrokers:  cfg.Events.Brokers(),
		KafkaTopic:    cfg.Events.KafkaTopic,
		EventsLogPath: cfg.Events.LogPath,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("creating event publisher: %w", err)
	}

	rt.Broadcaster = eventstream.NewBroadcaster(logger)
	rt.Reminders = service.New(rt.Store,
		service.WithPublisher(rt.Publisher),
		service.WithBroadcaster(rt.Broadcaster),
		service.WithUser(rt.User),
		service.WithLogger(logger),
	)

	if cfg.Storage.Driver == "memory" {
		rt.History = local.NewDriver()
	} else {
		rt.History = jsonfile.NewDriver(historyPath, logger)
	}

	rt.Knowledge, err = knowledge.New(filepath.Join(o.Dir, dotdir.KnowledgeFile), logger)
	if err != nil {
		logger.Warn("using built-in knowledge base", "error", err)
		rt.Knowledge = knowledge.NewStatic(knowledge.Defaults())
	}

	backend, err := chatutils.NewBackend(&chatutils.NewBackendOpts{
		Provider: cfg.Chat.Provider,
		Model:    cfg.Chat.Model,
		Target:   cfg.Chat.Target,
		APIKey:   cfg.Chat.APIKey,
	})
	if err != nil {
		if !errors.Is(err, chat.ErrNotConfigured) {
			rt.Close()
			return nil, err
		}
		logger.Debug("chat backend not configured", "reason", err)
		backend = nil
	}
	rt.Chat = chat.NewSession(backend, logger)

	rt.Interpreter = interpreter.New(&interpreter.Config{
		Reminders:    rt.Reminders,
		History:      rt.History,
		Knowledge:    rt.Knowledge,
		Chat:         rt.Chat,
		SearchEngine: cfg.Assistant.SearchEngine,
		Logger:       logger,
	})
	rt.Assistant = assistant.New(&assistant.Config{
		Interpreter: rt.Interpreter,
		History:     rt.History,
		Launcher:    o.Launcher,
		FollowUp:    o.FollowUp,
		Logger:      logger,
	})

	return rt, nil
}

// Close waits for running actions and releases storage, history and the
// event publisher.
func (rt *Runtime) Close() error {
	if rt.Assistant != nil {
		rt.Assistant.Wait()
	}

	var errs []error
	if rt.History != nil {
		errs = append(errs, rt.History.Close())
	}
	if rt.Publisher != nil {
		errs = append(errs, rt.Publisher.Close())
	}
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	return errors.Join(errs...)
}
