// Package storageutils builds the configured reminder storage driver.
package storageutils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/neno/pkg/storage"
	"github.com/papercomputeco/neno/pkg/storage/inmemory"
	"github.com/papercomputeco/neno/pkg/storage/jsonfile"
	"github.com/papercomputeco/neno/pkg/storage/postgres"
	"github.com/papercomputeco/neno/pkg/storage/sqlite"
)

type NewDriverOpts struct {
	// DriverType is one of json, memory, sqlite or postgres.
	DriverType string

	// JSONPath is the reminders.json file used by the json driver.
	JSONPath string

	SQLitePath  string
	PostgresDSN string
	Logger      *slog.Logger
}

func NewDriver(ctx context.Context, o *NewDriverOpts) (storage.Driver, error) {
	switch o.DriverType {
	case "", "json":
		if o.JSONPath == "" {
			return nil, errors.New("json storage requires a reminders file path")
		}
		return jsonfile.NewDriver(o.JSONPath, o.Logger)
	case "memory":
		return inmemory.NewDriver(), nil
	case "sqlite":
		if o.SQLitePath == "" {
			return nil, errors.New("sqlite storage requires storage.sqlite_path")
		}
		return sqlite.NewDriver(ctx, o.SQLitePath)
	case "postgres":
		if o.PostgresDSN == "" {
			return nil, errors.New("postgres storage requires storage.postgres_dsn")
		}
		return postgres.NewDriver(ctx, o.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", o.DriverType)
	}
}
