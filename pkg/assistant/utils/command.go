package assistantutils

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/interpreter"
)

// CommandFlags are the registry flags every command that opens the
// assistant binds.
var CommandFlags = []string{
	config.FlagUser,
	config.FlagStorageDriver,
	config.FlagSQLite,
	config.FlagPostgres,
}

// AddCommandFlags registers CommandFlags on cmd. Their values are read back
// through viper, so the flag targets are not kept.
func AddCommandFlags(cmd *cobra.Command) {
	for _, key := range CommandFlags {
		config.AddStringFlag(cmd, config.Flags, key, new(string))
	}
}

// FromCommand resolves the configuration of cmd (flags, environment and
// config.toml) and wires a Runtime from it.
func FromCommand(cmd *cobra.Command, extraFlags []string, launcher interpreter.Launcher, logger *slog.Logger) (*Runtime, *config.Config, error) {
	cfg, dir, err := config.ResolveForCommand(cmd, append(append([]string{}, CommandFlags...), extraFlags...))
	if err != nil {
		return nil, nil, err
	}

	rt, err := New(cmd.Context(), &NewAssistantOpts{
		Dir:      dir,
		Config:   cfg,
		Launcher: launcher,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return rt, cfg, nil
}
