package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --provider
// on both "neno serve" and "neno chat").
type Flag struct {
	// Name is the long flag name (e.g. "provider").
	Name string

	// Shorthand is the one-letter short flag (e.g. "p"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "chat.provider").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagAPIListen     = "api-listen"
	FlagStorageDriver = "storage"
	FlagSQLite        = "sqlite"
	FlagPostgres      = "postgres"
	FlagPollInterval  = "poll-interval"
	FlagWorkers       = "workers"
	FlagChatProvider  = "provider"
	FlagChatModel     = "model"
	FlagChatTarget    = "target"
	FlagSearchEngine  = "search-engine"
	FlagUser          = "user"
	FlagKafkaBrokers  = "kafka-brokers"
	FlagKafkaTopic    = "kafka-topic"
	FlagEventsLog     = "events-log"
)

// Flags is the shared registry of every flag a neno command may expose.
var Flags = FlagSet{
	FlagAPIListen:     {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for the API server to listen on"},
	FlagStorageDriver: {Name: "storage", ViperKey: "storage.driver", Description: "Reminder storage driver (json, memory, sqlite, postgres)"},
	FlagSQLite:        {Name: "sqlite", Shorthand: "s", ViperKey: "storage.sqlite_path", Description: "Path to the SQLite reminder database"},
	FlagPostgres:      {Name: "postgres", ViperKey: "storage.postgres_dsn", Description: "PostgreSQL connection string"},
	FlagPollInterval:  {Name: "poll-interval", ViperKey: "scheduler.poll_interval", Description: "How often due reminders are checked"},
	FlagWorkers:       {Name: "workers", ViperKey: "scheduler.workers", Description: "Number of notification workers"},
	FlagChatProvider:  {Name: "provider", Shorthand: "p", ViperKey: "chat.provider", Description: "Conversational backend (ollama, openai, anthropic)"},
	FlagChatModel:     {Name: "model", Shorthand: "m", ViperKey: "chat.model", Description: "Model used by the conversational backend"},
	FlagChatTarget:    {Name: "target", ViperKey: "chat.target", Description: "Base URL of the conversational backend"},
	FlagSearchEngine:  {Name: "search-engine", ViperKey: "assistant.search_engine", Description: "Web search engine (google, duckduckgo)"},
	FlagUser:          {Name: "user", ViperKey: "assistant.user", Description: "Account name used for the per-user data directory"},
	FlagKafkaBrokers:  {Name: "kafka-brokers", ViperKey: "events.kafka_brokers", Description: "Comma separated Kafka brokers for reminder events"},
	FlagKafkaTopic:    {Name: "kafka-topic", ViperKey: "events.kafka_topic", Description: "Kafka topic for reminder events"},
	FlagEventsLog:     {Name: "events-log", ViperKey: "events.log_path", Description: "JSON lines file that also receives reminder events"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}

// ResolveForCommand initialises viper from the --config-dir flag, binds the
// given registry flags of cmd and returns the resolved Config together with
// the .neno directory it was read from.
func ResolveForCommand(cmd *cobra.Command, registryKeys []string) (*Config, string, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := InitViper(configDir)
	if err != nil {
		return nil, "", err
	}
	BindRegisteredFlags(v, cmd, Flags, registryKeys)

	return FromViper(v), v.GetString("dir"), nil
}
