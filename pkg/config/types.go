package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent neno configuration stored as config.toml
// in the .neno/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Assistant AssistantConfig `toml:"assistant"`
	Storage   StorageConfig   `toml:"storage"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Chat      ChatConfig      `toml:"chat"`
	API       APIConfig       `toml:"api"`
	Events    EventsConfig    `toml:"events"`
}

// AssistantConfig holds the persona and interpreter settings.
type AssistantConfig struct {
	Name string `toml:"name,omitempty"`

	// User overrides the operating system account used to pick the
	// users/<slug> data directory.
	User string `toml:"user,omitempty"`

	// SearchEngine is "google" or "duckduckgo".
	SearchEngine string `toml:"search_engine,omitempty"`
}

// StorageConfig selects the reminder storage driver.
type StorageConfig struct {
	// Driver is one of json, memory, sqlite or postgres.
	Driver      string `toml:"driver,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// SchedulerConfig holds reminder polling settings.
type SchedulerConfig struct {
	// PollInterval is a Go duration string such as "20s".
	PollInterval string `toml:"poll_interval,omitempty"`
	Workers      uint   `toml:"workers,omitempty"`
}

// Interval returns the parsed poll interval, falling back to the default on
// empty or invalid values.
func (s SchedulerConfig) Interval() time.Duration {
	d, err := time.ParseDuration(s.PollInterval)
	if err != nil || d <= 0 {
		return defaultPollInterval
	}
	return d
}

// ChatConfig holds the conversational backend settings. An empty provider
// disables chat mode.
type ChatConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	Target   string `toml:"target,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// EventsConfig holds reminder event streaming settings. Kafka streaming is
// off unless at least one broker is set.
type EventsConfig struct {
	// KafkaBrokers is a comma separated list of host:port pairs.
	KafkaBrokers string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string `toml:"kafka_topic,omitempty"`

	// LogPath, when set, also appends every event to a JSON lines file.
	LogPath string `toml:"log_path,omitempty"`
}

// Brokers splits KafkaBrokers into trimmed, non-empty addresses.
func (e EventsConfig) Brokers() []string {
	var out []string
	for _, b := range strings.Split(e.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"assistant.name": {
		get: func(c *Config) string { return c.Assistant.Name },
		set: func(c *Config, v string) error { c.Assistant.Name = v; return nil },
	},
	"assistant.user": {
		get: func(c *Config) string { return c.Assistant.User },
		set: func(c *Config, v string) error { c.Assistant.User = v; return nil },
	},
	"assistant.search_engine": {
		get: func(c *Config) string { return c.Assistant.SearchEngine },
		set: func(c *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "google" && v != "duckduckgo" {
				return fmt.Errorf("invalid value for assistant.search_engine: %q (available: google, duckduckgo)", v)
			}
			c.Assistant.SearchEngine = v
			return nil
		},
	},
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error {
			switch v {
			case "json", "memory", "sqlite", "postgres":
				c.Storage.Driver = v
				return nil
			}
			return fmt.Errorf("invalid value for storage.driver: %q (available: json, memory, sqlite, postgres)", v)
		},
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"scheduler.poll_interval": {
		get: func(c *Config) string { return c.Scheduler.PollInterval },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for scheduler.poll_interval: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("invalid value for scheduler.poll_interval: must be positive")
			}
			c.Scheduler.PollInterval = v
			return nil
		},
	},
	"scheduler.workers": {
		get: func(c *Config) string {
			if c.Scheduler.Workers == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Scheduler.Workers), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for scheduler.workers: %w", err)
			}
			c.Scheduler.Workers = uint(n)
			return nil
		},
	},
	"chat.provider": {
		get: func(c *Config) string { return c.Chat.Provider },
		set: func(c *Config, v string) error { c.Chat.Provider = v; return nil },
	},
	"chat.model": {
		get: func(c *Config) string { return c.Chat.Model },
		set: func(c *Config, v string) error { c.Chat.Model = v; return nil },
	},
	"chat.target": {
		get: func(c *Config) string { return c.Chat.Target },
		set: func(c *Config, v string) error { c.Chat.Target = v; return nil },
	},
	"chat.api_key": {
		get: func(c *Config) string { return c.Chat.APIKey },
		set: func(c *Config, v string) error { c.Chat.APIKey = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"events.kafka_brokers": {
		get: func(c *Config) string { return c.Events.KafkaBrokers },
		set: func(c *Config, v string) error { c.Events.KafkaBrokers = v; return nil },
	},
	"events.kafka_topic": {
		get: func(c *Config) string { return c.Events.KafkaTopic },
		set: func(c *Config, v string) error { c.Events.KafkaTopic = v; return nil },
	},
	"events.log_path": {
		get: func(c *Config) string { return c.Events.LogPath },
		set: func(c *Config, v string) error { c.Events.LogPath = v; return nil },
	},
}
