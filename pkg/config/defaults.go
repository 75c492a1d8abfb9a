package config

import "time"

const (
	defaultAssistantName = "Neno"
	defaultSearchEngine  = "google"

	defaultStorageDriver = "json"

	defaultPollInterval = 20 * time.Second
	defaultWorkers      = 2

	defaultAPIListen = "127.0.0.1:8787"

	defaultKafkaTopic = "neno.reminders"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Assistant: AssistantConfig{
			Name:         defaultAssistantName,
			SearchEngine: defaultSearchEngine,
		},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
		},
		Scheduler: SchedulerConfig{
			PollInterval: defaultPollInterval.String(),
			Workers:      defaultWorkers,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Events: EventsConfig{
			KafkaTopic: defaultKafkaTopic,
		},
	}
}
