// Package configcmder provides the config command for managing persistent
// neno configuration stored in the .neno/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/config"
)

const configLongDesc string = `Manage persistent neno configuration.

Configuration is stored as config.toml in the .neno/ directory and provides
default values for command flags. CLI flags and NENO_* environment variables
always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  assistant.name, assistant.user, assistant.search_engine,
  storage.driver, storage.sqlite_path, storage.postgres_dsn,
  scheduler.poll_interval, scheduler.workers,
  chat.provider, chat.model, chat.target, chat.api_key,
  api.listen, events.kafka_brokers, events.kafka_topic, events.log_path

Use subcommands to get, set, or list configuration values:
  neno config set <key> <value>    Set a configuration value
  neno config get <key>            Get a configuration value
  neno config list                 List all configuration values
  neno config preset <name>        Configure a chat backend preset

Examples:
  neno config set chat.provider ollama
  neno config set scheduler.poll_interval 10s
  neno config preset anthropic
  neno config list`

const configShortDesc string = "Manage persistent neno configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPresetCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func checkKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func printTarget(w io.Writer, cfger *config.Configer) {
	if target := cfger.GetTarget(); target != "" {
		fmt.Fprintf(w, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}

// display masks secrets.
func display(key, value string) string {
	if config.IsSecretKey(key) {
		return cliui.Mask(value)
	}
	return value
}
