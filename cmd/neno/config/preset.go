package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/config"
)

const presetLongDesc string = `Configure the conversational backend from a preset.

Replaces the chat section of config.toml with the provider, model and
base URL of the named preset. An API key already configured for the same
provider is kept; otherwise set chat.api_key or export OPENAI_API_KEY /
ANTHROPIC_API_KEY.

Presets: ollama, openai, anthropic

Examples:
  neno config preset ollama
  neno config preset anthropic`

const presetShortDesc string = "Configure a chat backend preset"

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "preset <name>",
		Short:     presetShortDesc,
		Long:      presetLongDesc,
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.ValidPresetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runPreset(cmd, args[0], configDir)
		},
	}

	return cmd
}

func runPreset(cmd *cobra.Command, name, configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.ApplyPreset(name)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printTarget(w, cfger)
	fmt.Fprintf(w, "  %s Chat backend set to %s (%s)\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(cfg.Chat.Provider),
		cliui.ValueStyle.Render(cfg.Chat.Model),
	)

	if cfg.Chat.Provider != "ollama" && cfg.Chat.APIKey == "" {
		env := strings.ToUpper(cfg.Chat.Provider) + "_API_KEY"
		fmt.Fprintf(w, "  %s\n", cliui.DimStyle.Render("Set chat.api_key or export "+env+" to use it."))
	}
	fmt.Fprintln(w)
	return nil
}
