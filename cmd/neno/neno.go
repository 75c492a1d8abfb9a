// Package nenocmder builds the neno root command.
package nenocmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/neno/cmd/neno/ask"
	chatcmder "github.com/papercomputeco/neno/cmd/neno/chat"
	configcmder "github.com/papercomputeco/neno/cmd/neno/config"
	historycmder "github.com/papercomputeco/neno/cmd/neno/history"
	kbcmder "github.com/papercomputeco/neno/cmd/neno/kb"
	remindcmder "github.com/papercomputeco/neno/cmd/neno/remind"
	servecmder "github.com/papercomputeco/neno/cmd/neno/serve"
	statuscmder "github.com/papercomputeco/neno/cmd/neno/status"
	versioncmder "github.com/papercomputeco/neno/cmd/version"
)

const nenoLongDesc string = `Neno is a resident assistant that speaks Spanish: it keeps your reminders,
remembers what you tell it and answers questions.

Run the assistant with:
  neno serve           Poll reminders and serve the HTTP and MCP APIs
  neno chat            Talk to the assistant in the terminal
  neno ask <text>      Send a single message
  neno remind list     Manage reminders`

const nenoShortDesc string = "Neno - Spanish desktop assistant"

func NewNenoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "neno",
		Short:         nenoShortDesc,
		Long:          nenoLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .neno directory (default: ./.neno or ~/.neno)")

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(remindcmder.NewRemindCmd())
	cmd.AddCommand(historycmder.NewHistoryCmd())
	cmd.AddCommand(kbcmder.NewKBCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
