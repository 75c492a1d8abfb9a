// Package askcmder provides the ask command: one message in, one reply out.
package askcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/logger"
)

const askLongDesc string = `Send a single message to the assistant and print its reply.

The message goes through the same interpreter as "neno chat": reminders,
personal facts, searches and knowledge base questions all work, and the
exchange is added to the conversation history. Actions such as web searches
are printed instead of opened.

Examples:
  neno ask "recuérdame llamar a Luis a las 18:30"
  neno ask "¿cómo me llamo?"
  neno ask neno busca recetas de tortilla`

const askShortDesc string = "Send one message to the assistant"

func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <text>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, strings.Join(args, " "))
		},
	}

	assistantutils.AddCommandFlags(cmd)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchEngine, new(string))

	return cmd
}

func run(cmd *cobra.Command, text string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	log := logger.NewQuiet(debug)
	w := cmd.OutOrStdout()

	rt, _, err := assistantutils.FromCommand(cmd,
		[]string{config.FlagSearchEngine},
		interpreter.LogLauncher{Logger: log, W: w},
		log,
	)
	if err != nil {
		return err
	}
	defer rt.Close()

	result := rt.Assistant.Handle(cmd.Context(), text)
	if result.Reply != "" {
		fmt.Fprintln(w, result.Reply)
	}
	return nil
}
