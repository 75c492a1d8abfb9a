// Package historycmder provides the history command for inspecting and
// clearing the conversation transcript.
package historycmder

import (
	"fmt"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/utils"
)

const historyLongDesc string = `Inspect the conversation history.

The assistant keeps the last 200 lines of conversation per user and reads
personal facts (name, city, doctor, medication...) back from them.

Examples:
  neno history show --limit 20
  neno history facts
  neno history clear`

const historyShortDesc string = "Inspect the conversation history"

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: historyShortDesc,
		Long:  historyLongDesc,
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newFactsCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func withHistory(cmd *cobra.Command, fn func(h memory.Driver) error) error {
	debug, _ := cmd.Flags().GetBool("debug")

	rt, _, err := assistantutils.FromCommand(cmd, nil, nil, logger.NewQuiet(debug))
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(rt.History)
}

func newShowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the conversation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(cmd, func(h memory.Driver) error {
				entries, err := h.Load(cmd.Context())
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(w, "  %s Todavía no hemos hablado.\n", cliui.DimStyle.Render("●"))
					return nil
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[len(entries)-limit:]
				}

				for _, e := range entries {
					prompt := cliui.AssistantPrompt
					if memory.IsUserRole(e.Role) {
						prompt = cliui.UserPrompt
					}
					fmt.Fprintf(w, "%s%s\n", prompt, utils.Truncate(e.Text, 200))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Only show the last n lines")
	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func newFactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Print the personal facts found in the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(cmd, func(h memory.Driver) error {
				facts, err := memory.RecallAll(cmd.Context(), h)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if len(facts) == 0 {
					fmt.Fprintf(w, "  %s No conozco ningún dato personal todavía.\n", cliui.DimStyle.Render("●"))
					return nil
				}

				width := 0
				for _, f := range facts {
					width = max(width, len(f.Kind))
				}
				for _, f := range facts {
					fmt.Fprintln(w, cliui.KeyValue(string(f.Kind), width, f.Value))
				}
				return nil
			})
		},
	}

	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the whole conversation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(cmd, func(h memory.Driver) error {
				if err := h.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s Historial borrado.\n", cliui.SuccessMark)
				return nil
			})
		},
	}

	assistantutils.AddCommandFlags(cmd)

	return cmd
}
