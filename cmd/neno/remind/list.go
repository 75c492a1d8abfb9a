package remindcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/utils"
)

type listCommander struct {
	json    bool
	pending bool
}

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reminders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.json, "json", false, "Print reminders as JSON")
	cmd.Flags().BoolVar(&cmder.pending, "pending", false, "Only show reminders that have not fired")
	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command) error {
	return withService(cmd, func(s *service.Service) error {
		reminders, err := s.List(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if c.json {
			if reminders == nil {
				reminders = []*reminder.Reminder{}
			}
			data, err := utils.MarshalJSONIndent(reminders)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		}

		if len(reminders) == 0 {
			fmt.Fprintf(w, "  %s No hay recordatorios.\n", cliui.DimStyle.Render("●"))
			return nil
		}

		fmt.Fprintln(w)
		for _, r := range reminders {
			if c.pending && r.Notified {
				continue
			}

			status := cliui.BellMark
			if r.Notified {
				status = cliui.SuccessMark
			}
			repeat := ""
			if r.Daily() {
				repeat = cliui.DimStyle.Render(" cada día")
			}

			fmt.Fprintf(w, "  %s %s  %s  %s%s\n",
				status,
				cliui.DimStyle.Render(r.ID[:min(shortID, len(r.ID))]),
				cliui.KeyStyle.Render(r.When),
				cliui.ValueStyle.Render(utils.Truncate(r.Text, 60)),
				repeat,
			)
		}
		fmt.Fprintln(w)
		return nil
	})
}

