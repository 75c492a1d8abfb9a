package remindcmder

import (
	"strings"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
)

type addCommander struct {
	when  string
	daily bool
}

const addLongDesc string = `Add a reminder.

The text is everything after "add". --when takes DD/MM/YYYY HH:MM or HH:MM;
a bare time is stored as its next occurrence.

Examples:
  neno remind add regar las plantas --when 19:30
  neno remind add "tomar la pastilla" --when 09:00 --daily`

func newAddCmd() *cobra.Command {
	cmder := &addCommander{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a reminder",
		Long:  addLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.when, "when", "w", "", "Due time as DD/MM/YYYY HH:MM or HH:MM")
	cmd.Flags().BoolVar(&cmder.daily, "daily", false, "Repeat the reminder every day")
	_ = cmd.MarkFlagRequired("when")
	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func (c *addCommander) run(cmd *cobra.Command, text string) error {
	if err := reminder.ValidateWhen(c.when); err != nil {
		return err
	}

	repeat := reminder.RepeatNone
	if c.daily {
		repeat = reminder.RepeatDaily
	}

	return withService(cmd, func(s *service.Service) error {
		r, err := s.Add(cmd.Context(), text, c.when, repeat)
		if err != nil {
			return err
		}
		printReminder(cmd.OutOrStdout(), "Recordaré", r)
		return nil
	})
}
