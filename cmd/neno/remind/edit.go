package remindcmder

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
)

type editCommander struct {
	text  string
	when  string
	daily bool
	once  bool
}

const editLongDesc string = `Edit a reminder.

Only the given fields change. Editing always marks the reminder as pending
again, so it fires at its new time.

Examples:
  neno remind edit 3f2a --when 22:00
  neno remind edit 3f2a --text "llamar a Luis" --once`

func newEditCmd() *cobra.Command {
	cmder := &editCommander{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a reminder",
		Long:  editLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.text, "text", "t", "", "New reminder text")
	cmd.Flags().StringVarP(&cmder.when, "when", "w", "", "New due time as DD/MM/YYYY HH:MM or HH:MM")
	cmd.Flags().BoolVar(&cmder.daily, "daily", false, "Repeat the reminder every day")
	cmd.Flags().BoolVar(&cmder.once, "once", false, "Stop repeating the reminder")
	cmd.MarkFlagsMutuallyExclusive("daily", "once")
	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func (c *editCommander) run(cmd *cobra.Command, idPrefix string) error {
	if c.text == "" && c.when == "" && !c.daily && !c.once {
		return errors.New("nothing to change: pass --text, --when, --daily or --once")
	}
	if c.when != "" {
		if err := reminder.ValidateWhen(c.when); err != nil {
			return err
		}
	}

	return withService(cmd, func(s *service.Service) error {
		ctx := cmd.Context()

		id, err := resolveID(cmd, s, idPrefix)
		if err != nil {
			return err
		}
		current, err := s.Get(ctx, id)
		if err != nil {
			return err
		}

		text := strings.TrimSpace(c.text)
		if text == "" {
			text = current.Text
		}
		when := c.when
		if when == "" {
			when = current.When
		}
		repeat := current.Repeat
		switch {
		case c.daily:
			repeat = reminder.RepeatDaily
		case c.once:
			repeat = reminder.RepeatNone
		}

		r, err := s.Update(ctx, id, text, when, repeat)
		if err != nil {
			return err
		}
		printReminder(cmd.OutOrStdout(), "Actualizado:", r)
		return nil
	})
}
