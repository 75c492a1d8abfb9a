// Package remindcmder provides the remind command for managing reminders
// from the terminal.
package remindcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/storage"
)

const remindLongDesc string = `Manage reminders.

Reminders are kept per operating system user. Times are written as
DD/MM/YYYY HH:MM, or HH:MM for the next time that hour comes around.
A running "neno serve" picks up changes on its next poll.

Examples:
  neno remind add "tomar la pastilla" --when 21:00 --daily
  neno remind add "cita con el médico" --when "24/11/2026 10:30"
  neno remind list
  neno remind edit 3f2a --when 22:00
  neno remind delete 3f2a`

const remindShortDesc string = "Manage reminders"

// shortID is how many ID characters list shows.
const shortID = 8

func NewRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remind",
		Aliases: []string{"reminders"},
		Short:   remindShortDesc,
		Long:    remindLongDesc,
	}

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newDeleteCmd())

	return cmd
}

// withService opens the reminder service of the configured user and runs fn.
func withService(cmd *cobra.Command, fn func(s *service.Service) error) error {
	debug, _ := cmd.Flags().GetBool("debug")

	rt, _, err := assistantutils.FromCommand(cmd, nil, nil, logger.NewQuiet(debug))
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(rt.Reminders)
}

// resolveID accepts a full reminder ID or an unambiguous prefix of one.
func resolveID(cmd *cobra.Command, s *service.Service, prefix string) (string, error) {
	reminders, err := s.List(cmd.Context())
	if err != nil {
		return "", err
	}

	var matches []string
	for _, r := range reminders {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", storage.NotFoundError{ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("reminder id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func printReminder(w io.Writer, verb string, r *reminder.Reminder) {
	repeat := ""
	if r.Daily() {
		repeat = cliui.DimStyle.Render(" (cada día)")
	}
	fmt.Fprintf(w, "  %s %s %s %s%s\n",
		cliui.SuccessMark,
		verb,
		cliui.ValueStyle.Render("'"+r.Text+"'"),
		reminder.FormatForSpeech(r.When),
		repeat,
	)
	fmt.Fprintf(w, "    %s\n", cliui.DimStyle.Render("id "+r.ID))
}
