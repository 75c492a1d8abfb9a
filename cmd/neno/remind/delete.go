package remindcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/reminder/service"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0])
		},
	}

	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, idPrefix string) error {
	return withService(cmd, func(s *service.Service) error {
		id, err := resolveID(cmd, s, idPrefix)
		if err != nil {
			return err
		}
		if err := s.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s Recordatorio eliminado %s\n", cliui.SuccessMark, cliui.DimStyle.Render(id))
		return nil
	})
}
