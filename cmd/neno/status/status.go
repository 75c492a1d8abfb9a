// Package statuscmder provides the status command.
package statuscmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/daemon"
	"github.com/papercomputeco/neno/pkg/logger"
)

const statusLongDesc string = `Show whether "neno serve" is running for the current user,
where its data lives and how many reminders are stored.

Examples:
  neno status
  neno status --user ana`

const statusShortDesc string = "Show the assistant status"

const keyWidth = 10

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	assistantutils.AddCommandFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	rt, cfg, err := assistantutils.FromCommand(cmd, nil, nil, logger.NewQuiet(debug))
	if err != nil {
		return err
	}
	defer rt.Close()

	manager, err := daemon.NewManager(rt.UserDir)
	if err != nil {
		return err
	}

	reminders, err := rt.Reminders.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing reminders: %w", err)
	}
	pending := 0
	for _, r := range reminders {
		if !r.Notified {
			pending++
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, cliui.StepStyle.Render("Neno"))
	fmt.Fprintln(w, cliui.KeyValue("user", keyWidth, rt.User))
	fmt.Fprintln(w, cliui.KeyValue("directory", keyWidth, rt.UserDir))
	fmt.Fprintln(w, cliui.KeyValue("storage", keyWidth, cfg.Storage.Driver))
	fmt.Fprintln(w, cliui.KeyValue("reminders", keyWidth, fmt.Sprintf("%d (%d pending)", len(reminders), pending)))
	fmt.Fprintln(w, cliui.KeyValue("chat", keyWidth, cfg.Chat.Provider))

	if !manager.Running() {
		fmt.Fprintln(w, cliui.KeyValue("serve", keyWidth, "stopped"))
		return nil
	}

	state, err := manager.LoadState()
	if err != nil {
		return err
	}
	if state == nil {
		fmt.Fprintln(w, cliui.KeyValue("serve", keyWidth, "running"))
		return nil
	}

	uptime := cliui.FormatDuration(time.Since(state.StartedAt).Truncate(time.Second))
	fmt.Fprintln(w, cliui.KeyValue("serve", keyWidth, fmt.Sprintf("running (pid %d, up %s)", state.PID, uptime)))
	fmt.Fprintln(w, cliui.KeyValue("api", keyWidth, state.APIURL))
	return nil
}
