// Package chatcmder provides the chat command: an interactive conversation
// with the assistant in the terminal.
package chatcmder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/pkg/assistant"
	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/logger"
)

const chatLongDesc string = `Talk to the assistant in the terminal.

Every line is answered the same way "neno ask" answers it and is kept in the
conversation history. Say "Neno, charlemos" to switch to free conversation
with the configured chat provider, and "salir" (or press Ctrl-D) to leave.

API keys can be kept in a .env file next to where the command runs, for
example NENO_CHAT_API_KEY=... .

Examples:
  neno chat
  neno chat --provider ollama --model llama3.2`

const chatShortDesc string = "Talk to the assistant interactively"

var exitWords = map[string]bool{
	"salir": true,
	"exit":  true,
	"quit":  true,
}

type chatCommander struct {
	envFile string
	debug   bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.envFile, "env-file", ".env", "File with environment variables to load")
	assistantutils.AddCommandFlags(cmd)
	for _, key := range chatFlags {
		config.AddStringFlag(cmd, config.Flags, key, new(string))
	}

	return cmd
}

var chatFlags = []string{
	config.FlagChatProvider,
	config.FlagChatModel,
	config.FlagChatTarget,
	config.FlagSearchEngine,
}

func (c *chatCommander) run(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(c.envFile); err != nil {
		return err
	}

	log := logger.NewQuiet(c.debug)
	out := cmd.OutOrStdout()

	cfg, dir, err := config.ResolveForCommand(cmd, append(append([]string{}, assistantutils.CommandFlags...), chatFlags...))
	if err != nil {
		return err
	}

	rt, err := assistantutils.New(cmd.Context(), &assistantutils.NewAssistantOpts{
		Dir:      dir,
		Config:   cfg,
		Launcher: interpreter.LogLauncher{Logger: log, W: out},
		FollowUp: func(text string) {
			fmt.Fprintf(out, "\n%s%s\n", cliui.AssistantPrompt, text)
		},
		Logger: log,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintf(out, "%s%s\n", cliui.AssistantPrompt, assistant.Greeting(rt.User))
	return c.loop(cmd, rt.Assistant, cmd.InOrStdin(), out)
}

func (c *chatCommander) loop(cmd *cobra.Command, a *assistant.Assistant, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, cliui.UserPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitWords[strings.ToLower(line)] {
			fmt.Fprintf(out, "%s¡Hasta pronto!\n", cliui.AssistantPrompt)
			return nil
		}

		result := a.Handle(cmd.Context(), line)
		if result.Reply != "" {
			fmt.Fprintf(out, "%s%s\n", cliui.AssistantPrompt, result.Reply)
		}

		if err := cmd.Context().Err(); err != nil {
			return nil
		}
	}
}
