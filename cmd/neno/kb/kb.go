// Package kbcmder provides the kb command for the editable knowledge base.
package kbcmder

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/neno/pkg/cliui"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/dotdir"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/logger"
)

const kbLongDesc string = `Inspect the knowledge base.

The knowledge base is a JSON file shared by every user. Each entry has an
answer and one way to match a message: trigger phrases, a keyword set, a
regular expression or an exact question. Edit the file to teach the
assistant new answers; changes are picked up without a restart.

Examples:
  neno kb path
  neno kb list
  neno kb list --plain`

const kbShortDesc string = "Inspect the knowledge base"

func NewKBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kb",
		Aliases: []string{"knowledge"},
		Short:   kbShortDesc,
		Long:    kbLongDesc,
	}

	cmd.AddCommand(newPathCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func open(cmd *cobra.Command) (*knowledge.Base, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	_, dir, err := config.ResolveForCommand(cmd, nil)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, errors.New("could not resolve the neno directory")
	}

	return knowledge.New(filepath.Join(dir, dotdir.KnowledgeFile), logger.NewQuiet(debug))
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the knowledge base file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), kb.Path())
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the knowledge base entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := open(cmd)
			if err != nil {
				return err
			}

			md := toMarkdown(kb.Entries())
			if !plain {
				// Rendering failures fall back to the raw markdown.
				md, _ = cliui.RenderMarkdown(md)
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print markdown without terminal styling")

	return cmd
}

func toMarkdown(entries []knowledge.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Base de conocimiento (%d entradas)\n\n", len(entries))

	for i, e := range entries {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, matcher(e))
		fmt.Fprintf(&b, "%s\n\n", e.Answer)
	}
	return b.String()
}

func matcher(e knowledge.Entry) string {
	switch {
	case len(e.Triggers) > 0:
		return "Frases: " + quoteAll(e.Triggers, " / ")
	case len(e.Keywords) > 0:
		return "Palabras: " + quoteAll(e.Keywords, " + ")
	case e.Pattern != "":
		return "Patrón: `" + e.Pattern + "`"
	case e.Question != "":
		return "Pregunta: " + fmt.Sprintf("%q", e.Question)
	}
	return "Sin criterio"
}

func quoteAll(items []string, sep string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, sep)
}
