// Package cli assembles the cobra command tree. Commands print JSON to
// stdout; logs go to stderr.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"BrowseLens/internal/app"
)

// AppFactory builds the wired application on first command execution so
// config and store setup only happen for commands that need them.
type AppFactory func() (*app.Application, error)

// NewRootCmd creates the browselens root command.
func NewRootCmd(factory AppFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "browselens",
		Short:         "Browsing-activity analysis and dashboard summaries",
		Long:          "BrowseLens analyzes captured browsing text with sentiment, emotion, and\nzero-shot category models, stores the enriched activity per user, and\nserves time-windowed dashboard summaries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewAnalyzeCmd(factory))
	root.AddCommand(NewIngestCmd(factory))
	root.AddCommand(NewSummaryCmd(factory))
	root.AddCommand(NewActivityCmd(factory))
	root.AddCommand(NewClearCmd(factory))
	root.AddCommand(NewPrefsCmd(factory))
	root.AddCommand(NewTaxonomyCmd())
	root.AddCommand(NewDigestCmd(factory))

	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(out))
	return nil
}
