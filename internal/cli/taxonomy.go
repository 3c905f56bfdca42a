package cli

import (
	"github.com/spf13/cobra"

	"BrowseLens/internal/taxonomy"
)

// NewTaxonomyCmd creates the 'taxonomy' command printing the fixed
// category set and its group mapping. Read-only, no app wiring needed.
func NewTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "taxonomy",
		Short:   "Print the category labels and their dashboard groups",
		Example: `  browselens taxonomy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, map[string]any{
				"labels": taxonomy.Labels(),
				"groups": taxonomy.Mapping(),
			})
		},
	}
}
