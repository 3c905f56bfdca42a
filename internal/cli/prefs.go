package cli

import (
	"github.com/spf13/cobra"
)

// NewPrefsCmd creates the 'prefs' command group for site-category overrides.
func NewPrefsCmd(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage per-user site category overrides",
	}

	cmd.AddCommand(newPrefsSetCmd(factory))
	cmd.AddCommand(newPrefsGetCmd(factory))

	return cmd
}

func newPrefsSetCmd(factory AppFactory) *cobra.Command {
	var userID, site, category string

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Override the category for one site",
		Example: `  browselens prefs set --user user123 --site news.ycombinator.com --category Programming`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Prefs.SetPreference(cmd.Context(), userID, site, category); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"status": "ok"})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User identifier (required)")
	cmd.Flags().StringVar(&site, "site", "", "Site host (required)")
	cmd.Flags().StringVar(&category, "category", "", "Taxonomy category label (required)")

	return cmd
}

func newPrefsGetCmd(factory AppFactory) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:     "get",
		Short:   "Show a user's site category overrides",
		Example: `  browselens prefs get --user user123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			prefs, err := application.Prefs.Preferences(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"user_id":     userID,
				"preferences": prefs,
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User identifier (required)")

	return cmd
}
