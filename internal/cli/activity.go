package cli

import (
	"github.com/spf13/cobra"
)

// NewActivityCmd creates the 'activity' command listing recent records.
func NewActivityCmd(factory AppFactory) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "activity",
		Short:   "List a user's recent activity records",
		Example: `  browselens activity --user user123 --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			records, err := application.Tracker.Activity(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"user_id": userID,
				"count":   len(records),
				"items":   records,
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User identifier (required)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum records to return (clamped to 1..1000)")

	return cmd
}

// NewClearCmd creates the 'clear' command removing a user's records.
func NewClearCmd(factory AppFactory) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Remove all stored activity for a user",
		Example: `  browselens clear --user user123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			removed, err := application.Tracker.Clear(cmd.Context(), userID)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"status":  "ok",
				"removed": removed,
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User identifier (required)")

	return cmd
}
