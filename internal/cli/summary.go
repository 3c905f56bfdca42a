package cli

import (
	"github.com/spf13/cobra"

	"BrowseLens/internal/domain"
)

// NewSummaryCmd creates the 'summary' command for dashboard queries.
func NewSummaryCmd(factory AppFactory) *cobra.Command {
	var (
		userID string
		period string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate a user's activity into a dashboard summary",
		Example: `  browselens summary --user user123
  browselens summary --user user123 --period daily`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}

			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Reporter.Summary(cmd.Context(), userID, parsed)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User identifier (required)")
	cmd.Flags().StringVar(&period, "period", "weekly", "Aggregation window: daily or weekly")

	return cmd
}
