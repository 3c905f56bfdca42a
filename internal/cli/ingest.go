package cli

import (
	"github.com/spf13/cobra"

	"BrowseLens/internal/domain"
)

// NewIngestCmd creates the 'ingest' command for recording one activity event.
func NewIngestCmd(factory AppFactory) *cobra.Command {
	var event domain.ActivityEvent

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Record one browsing-activity event",
		Example: `  browselens ingest --user user123 --url https://github.com --text "pull request review" --duration 600
  browselens ingest --user user123 --url https://news.site/a --text "..." --clicks 4 --keypresses 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			record, count, err := application.Tracker.Ingest(cmd.Context(), event)
			if err != nil {
				return err
			}

			return printJSON(cmd, map[string]any{
				"status":       "ok",
				"record_id":    record.ID,
				"record_count": count,
			})
		},
	}

	cmd.Flags().StringVar(&event.UserID, "user", "", "User identifier (required)")
	cmd.Flags().StringVar(&event.URL, "url", "", "URL of the active tab (required)")
	cmd.Flags().StringVar(&event.Text, "text", "", "Visible text captured from the page (required)")
	cmd.Flags().StringVar(&event.Title, "title", "", "Page title")
	cmd.Flags().Float64Var(&event.DurationSeconds, "duration", 0, "Time on page in seconds")
	cmd.Flags().Float64Var(&event.StartTS, "start", 0, "Visit start, unix seconds")
	cmd.Flags().Float64Var(&event.EndTS, "end", 0, "Visit end, unix seconds")
	cmd.Flags().IntVar(&event.Clicks, "clicks", 0, "Click count")
	cmd.Flags().IntVar(&event.Keypresses, "keypresses", 0, "Keypress count")
	cmd.Flags().Float64Var(&event.EngagementScore, "engagement", 0, "Caller-supplied engagement score")

	return cmd
}
