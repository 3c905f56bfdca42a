package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"BrowseLens/internal/analyzer"
)

// NewAnalyzeCmd creates the 'analyze' command for one-shot content analysis.
func NewAnalyzeCmd(factory AppFactory) *cobra.Command {
	var (
		text        string
		pageURL     string
		noSentiment bool
		noCategory  bool
		noEmotions  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a text snippet or a live page",
		Example: `  browselens analyze --text "I love this article"
  browselens analyze --url https://example.com/post
  browselens analyze --text "..." --no-emotions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" && pageURL == "" {
				return fmt.Errorf("either --text or --url is required")
			}

			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			ctx := cmd.Context()
			if text == "" {
				page, err := application.Extractor.Extract(ctx, pageURL)
				if err != nil {
					return fmt.Errorf("extract page: %w", err)
				}
				text = page.Text
			}

			opts := analyzer.Options{
				Sentiment: !noSentiment,
				Category:  !noCategory,
				Emotions:  !noEmotions,
			}
			result, err := application.Analyzer.Analyze(ctx, text, pageURL, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Text to analyze")
	cmd.Flags().StringVarP(&pageURL, "url", "u", "", "Page URL to extract and analyze")
	cmd.Flags().BoolVar(&noSentiment, "no-sentiment", false, "Skip sentiment analysis")
	cmd.Flags().BoolVar(&noCategory, "no-category", false, "Skip category classification")
	cmd.Flags().BoolVar(&noEmotions, "no-emotions", false, "Skip emotion detection")

	return cmd
}
