package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
)

// DigestDeps wires the recurring digest delivery job.
type DigestDeps struct {
	Reporter *Reporter
	Notifier ports.Notifier
	Driver   ports.Scheduler
	UserIDs  []string
	Period   domain.Period
	Logger   *slog.Logger
}

// Digest periodically renders each configured user's summary and publishes
// it to the notification channel.
type Digest struct {
	reporter *Reporter
	notifier ports.Notifier
	driver   ports.Scheduler
	userIDs  []string
	period   domain.Period
	logger   *slog.Logger
}

// NewDigest constructs the digest job.
func NewDigest(deps DigestDeps) *Digest {
	period := deps.Period
	if period == "" {
		period = domain.PeriodWeekly
	}
	return &Digest{
		reporter: deps.Reporter,
		notifier: deps.Notifier,
		driver:   deps.Driver,
		userIDs:  deps.UserIDs,
		period:   period,
		logger:   deps.Logger,
	}
}

// Start registers the digest job with the scheduler.
func (d *Digest) Start(ctx context.Context) error {
	if d.driver == nil || d.reporter == nil || d.notifier == nil || len(d.userIDs) == 0 {
		return nil
	}
	return d.driver.Start(ctx, func() { d.Run(ctx) })
}

// Stop tears down the underlying scheduler.
func (d *Digest) Stop(ctx context.Context) error {
	if d.driver == nil {
		return nil
	}
	return d.driver.Stop(ctx)
}

// Run delivers one digest round. Per-user failures are logged and skipped
// so one broken user never blocks the rest.
func (d *Digest) Run(ctx context.Context) {
	for _, userID := range d.userIDs {
		summary, err := d.reporter.Summary(ctx, userID, d.period)
		if err != nil {
			d.warn("digest summary failed", "user", userID, "error", err)
			continue
		}

		if err := d.notifier.PublishDigest(ctx, FormatSummary(summary)); err != nil {
			d.warn("digest publish failed", "user", userID, "error", err)
		}
	}
}

// FormatSummary renders a dashboard summary as a plain-text digest message.
func FormatSummary(summary domain.DashboardSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Browsing digest for %s (%s)\n", summary.UserID, summary.Period)
	fmt.Fprintf(&b, "Records: %d, total time: %s\n",
		summary.RecordsCounted, formatDuration(summary.TotalTimeSeconds))

	if len(summary.TopSites) > 0 {
		b.WriteString("\nTop sites:\n")
		for _, site := range summary.TopSites {
			fmt.Fprintf(&b, "- %s: %s\n", site.Site, formatDuration(site.TimeSeconds))
		}
	}

	if len(summary.Categories) > 0 {
		b.WriteString("\nCategories:\n")
		for _, cat := range summary.Categories {
			fmt.Fprintf(&b, "- %s (%s): %.0f%%\n", cat.Category, cat.Group, cat.Proportion*100)
		}
	}

	if len(summary.Sentiments) > 0 {
		b.WriteString("\nSentiment:\n")
		for _, sent := range summary.Sentiments {
			fmt.Fprintf(&b, "- %s: %d (%.0f%%)\n", sent.Sentiment, sent.Count, sent.Proportion*100)
		}
	}

	return b.String()
}

func formatDuration(seconds float64) string {
	minutes := int(seconds) / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func (d *Digest) warn(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}
