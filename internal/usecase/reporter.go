package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"BrowseLens/internal/dashboard"
	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
)

// reportFetchLimit is how many recent records feed one summary; it matches
// the store's list cap.
const reportFetchLimit = 1000

// ReporterDeps wires the dashboard query workflow.
type ReporterDeps struct {
	Store  ports.ActivityStore
	Prefs  ports.PreferenceStore
	Logger *slog.Logger
	Now    func() time.Time
}

// Reporter serves time-windowed dashboard summaries.
type Reporter struct {
	store  ports.ActivityStore
	prefs  ports.PreferenceStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReporter constructs the reporting workflow.
func NewReporter(deps ReporterDeps) *Reporter {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Reporter{
		store:  deps.Store,
		prefs:  deps.Prefs,
		logger: deps.Logger,
		now:    now,
	}
}

// Summary aggregates the user's recent records over the period window. A
// user with no data yields a zeroed summary, not an error.
func (r *Reporter) Summary(ctx context.Context, userID string, period domain.Period) (domain.DashboardSummary, error) {
	if userID == "" {
		return domain.DashboardSummary{}, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	records, err := r.store.List(ctx, userID, reportFetchLimit)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("list records: %w", err)
	}

	prefs := map[string]string{}
	if r.prefs != nil {
		prefs, err = r.prefs.Preferences(ctx, userID)
		if err != nil {
			return domain.DashboardSummary{}, fmt.Errorf("load preferences: %w", err)
		}
	}

	summary := dashboard.Summarize(userID, records, prefs, period, r.now())
	if r.logger != nil {
		r.logger.Debug("summary generated",
			"user", userID, "period", period, "records", summary.RecordsCounted)
	}
	return summary, nil
}
