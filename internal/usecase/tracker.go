// Package usecase wires the core components into the application's
// workflows: activity ingestion, dashboard reporting, and digest delivery.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"BrowseLens/internal/analyzer"
	"BrowseLens/internal/domain"
	"BrowseLens/internal/ports"
)

// TrackerDeps wires the ingestion workflow.
type TrackerDeps struct {
	Analyzer *analyzer.Analyzer
	Store    ports.ActivityStore
	Logger   *slog.Logger
	Now      func() time.Time
}

// Tracker turns inbound activity events into analyzed, stored records.
type Tracker struct {
	analyzer *analyzer.Analyzer
	store    ports.ActivityStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewTracker constructs the ingestion workflow.
func NewTracker(deps TrackerDeps) *Tracker {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		analyzer: deps.Analyzer,
		store:    deps.Store,
		logger:   deps.Logger,
		now:      now,
	}
}

// Ingest validates the event, analyzes its text, and appends the enriched
// record. Analysis failures degrade per field and never block storage; the
// stored record carries whatever sub-results succeeded. Returns the stored
// record and the user's record count.
func (t *Tracker) Ingest(ctx context.Context, event domain.ActivityEvent) (domain.ActivityRecord, int, error) {
	if err := validateEvent(event); err != nil {
		return domain.ActivityRecord{}, 0, err
	}

	duration := event.DurationSeconds
	if duration <= 0 && event.EndTS > event.StartTS && event.StartTS > 0 {
		duration = event.EndTS - event.StartTS
	}
	if duration < 0 {
		duration = 0
	}

	result, err := t.analyzer.Analyze(ctx, event.Text, event.URL, analyzer.AllOptions())
	if err != nil {
		// Partial results are already on the result; a full failure still
		// leaves a storable record with per-field error markers.
		t.warn("ingest analysis failed", "user", event.UserID, "url", event.URL, "error", err)
	}

	record := domain.ActivityRecord{
		ID:              uuid.NewString(),
		UserID:          event.UserID,
		URL:             event.URL,
		Title:           event.Title,
		Text:            event.Text,
		DurationSeconds: duration,
		Clicks:          event.Clicks,
		Keypresses:      event.Keypresses,
		EngagementScore: event.EngagementScore,
		ReceivedAt:      t.now(),
		Analysis:        result,
	}

	count, err := t.store.Ingest(ctx, record)
	if err != nil {
		return domain.ActivityRecord{}, 0, fmt.Errorf("store record: %w", err)
	}

	t.debug("activity ingested", "user", event.UserID, "url", event.URL, "count", count)
	return record, count, nil
}

// Activity lists a user's recent records, most-recent-first.
func (t *Tracker) Activity(ctx context.Context, userID string, limit int) ([]domain.ActivityRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	return t.store.List(ctx, userID, limit)
}

// Clear removes all records for a user.
func (t *Tracker) Clear(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	return t.store.Clear(ctx, userID)
}

func validateEvent(event domain.ActivityEvent) error {
	var missing []string
	if event.UserID == "" {
		missing = append(missing, "user_id")
	}
	if event.URL == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(event.Text) == "" {
		missing = append(missing, "text")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func (t *Tracker) warn(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Warn(msg, args...)
	}
}

func (t *Tracker) debug(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}
