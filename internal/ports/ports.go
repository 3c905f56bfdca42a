package ports

import (
	"context"

	"BrowseLens/internal/domain"
)

// TextClassifier is the model capability contract: given text, return
// labeled scores. Implementations wrap sentiment, emotion, or zero-shot
// category models; the core never constructs or loads models itself.
// Errors map to domain.ErrModelUnavailable semantics.
type TextClassifier interface {
	Classify(ctx context.Context, text string) ([]domain.LabelScore, error)
}

// ActivityStore is the append-only per-user activity log.
type ActivityStore interface {
	// Ingest appends one complete record and returns the user's record
	// count after the append. Records are never deduplicated.
	Ingest(ctx context.Context, record domain.ActivityRecord) (int, error)

	// List returns up to limit records for a user, most-recent-first by
	// ReceivedAt. Limits outside 1..1000 clamp to the nearest bound.
	List(ctx context.Context, userID string, limit int) ([]domain.ActivityRecord, error)

	// Clear removes all records for a user and returns how many were
	// removed. Clearing an unknown user returns 0, not an error.
	Clear(ctx context.Context, userID string) (int, error)
}

// PreferenceStore holds per-user site-to-category overrides keyed by host.
type PreferenceStore interface {
	// SetPreference stores an override. The category must belong to the
	// fixed taxonomy; unknown labels fail with domain.ErrUnknownCategory.
	SetPreference(ctx context.Context, userID, site, category string) error

	// Preferences returns the user's full site-to-category map. A user
	// with no overrides yields an empty map.
	Preferences(ctx context.Context, userID string) (map[string]string, error)
}

// PageExtractor pulls visible text and metadata from a live page URL.
type PageExtractor interface {
	Extract(ctx context.Context, url string) (domain.PageContent, error)
}

// Notifier delivers rendered digest messages to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func()) error
	Stop(ctx context.Context) error
}
