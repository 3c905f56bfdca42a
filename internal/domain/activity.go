package domain

import "time"

// ActivityEvent is the inbound ingestion payload captured by the browser
// extension. UserID, URL and Text are required; everything else is optional.
type ActivityEvent struct {
	UserID          string  `json:"user_id"`
	URL             string  `json:"url"`
	Title           string  `json:"title,omitempty"`
	Text            string  `json:"text"`
	StartTS         float64 `json:"start_ts,omitempty"`
	EndTS           float64 `json:"end_ts,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Clicks          int     `json:"clicks,omitempty"`
	Keypresses      int     `json:"keypresses,omitempty"`
	EngagementScore float64 `json:"engagement_score,omitempty"`
}

// ActivityRecord is one stored browsing event enriched with analysis.
// Records are never mutated after creation; they are removed only by an
// explicit per-user clear.
type ActivityRecord struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	URL             string         `json:"url"`
	Title           string         `json:"title,omitempty"`
	Text            string         `json:"text,omitempty"`
	DurationSeconds float64        `json:"duration_seconds"`
	Clicks          int            `json:"clicks"`
	Keypresses      int            `json:"keypresses"`
	EngagementScore float64        `json:"engagement_score,omitempty"`
	ReceivedAt      time.Time      `json:"received_at"`
	Analysis        AnalysisResult `json:"analysis"`
}

// Host returns the host portion of the record URL, or the raw URL when it
// does not parse. Site preferences are keyed by this value.
func (r ActivityRecord) Host() string {
	return HostOf(r.URL)
}
