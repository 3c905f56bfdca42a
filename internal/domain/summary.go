package domain

import "fmt"

// Period selects the dashboard aggregation window.
type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// ParsePeriod validates a period string from the boundary.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case PeriodDaily, PeriodWeekly:
		return Period(value), nil
	default:
		return "", fmt.Errorf("%w: period must be daily or weekly, got %q", ErrInvalidInput, value)
	}
}

// SiteTime is aggregated time spent on one site.
type SiteTime struct {
	Site        string  `json:"site"`
	TimeSeconds float64 `json:"time_seconds"`
}

// CategoryShare is aggregated time for one effective category.
type CategoryShare struct {
	Category   string  `json:"category"`
	Group      string  `json:"group"`
	Value      float64 `json:"value"`
	Proportion float64 `json:"proportion"`
}

// SentimentShare is the occurrence count for one sentiment label.
type SentimentShare struct {
	Sentiment  string  `json:"sentiment"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
}

// DashboardSummary is the derived per-user rollup for one time window.
// It is recomputed on every query and never persisted.
type DashboardSummary struct {
	UserID           string           `json:"user_id"`
	Period           Period           `json:"period"`
	RecordsCounted   int              `json:"records_counted"`
	TotalTimeSeconds float64          `json:"total_time_seconds"`
	TopSites         []SiteTime       `json:"top_sites"`
	Categories       []CategoryShare  `json:"categories"`
	Sentiments       []SentimentShare `json:"sentiments"`
}
