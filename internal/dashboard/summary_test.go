package dashboard

import (
	"math"
	"testing"
	"time"

	"BrowseLens/internal/domain"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func record(url string, duration float64, category, sentiment string, receivedAt time.Time) domain.ActivityRecord {
	rec := domain.ActivityRecord{
		UserID:          "user123",
		URL:             url,
		DurationSeconds: duration,
		ReceivedAt:      receivedAt,
	}
	if category != "" {
		rec.Analysis.Category = &domain.CategoryResult{Primary: category}
	}
	if sentiment != "" {
		rec.Analysis.Sentiment = &domain.SentimentResult{Label: sentiment, Score: 0.9}
	}
	return rec
}

func TestSummarizeScenario(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://site-a.com", 600, "Programming", "POSITIVE", now.Add(-time.Hour)),
		record("https://site-b.com", 1200, "Programming", "POSITIVE", now.Add(-2*time.Hour)),
		record("https://site-a.com", 300, "Programming", "NEGATIVE", now.Add(-3*time.Hour)),
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)

	if summary.RecordsCounted != 3 {
		t.Fatalf("records_counted = %d, want 3", summary.RecordsCounted)
	}
	if summary.TotalTimeSeconds != 2100 {
		t.Fatalf("total_time = %v, want 2100", summary.TotalTimeSeconds)
	}

	if len(summary.TopSites) != 2 {
		t.Fatalf("top_sites len = %d, want 2", len(summary.TopSites))
	}
	if summary.TopSites[0].Site != "https://site-b.com" || summary.TopSites[0].TimeSeconds != 1200 {
		t.Fatalf("top site = %+v, want site-b with 1200", summary.TopSites[0])
	}
	if summary.TopSites[1].Site != "https://site-a.com" || summary.TopSites[1].TimeSeconds != 900 {
		t.Fatalf("second site = %+v, want site-a with 900", summary.TopSites[1])
	}

	if len(summary.Categories) != 1 {
		t.Fatalf("categories len = %d, want 1", len(summary.Categories))
	}
	cat := summary.Categories[0]
	if cat.Category != "Programming" || cat.Value != 2100 || cat.Proportion != 1.0 {
		t.Fatalf("category = %+v, want Programming/2100/1.0", cat)
	}
	if cat.Group != "Productive" {
		t.Fatalf("group = %q, want Productive", cat.Group)
	}

	if len(summary.Sentiments) != 2 {
		t.Fatalf("sentiments len = %d, want 2", len(summary.Sentiments))
	}
	if summary.Sentiments[0].Sentiment != "POSITIVE" || summary.Sentiments[0].Count != 2 {
		t.Fatalf("top sentiment = %+v, want POSITIVE x2", summary.Sentiments[0])
	}
	if math.Abs(summary.Sentiments[0].Proportion-2.0/3.0) > 1e-9 {
		t.Fatalf("sentiment proportion = %v, want 2/3", summary.Sentiments[0].Proportion)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	t.Parallel()

	summary := Summarize("user123", nil, nil, domain.PeriodWeekly, now)

	if summary.RecordsCounted != 0 || summary.TotalTimeSeconds != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
	if summary.TopSites == nil || summary.Categories == nil || summary.Sentiments == nil {
		t.Fatal("sequences must be empty, not nil")
	}
	if len(summary.TopSites)+len(summary.Categories)+len(summary.Sentiments) != 0 {
		t.Fatalf("expected empty sequences, got %+v", summary)
	}
}

func TestSummarizeWindowBoundary(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://a.com", 60, "News", "NEUTRAL", now.Add(-24*time.Hour)),             // exactly at bound
		record("https://b.com", 60, "News", "NEUTRAL", now.Add(-24*time.Hour-time.Second)), // one past
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)
	if summary.RecordsCounted != 1 {
		t.Fatalf("records_counted = %d, want 1 (inclusive lower bound)", summary.RecordsCounted)
	}
	if summary.TopSites[0].Site != "https://a.com" {
		t.Fatalf("wrong record survived the window: %+v", summary.TopSites)
	}
}

func TestSummarizeWeeklyWindow(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://a.com", 60, "News", "", now.Add(-6*24*time.Hour)),
		record("https://b.com", 60, "News", "", now.Add(-8*24*time.Hour)),
	}

	summary := Summarize("user123", records, nil, domain.PeriodWeekly, now)
	if summary.RecordsCounted != 1 {
		t.Fatalf("records_counted = %d, want 1", summary.RecordsCounted)
	}
}

func TestSummarizeDeterministicTieBreaks(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://zeta.com", 100, "Shopping", "NEGATIVE", now.Add(-time.Hour)),
		record("https://alpha.com", 100, "Gaming", "POSITIVE", now.Add(-time.Hour)),
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)

	if summary.TopSites[0].Site != "https://alpha.com" {
		t.Fatalf("site tie must break ascending: %+v", summary.TopSites)
	}
	if summary.Categories[0].Category != "Gaming" {
		t.Fatalf("category tie must break ascending: %+v", summary.Categories)
	}
	if summary.Sentiments[0].Sentiment != "NEGATIVE" {
		t.Fatalf("sentiment tie must break ascending: %+v", summary.Sentiments)
	}
}

func TestSummarizePreferenceOverride(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://www.reddit.com/r/golang", 300, "Social Media", "POSITIVE", now.Add(-time.Hour)),
		record("https://news.site/x", 100, "News", "NEUTRAL", now.Add(-time.Hour)),
	}
	prefs := map[string]string{"reddit.com": "Programming"}

	summary := Summarize("user123", records, prefs, domain.PeriodDaily, now)

	if summary.Categories[0].Category != "Programming" || summary.Categories[0].Value != 300 {
		t.Fatalf("override not applied: %+v", summary.Categories)
	}
	// The stored record keeps the classifier's verdict.
	if records[0].Analysis.ClassifiedCategory() != "Social Media" {
		t.Fatal("record mutated by aggregation")
	}
}

func TestSummarizeProportionsSumToOne(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://a.com", 100, "News", "", now.Add(-time.Hour)),
		record("https://b.com", 250, "Gaming", "", now.Add(-time.Hour)),
		record("https://c.com", 650, "Programming", "", now.Add(-time.Hour)),
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)

	var total, proportions float64
	for _, cat := range summary.Categories {
		total += cat.Value
		proportions += cat.Proportion
	}
	if math.Abs(total-summary.TotalTimeSeconds) > 1e-9 {
		t.Fatalf("category values sum to %v, want total %v", total, summary.TotalTimeSeconds)
	}
	if math.Abs(proportions-1.0) > 1e-9 {
		t.Fatalf("proportions sum to %v, want 1.0", proportions)
	}
}

func TestSummarizeZeroDurationGuard(t *testing.T) {
	t.Parallel()

	records := []domain.ActivityRecord{
		record("https://a.com", 0, "News", "POSITIVE", now.Add(-time.Hour)),
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)
	if summary.RecordsCounted != 1 {
		t.Fatalf("records_counted = %d, want 1", summary.RecordsCounted)
	}
	if summary.Categories[0].Proportion != 0 {
		t.Fatalf("zero total time must yield zero proportion, got %v", summary.Categories[0].Proportion)
	}
	if summary.Sentiments[0].Proportion != 1 {
		t.Fatalf("sentiment proportion = %v, want 1", summary.Sentiments[0].Proportion)
	}
}

func TestSummarizeTopSitesCapped(t *testing.T) {
	t.Parallel()

	var records []domain.ActivityRecord
	for i := 0; i < 15; i++ {
		records = append(records, record(
			string(rune('a'+i))+".com", float64(100+i), "News", "", now.Add(-time.Hour)))
	}

	summary := Summarize("user123", records, nil, domain.PeriodDaily, now)
	if len(summary.TopSites) != 10 {
		t.Fatalf("top_sites len = %d, want capped at 10", len(summary.TopSites))
	}
	if summary.TopSites[0].TimeSeconds != 114 {
		t.Fatalf("top site time = %v, want 114", summary.TopSites[0].TimeSeconds)
	}
}
