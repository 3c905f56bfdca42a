// Package dashboard folds stored activity records into time-windowed
// per-user summaries. Everything here is pure derivation: summaries are
// recomputed on each query and never persisted.
package dashboard

import (
	"sort"
	"time"

	"BrowseLens/internal/domain"
	"BrowseLens/internal/taxonomy"
)

// topSitesCap bounds the sites list on a summary.
const topSitesCap = 10

// WindowStart returns the inclusive lower bound of the aggregation window.
func WindowStart(period domain.Period, now time.Time) time.Time {
	if period == domain.PeriodDaily {
		return now.Add(-24 * time.Hour)
	}
	return now.Add(-7 * 24 * time.Hour)
}

// Summarize aggregates a user's records over the period window ending at
// now. prefs maps site host to a category label that overrides the
// classifier's prediction for that site's records; stored records are never
// mutated by the override. Empty input yields a zeroed summary, never an
// error.
func Summarize(userID string, records []domain.ActivityRecord, prefs map[string]string, period domain.Period, now time.Time) domain.DashboardSummary {
	start := WindowStart(period, now)

	summary := domain.DashboardSummary{
		UserID:     userID,
		Period:     period,
		TopSites:   []domain.SiteTime{},
		Categories: []domain.CategoryShare{},
		Sentiments: []domain.SentimentShare{},
	}

	siteTime := map[string]float64{}
	categoryTime := map[string]float64{}
	sentimentCount := map[string]int{}

	for _, rec := range records {
		if rec.ReceivedAt.Before(start) {
			continue
		}

		summary.RecordsCounted++
		summary.TotalTimeSeconds += rec.DurationSeconds
		siteTime[rec.URL] += rec.DurationSeconds

		if category := effectiveCategory(rec, prefs); category != "" {
			categoryTime[category] += rec.DurationSeconds
		}
		if label := rec.Analysis.SentimentLabel(); label != "" {
			sentimentCount[label]++
		}
	}

	summary.TopSites = topSites(siteTime)
	summary.Categories = categoryShares(categoryTime, summary.TotalTimeSeconds)
	summary.Sentiments = sentimentShares(sentimentCount, summary.RecordsCounted)

	return summary
}

// effectiveCategory applies the site preference override by host, falling
// back to the classifier's prediction. The stored record is left untouched.
func effectiveCategory(rec domain.ActivityRecord, prefs map[string]string) string {
	if override, ok := prefs[rec.Host()]; ok && override != "" {
		return override
	}
	return rec.Analysis.ClassifiedCategory()
}

func topSites(siteTime map[string]float64) []domain.SiteTime {
	sites := make([]domain.SiteTime, 0, len(siteTime))
	for site, seconds := range siteTime {
		sites = append(sites, domain.SiteTime{Site: site, TimeSeconds: seconds})
	}

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].TimeSeconds != sites[j].TimeSeconds {
			return sites[i].TimeSeconds > sites[j].TimeSeconds
		}
		return sites[i].Site < sites[j].Site
	})

	if len(sites) > topSitesCap {
		sites = sites[:topSitesCap]
	}
	return sites
}

func categoryShares(categoryTime map[string]float64, totalSeconds float64) []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(categoryTime))
	for category, seconds := range categoryTime {
		group, _ := taxonomy.GroupFor(category)
		share := domain.CategoryShare{
			Category: category,
			Group:    string(group),
			Value:    seconds,
		}
		if totalSeconds > 0 {
			share.Proportion = seconds / totalSeconds
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Category < shares[j].Category
	})

	return shares
}

func sentimentShares(sentimentCount map[string]int, counted int) []domain.SentimentShare {
	shares := make([]domain.SentimentShare, 0, len(sentimentCount))
	for label, count := range sentimentCount {
		share := domain.SentimentShare{Sentiment: label, Count: count}
		if counted > 0 {
			share.Proportion = float64(count) / float64(counted)
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Sentiment < shares[j].Sentiment
	})

	return shares
}
