// Package taxonomy defines the closed category set used for zero-shot
// content classification and the mapping from each category to its coarse
// dashboard group. The tables are process-wide read-only state.
package taxonomy

import "sort"

// Group is one of the coarse buckets the dashboard aggregates by.
type Group string

const (
	GroupProductive    Group = "Productive"
	GroupSocial        Group = "Social"
	GroupEntertainment Group = "Entertainment"
	GroupInformation   Group = "Information"
	GroupLifestyle     Group = "Lifestyle"
	GroupCommerce      Group = "Commerce"
	GroupProblematic   Group = "Problematic"
	GroupOther         Group = "Other"
)

// groupByCategory maps every category label to exactly one group. The label
// set doubles as the candidate list handed to the zero-shot classifier.
var groupByCategory = map[string]Group{
	"Productivity":             GroupProductive,
	"Work":                     GroupProductive,
	"Professional Development": GroupProductive,
	"Business":                 GroupProductive,
	"Documentation":            GroupProductive,
	"Education":                GroupProductive,
	"Online Courses":           GroupProductive,
	"Tutorials":                GroupProductive,
	"Academic":                 GroupProductive,
	"Programming":              GroupProductive,
	"Research":                 GroupProductive,
	"Reference":                GroupProductive,
	"Tools & Utilities":        GroupProductive,

	"Social Media":        GroupSocial,
	"Communication":       GroupSocial,
	"Forums & Discussion": GroupSocial,
	"Dating":              GroupSocial,

	"Entertainment": GroupEntertainment,
	"Music":         GroupEntertainment,
	"Movies & TV":   GroupEntertainment,
	"Gaming":        GroupEntertainment,
	"Sports":        GroupEntertainment,
	"Humor & Memes": GroupEntertainment,
	"Podcasts":      GroupEntertainment,
	"Streaming":     GroupEntertainment,

	"News":         GroupInformation,
	"Politics":     GroupInformation,
	"World Events": GroupInformation,
	"Science":      GroupInformation,
	"Technology":   GroupInformation,

	"Health & Wellness": GroupLifestyle,
	"Fitness":           GroupLifestyle,
	"Food & Cooking":    GroupLifestyle,
	"Travel":            GroupLifestyle,
	"Hobbies":           GroupLifestyle,
	"DIY & Crafts":      GroupLifestyle,
	"Fashion & Beauty":  GroupLifestyle,
	"Relationships":     GroupLifestyle,
	"Parenting":         GroupLifestyle,
	"Self-Improvement":  GroupLifestyle,

	"Finance":        GroupCommerce,
	"Shopping":       GroupCommerce,
	"E-commerce":     GroupCommerce,
	"Banking":        GroupCommerce,
	"Investing":      GroupCommerce,
	"Cryptocurrency": GroupCommerce,

	"Adult Content":  GroupProblematic,
	"Violence":       GroupProblematic,
	"Misinformation": GroupProblematic,
	"Harassment":     GroupProblematic,

	"Other":    GroupOther,
	"Search":   GroupOther,
	"Software": GroupOther,
}

// labels is the sorted candidate list, built once at init.
var labels = func() []string {
	out := make([]string, 0, len(groupByCategory))
	for label := range groupByCategory {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}()

// Valid reports whether label belongs to the fixed category set.
func Valid(label string) bool {
	_, ok := groupByCategory[label]
	return ok
}

// GroupFor resolves the coarse group for a category label. Unknown labels
// resolve to GroupOther with ok=false so callers can log the mismatch.
func GroupFor(label string) (Group, bool) {
	group, ok := groupByCategory[label]
	if !ok {
		return GroupOther, false
	}
	return group, true
}

// Labels returns the full candidate label list, sorted ascending. The
// returned slice is a copy.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Groups returns every coarse group in dashboard display order.
func Groups() []Group {
	return []Group{
		GroupProductive,
		GroupSocial,
		GroupEntertainment,
		GroupInformation,
		GroupLifestyle,
		GroupCommerce,
		GroupProblematic,
		GroupOther,
	}
}

// Mapping returns a copy of the full category-to-group table for the
// read-only taxonomy query.
func Mapping() map[string]Group {
	out := make(map[string]Group, len(groupByCategory))
	for label, group := range groupByCategory {
		out[label] = group
	}
	return out
}
