// Package recommend turns an analysis report into ordered, actionable
// advisories via a fixed threshold rule table.
package recommend

import (
	"unicode/utf8"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/pattern"
)

const (
	minTitleLength       = 30  // characters, not bytes
	minDescriptionLength = 120 // characters, not bytes
	minLengthScore       = 0.5
	minPatternScore      = 0.3
	minReadability       = 50 // external collaborator, 0-100 scale
	minCoherence         = 0.5
)

// rule pairs a predicate with the item it emits. Rules are evaluated in
// table order, never short-circuited, and each firing rule appends
// exactly one item. Output order is table order, not severity order.
type rule struct {
	predicate func(*model.AnalysisReport) bool
	item      model.RecommendationItem
}

var rules = []rule{
	{
		predicate: func(r *model.AnalysisReport) bool {
			return utf8.RuneCountInString(r.Structure.Meta("title")) < minTitleLength
		},
		item: model.RecommendationItem{
			Category: "meta_tags",
			Element:  "title",
			Severity: model.SeverityHigh,
			Message:  "Title tag should be between 30 and 60 characters.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return utf8.RuneCountInString(r.Structure.Meta("description")) < minDescriptionLength
		},
		item: model.RecommendationItem{
			Category: "meta_tags",
			Element:  "description",
			Severity: model.SeverityHigh,
			Message:  "Meta description should be between 120 and 160 characters.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Structure.HeadingCount("h1") != 1
		},
		item: model.RecommendationItem{
			Category: "headings",
			Element:  "h1",
			Severity: model.SeverityHigh,
			Message:  "The page should have exactly one H1 tag.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Quality.LengthScore < minLengthScore
		},
		item: model.RecommendationItem{
			Category: "content",
			Element:  "length",
			Severity: model.SeverityMedium,
			Message:  "Content should be at least 500 words.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Patterns[pattern.CategoryAuthority].Score < minPatternScore
		},
		item: model.RecommendationItem{
			Category: "geo",
			Element:  "authority",
			Severity: model.SeverityMedium,
			Message:  "Add phrases that signal authority, such as citing research or experts.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Patterns[pattern.CategoryStatistics].Score < minPatternScore
		},
		item: model.RecommendationItem{
			Category: "geo",
			Element:  "statistics",
			Severity: model.SeverityMedium,
			Message:  "Add statistical data to support the content.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Content != nil && r.Content.Readability != nil && *r.Content.Readability < minReadability
		},
		item: model.RecommendationItem{
			Category: "content",
			Element:  "readability",
			Severity: model.SeverityMedium,
			Message:  "Use shorter sentences and simpler wording to improve readability.",
		},
	},
	{
		predicate: func(r *model.AnalysisReport) bool {
			return r.Content != nil && r.Content.Coherence != nil && *r.Content.Coherence < minCoherence
		},
		item: model.RecommendationItem{
			Category: "content",
			Element:  "coherence",
			Severity: model.SeverityMedium,
			Message:  "Keep paragraphs focused on a single topic to improve coherence.",
		},
	},
}

// Generate evaluates the full rule table against the report. Missing
// structure or collaborator data never faults; the affected rules
// simply fire (structure gaps) or are skipped (absent collaborator
// signals) per their predicates.
func Generate(report *model.AnalysisReport) []model.RecommendationItem {
	var items []model.RecommendationItem
	for _, r := range rules {
		if r.predicate(report) {
			items = append(items, r.item)
		}
	}
	return items
}
