package recommend

import (
	"strings"
	"testing"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/pattern"
)

// healthyReport builds a report that trips no rules.
func healthyReport() *model.AnalysisReport {
	return &model.AnalysisReport{
		Structure: &model.PageStructure{
			Headings: map[string][]string{"h1": {"Tek Başlık"}},
			MetaTags: map[string]string{
				"title":       strings.Repeat("t", 45),
				"description": strings.Repeat("d", 140),
			},
		},
		Patterns: map[string]model.PatternResult{
			pattern.CategoryAuthority:  {Score: 0.8},
			pattern.CategoryStatistics: {Score: 0.8},
		},
		Quality: model.QualityScores{LengthScore: 0.9},
	}
}

func hasItem(items []model.RecommendationItem, category, element string) bool {
	for _, item := range items {
		if item.Category == category && item.Element == element {
			return true
		}
	}
	return false
}

func TestGenerate_HealthyReportNoItems(t *testing.T) {
	items := Generate(healthyReport())
	if len(items) != 0 {
		t.Errorf("expected no recommendations, got %d: %+v", len(items), items)
	}
}

func TestGenerate_ThresholdMonotonicity(t *testing.T) {
	// Lowering a component below its threshold adds exactly its item;
	// restoring it removes the item again.
	tests := []struct {
		name     string
		mutate   func(*model.AnalysisReport)
		category string
		element  string
	}{
		{
			name:     "short title",
			mutate:   func(r *model.AnalysisReport) { r.Structure.MetaTags["title"] = "kısa" },
			category: "meta_tags",
			element:  "title",
		},
		{
			name:     "short description",
			mutate:   func(r *model.AnalysisReport) { r.Structure.MetaTags["description"] = "kısa açıklama" },
			category: "meta_tags",
			element:  "description",
		},
		{
			name:     "no h1",
			mutate:   func(r *model.AnalysisReport) { r.Structure.Headings["h1"] = nil },
			category: "headings",
			element:  "h1",
		},
		{
			name:     "two h1s",
			mutate:   func(r *model.AnalysisReport) { r.Structure.Headings["h1"] = []string{"bir", "iki"} },
			category: "headings",
			element:  "h1",
		},
		{
			name:     "thin content",
			mutate:   func(r *model.AnalysisReport) { r.Quality.LengthScore = 0.2 },
			category: "content",
			element:  "length",
		},
		{
			name: "weak authority",
			mutate: func(r *model.AnalysisReport) {
				r.Patterns[pattern.CategoryAuthority] = model.PatternResult{Score: 0.1}
			},
			category: "geo",
			element:  "authority",
		},
		{
			name: "weak statistics",
			mutate: func(r *model.AnalysisReport) {
				r.Patterns[pattern.CategoryStatistics] = model.PatternResult{Score: 0.1}
			},
			category: "geo",
			element:  "statistics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthy := healthyReport()
			if hasItem(Generate(healthy), tt.category, tt.element) {
				t.Fatalf("healthy report already fires %s/%s", tt.category, tt.element)
			}

			degraded := healthyReport()
			tt.mutate(degraded)
			items := Generate(degraded)
			if !hasItem(items, tt.category, tt.element) {
				t.Errorf("degraded report missing %s/%s: %+v", tt.category, tt.element, items)
			}
		})
	}
}

func TestGenerate_MetaLengthsCountCharactersNotBytes(t *testing.T) {
	// Turkish meta text is mostly multi-byte; the limits are character
	// counts, so a 25-character title is short even at 50 bytes.
	report := healthyReport()
	report.Structure.MetaTags["title"] = strings.Repeat("ğ", 25)
	report.Structure.MetaTags["description"] = strings.Repeat("ş", 100)

	items := Generate(report)
	if !hasItem(items, "meta_tags", "title") {
		t.Errorf("25-character title did not fire: %+v", items)
	}
	if !hasItem(items, "meta_tags", "description") {
		t.Errorf("100-character description did not fire: %+v", items)
	}

	report.Structure.MetaTags["title"] = strings.Repeat("ğ", 35)
	report.Structure.MetaTags["description"] = strings.Repeat("ş", 140)

	items = Generate(report)
	if hasItem(items, "meta_tags", "title") || hasItem(items, "meta_tags", "description") {
		t.Errorf("length rules fired on character counts above the limits: %+v", items)
	}
}

func TestGenerate_AllRulesEvaluated(t *testing.T) {
	// An all-degraded report fires every structural and score rule;
	// evaluation never short-circuits.
	report := &model.AnalysisReport{
		Structure: &model.PageStructure{},
		Patterns:  map[string]model.PatternResult{},
		Quality:   model.QualityScores{},
	}

	items := Generate(report)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d: %+v", len(items), items)
	}
}

func TestGenerate_OrderIsRuleTableOrder(t *testing.T) {
	report := &model.AnalysisReport{
		Structure: &model.PageStructure{},
		Patterns:  map[string]model.PatternResult{},
		Quality:   model.QualityScores{},
	}

	items := Generate(report)

	wantElements := []string{"title", "description", "h1", "length", "authority", "statistics"}
	for i, want := range wantElements {
		if items[i].Element != want {
			t.Errorf("item %d element = %s, want %s", i, items[i].Element, want)
		}
	}

	// Ordering is rule order, not severity order: high items first here
	// only because the table happens to list them first.
	if items[0].Severity != model.SeverityHigh || items[3].Severity != model.SeverityMedium {
		t.Errorf("unexpected severities: %+v", items)
	}
}

func TestGenerate_CollaboratorSignalsSkippedWhenAbsent(t *testing.T) {
	report := healthyReport()
	items := Generate(report)
	if hasItem(items, "content", "readability") || hasItem(items, "content", "coherence") {
		t.Fatalf("collaborator rules fired without data: %+v", items)
	}

	low := 30.0
	lowCoherence := 0.2
	report.Content = &model.ContentSignals{Readability: &low, Coherence: &lowCoherence}
	items = Generate(report)
	if !hasItem(items, "content", "readability") {
		t.Errorf("expected readability item: %+v", items)
	}
	if !hasItem(items, "content", "coherence") {
		t.Errorf("expected coherence item: %+v", items)
	}

	high := 80.0
	highCoherence := 0.9
	report.Content = &model.ContentSignals{Readability: &high, Coherence: &highCoherence}
	items = Generate(report)
	if hasItem(items, "content", "readability") || hasItem(items, "content", "coherence") {
		t.Errorf("collaborator rules fired above threshold: %+v", items)
	}
}

func TestGenerate_NilStructureFiresStructuralRules(t *testing.T) {
	// A file-based analysis has no page structure; the structural
	// rules fire the same way the original fired on missing meta tags.
	report := healthyReport()
	report.Structure = nil

	items := Generate(report)
	if !hasItem(items, "meta_tags", "title") || !hasItem(items, "headings", "h1") {
		t.Errorf("expected structural items for nil structure: %+v", items)
	}
}
