// Package pattern evaluates configurable rule categories against text:
// authority language, statistics, citations, expert phrasing.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/geoscope/internal/model"
)

// saturationCount is the number of raw matches at which a category
// score saturates at 1.0.
const saturationCount = 5

// Analyzer holds the compiled category table. Immutable after
// construction; safe for concurrent Analyze calls.
type Analyzer struct {
	categories []compiledCategory
}

type compiledCategory struct {
	name  string
	rules []*regexp.Regexp
}

// NewAnalyzer compiles the category table. An empty category name, a
// category without rules, or a malformed rule expression is a
// configuration fault and fails construction.
func NewAnalyzer(categories []model.PatternCategory) (*Analyzer, error) {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	compiled := make([]compiledCategory, 0, len(categories))
	for _, category := range categories {
		if category.Name == "" {
			return nil, fmt.Errorf("pattern category with empty name")
		}
		if len(category.Rules) == 0 {
			return nil, fmt.Errorf("pattern category %q has no rules", category.Name)
		}

		cc := compiledCategory{name: category.Name}
		for _, rule := range category.Rules {
			expr := rule
			if category.CaseInsensitive {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("pattern category %q rule %q: %w", category.Name, rule, err)
			}
			cc.rules = append(cc.rules, re)
		}
		compiled = append(compiled, cc)
	}

	return &Analyzer{categories: compiled}, nil
}

// Analyze evaluates every category against the text. Count is the total
// number of match occurrences across the category's rules, not
// deduplicated; the matches list preserves encounter order (rule order,
// then scan order within each rule). Categories are independent.
func (a *Analyzer) Analyze(text string) map[string]model.PatternResult {
	results := make(map[string]model.PatternResult, len(a.categories))

	for _, category := range a.categories {
		var matches []string
		for _, rule := range category.rules {
			matches = append(matches, rule.FindAllString(text, -1)...)
		}

		count := len(matches)
		score := float64(count) / saturationCount
		if score > 1.0 {
			score = 1.0
		}

		results[category.name] = model.PatternResult{
			Count:   count,
			Matches: matches,
			Score:   score,
		}
	}

	return results
}

// CategoryNames returns the configured category names in table order.
func (a *Analyzer) CategoryNames() []string {
	names := make([]string, len(a.categories))
	for i, c := range a.categories {
		names[i] = c.name
	}
	return names
}
