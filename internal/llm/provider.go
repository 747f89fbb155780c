// Package llm generates optional natural-language summaries of analysis
// reports. Summaries are produced after scoring and never feed back
// into any score.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/ppiankov/geoscope/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary of the report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	Report    model.AnalysisReport
	Prompt    string // optional custom prompt; empty uses the default
	Model     string
	MaxTokens int
}

// SummarizeResponse contains the summary output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt. The model is
// asked to describe the computed signals, never to re-score them.
func BuildPrompt(report model.AnalysisReport) string {
	prompt := fmt.Sprintf(`You are summarizing a Geoscope attribution report. Geoscope measures how much of a source document a generated response draws on and which rhetorical signals the response uses - it never judges truth.

RULES:
1. Describe only the metrics below; do not invent new scores.
2. If a metric is zero or missing, state that plainly.
3. Keep the summary to 3-4 sentences.

Report:
- Subject: %s
- Word-count attribution metric: %.3f
- Position-adjusted attribution metric: %.3f
- Attributed source sentences: %d
- Composite impression score: %.3f
- Content quality (overall): %.2f
- Recommendations issued: %d

Pattern signals:
`, report.Subject,
		report.Attribution.WordCountMetric,
		report.Attribution.PositionAdjustedMetric,
		len(report.Attribution.SourcePositions),
		report.Impression,
		report.Quality.OverallScore,
		len(report.Recommendations))

	// Sorted so the same report always yields the same prompt.
	names := make([]string, 0, len(report.Patterns))
	for name := range report.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result := report.Patterns[name]
		prompt += fmt.Sprintf("- %s: %d matches, score %.2f\n", name, result.Count, result.Score)
	}

	return prompt
}
