package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/geoscope/internal/model"
)

// Renderer writes analysis reports as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Geoscope Report: %s\n\n", report.Subject)
	if report.ResponseURL != "" {
		fmt.Fprintf(&b, "- Response: %s\n", report.ResponseURL)
	}
	if report.SourceURL != "" {
		fmt.Fprintf(&b, "- Source: %s\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "- Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Attribution\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Word-count metric | %.3f |\n", report.Attribution.WordCountMetric)
	fmt.Fprintf(&b, "| Position-adjusted metric | %.3f |\n", report.Attribution.PositionAdjustedMetric)
	fmt.Fprintf(&b, "| Attributed sentences | %d |\n", len(report.Attribution.SourcePositions))
	fmt.Fprintf(&b, "| Source words | %d |\n", report.Attribution.SourceWords)
	fmt.Fprintf(&b, "| Response words | %d |\n\n", report.Attribution.ResponseWords)

	b.WriteString("## Rhetorical Signals\n\n")
	fmt.Fprintf(&b, "| Category | Matches | Score |\n|---|---|---|\n")
	for _, name := range sortedCategoryNames(report.Patterns) {
		result := report.Patterns[name]
		fmt.Fprintf(&b, "| %s | %d | %.2f |\n", name, result.Count, result.Score)
	}
	fmt.Fprintf(&b, "\nComposite impression score: **%.3f**\n\n", report.Impression)

	b.WriteString("## Content Quality\n\n")
	fmt.Fprintf(&b, "| Sub-score | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Length | %.2f |\n", report.Quality.LengthScore)
	fmt.Fprintf(&b, "| Readability | %.2f |\n", report.Quality.ReadabilityScore)
	fmt.Fprintf(&b, "| Structure | %.2f |\n", report.Quality.StructureScore)
	fmt.Fprintf(&b, "| Overall | %.2f |\n\n", report.Quality.OverallScore)

	if len(report.Keywords) > 0 {
		b.WriteString("## Top Keywords\n\n")
		fmt.Fprintf(&b, "| Word | Count | Density |\n|---|---|---|\n")
		for _, kw := range report.Keywords {
			fmt.Fprintf(&b, "| %s | %d | %.3f |\n", kw.Word, kw.Count, kw.Density)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations\n\n")
	if len(report.Recommendations) == 0 {
		b.WriteString("No recommendations.\n\n")
	} else {
		for _, item := range report.Recommendations {
			fmt.Fprintf(&b, "- **[%s]** %s/%s: %s\n", item.Severity, item.Category, item.Element, item.Message)
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled {
		b.WriteString("## LLM Summary\n\n")
		b.WriteString("_Generated after scoring; does not affect any score._\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by [Geoscope](https://github.com/ppiankov/geoscope).\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short summary to stdout.
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	fmt.Printf("\nSubject:            %s\n", report.Subject)
	fmt.Printf("Word-count metric:  %.3f\n", report.Attribution.WordCountMetric)
	fmt.Printf("Position-adjusted:  %.3f\n", report.Attribution.PositionAdjustedMetric)
	fmt.Printf("Impression score:   %.3f\n", report.Impression)
	fmt.Printf("Quality (overall):  %.2f\n", report.Quality.OverallScore)
	fmt.Printf("Recommendations:    %d\n", len(report.Recommendations))
	for _, item := range report.Recommendations {
		fmt.Printf("  [%s] %s/%s: %s\n", item.Severity, item.Category, item.Element, item.Message)
	}
}

// RenderReport renders the report to the requested outputs.
func (p *Pipeline) RenderReport(report *model.AnalysisReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}

func sortedCategoryNames(patterns map[string]model.PatternResult) []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
