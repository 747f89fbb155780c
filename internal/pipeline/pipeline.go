// Package pipeline wires the fetch, extract and scoring stages into the
// complete analysis flow.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/geoscope/internal/cache"
	"github.com/ppiankov/geoscope/internal/extract"
	"github.com/ppiankov/geoscope/internal/fetch"
	"github.com/ppiankov/geoscope/internal/geo"
	"github.com/ppiankov/geoscope/internal/ingest"
	"github.com/ppiankov/geoscope/internal/llm"
	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/pattern"
	"github.com/ppiankov/geoscope/internal/quality"
	"github.com/ppiankov/geoscope/internal/recommend"
	"github.com/ppiankov/geoscope/internal/text"
)

// Pipeline orchestrates the complete analysis process.
type Pipeline struct {
	tokenizer  *text.Tokenizer
	engine     *geo.Engine
	analyzer   *pattern.Analyzer
	quality    *quality.Scorer
	fetcher    *fetch.Fetcher
	extractor  *extract.StructureExtractor
	pageCache  cache.Cache // nil when caching is disabled
	summarizer *llm.Summarizer
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline builds the pipeline from configuration. Configuration
// faults (non-positive decay, malformed pattern rules) fail here rather
// than producing silently wrong scores later.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	tokenizer := text.NewTokenizer(text.ProfileFromConfig(cfg.Locale))

	engine, err := geo.NewEngine(cfg.Scoring.LambdaDecay, tokenizer)
	if err != nil {
		return nil, fmt.Errorf("attribution engine: %w", err)
	}

	analyzer, err := pattern.NewAnalyzer(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("pattern analyzer: %w", err)
	}

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = home + "/.geoscope/cache"
			}
		}
		if dir != "" {
			pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		tokenizer:  tokenizer,
		engine:     engine,
		analyzer:   analyzer,
		quality:    quality.NewScorer(tokenizer),
		fetcher:    fetch.NewFetcher(cfg.HTTP),
		extractor:  extract.NewStructureExtractor(),
		pageCache:  pageCache,
		summarizer: summarizer,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// AnalyzeText runs the pure scoring core over already-decoded text.
// No I/O happens here; the result is a deterministic function of the
// inputs. structure and signals may be nil.
func (p *Pipeline) AnalyzeText(sourceText, responseText string, structure *model.PageStructure, signals *model.ContentSignals) *model.AnalysisReport {
	report := &model.AnalysisReport{
		AnalyzedAt:  time.Now().UTC(),
		Attribution: p.engine.CalculateMetrics(sourceText, responseText),
		Patterns:    p.analyzer.Analyze(responseText),
		Quality:     p.quality.Score(responseText),
		Keywords:    p.tokenizer.KeywordDensity(responseText, p.config.Scoring.TopKeywords),
		Structure:   structure,
		Content:     signals,
	}

	report.Impression = pattern.ComposeImpression(
		report.Patterns[pattern.CategoryAuthority],
		report.Patterns[pattern.CategoryStatistics],
	)

	report.Recommendations = recommend.Generate(report)

	return report
}

// AnalyzePair fetches the response (and optionally the source), scores
// the pair and generates recommendations. An empty sourceURL skips
// attribution; both metrics then resolve to zero per the degenerate
// input rules.
func (p *Pipeline) AnalyzePair(ctx context.Context, sourceURL, responseURL string) (*model.AnalysisReport, error) {
	responseDoc, err := p.fetchDocument(ctx, responseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch response: %w", err)
	}

	sourceText := ""
	if sourceURL != "" {
		sourceDoc, err := p.fetchDocument(ctx, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("fetch source: %w", err)
		}
		sourceText = p.documentText(sourceDoc.Text, nil)
	}

	var structure *model.PageStructure
	if ingest.LooksLikeHTML(responseDoc.Text) {
		structure, err = p.extractor.Extract(responseDoc.Text)
		if err != nil {
			return nil, fmt.Errorf("extract structure: %w", err)
		}
	}
	responseText := p.documentText(responseDoc.Text, structure)

	report := p.AnalyzeText(sourceText, responseText, structure, nil)
	report.Subject = subjectFromURL(responseDoc.FinalURL)
	report.SourceURL = sourceURL
	report.ResponseURL = responseDoc.FinalURL
	report.FetchMeta = responseDoc.Meta

	p.attachSummary(ctx, report)

	return report, nil
}

// AnalyzeFiles scores local documents: markdown responses are flattened
// via goldmark, HTML documents go through the structure extractor.
func (p *Pipeline) AnalyzeFiles(ctx context.Context, sourcePath, responsePath string) (*model.AnalysisReport, error) {
	responseRaw, err := os.ReadFile(responsePath)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	sourceText := ""
	if sourcePath != "" {
		sourceRaw, err := os.ReadFile(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		sourceText = p.flattenFile(sourcePath, sourceRaw)
	}

	var structure *model.PageStructure
	content := string(responseRaw)
	if ingest.LooksLikeHTML(content) {
		structure, err = p.extractor.Extract(content)
		if err != nil {
			return nil, fmt.Errorf("extract structure: %w", err)
		}
	}
	responseText := content
	if structure != nil {
		responseText = p.documentText(content, structure)
	} else if isMarkdownPath(responsePath) {
		responseText = ingest.MarkdownToText(responseRaw)
	}

	report := p.AnalyzeText(sourceText, responseText, structure, nil)
	report.Subject = responsePath

	p.attachSummary(ctx, report)

	return report, nil
}

func (p *Pipeline) flattenFile(path string, raw []byte) string {
	content := string(raw)
	if ingest.LooksLikeHTML(content) {
		if visible, err := p.extractor.VisibleText(content); err == nil {
			return visible
		}
	}
	if isMarkdownPath(path) {
		return ingest.MarkdownToText(raw)
	}
	return content
}

func isMarkdownPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// documentText returns the plain text to score for a fetched document:
// the extracted body when the document was HTML, the raw text otherwise.
// A page whose paragraph extraction came up empty falls back to all
// visible text.
func (p *Pipeline) documentText(raw string, structure *model.PageStructure) string {
	if structure != nil && structure.BodyText != "" {
		return structure.BodyText
	}
	if ingest.LooksLikeHTML(raw) {
		if visible, err := p.extractor.VisibleText(raw); err == nil {
			return visible
		}
	}
	return raw
}

// fetchDocument fetches through the page cache when enabled.
func (p *Pipeline) fetchDocument(ctx context.Context, rawURL string) (*fetch.Result, error) {
	key := cache.Key(rawURL)

	if p.pageCache != nil {
		if data, found := p.pageCache.Get(key); found {
			var cached fetch.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	result, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if p.pageCache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.pageCache.Set(key, data, 0)
		}
	}

	return result, nil
}

// attachSummary generates the optional LLM summary after scoring.
// Failures warn and never fail the analysis.
func (p *Pipeline) attachSummary(ctx context.Context, report *model.AnalysisReport) {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return
	}
	summary, err := p.summarizer.GenerateSummary(ctx, *report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		return
	}
	report.LLM = summary
}

// subjectFromURL extracts a human-readable subject from a URL.
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// De-slugify.
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	return last
}
