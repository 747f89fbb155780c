package model

import "time"

// AnalysisReport represents the complete Geoscope analysis of a
// (source, response) document pair.
type AnalysisReport struct {
	Subject     string    `json:"subject"`                // Subject of the report (usually derived from the response URL)
	SourceURL   string    `json:"source_url,omitempty"`   // URL the source text came from, if fetched
	ResponseURL string    `json:"response_url,omitempty"` // URL the response text came from, if fetched
	AnalyzedAt  time.Time `json:"analyzed_at"`            // When the analysis ran
	FetchMeta   FetchMeta `json:"fetch_meta,omitempty"`   // HTTP metadata from the response fetch

	Attribution Attribution              `json:"attribution"`          // Source-attribution metrics
	Patterns    map[string]PatternResult `json:"patterns"`             // Per-category rhetorical signals
	Impression  float64                  `json:"impression_score"`     // Composite subjective-impression score [0,1]
	Quality     QualityScores            `json:"quality"`              // Content quality sub-scores
	Keywords    []KeywordDensity         `json:"keywords,omitempty"`   // Top keyword densities (informational)
	Structure   *PageStructure           `json:"structure,omitempty"`  // Structural metadata, when the response was a page
	Content     *ContentSignals          `json:"content,omitempty"`    // External content-analysis signals, when supplied

	Recommendations []RecommendationItem `json:"recommendations"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects scores)
}

// Attribution bundles the two attribution metrics with the records
// behind them.
type Attribution struct {
	WordCountMetric        float64             `json:"word_count_metric"`        // sourceWords / totalWords
	PositionAdjustedMetric float64             `json:"position_adjusted_metric"` // decay-weighted variant
	SourcePositions        []AttributionRecord `json:"source_positions"`         // one record per attributed source sentence
	SourceWords            int                 `json:"source_words"`             // total words in the source text
	ResponseWords          int                 `json:"response_words"`           // total words in the response text
}

// AttributionRecord records that a source sentence was found inside the
// response sentence at Position (1-based). Unmatched source sentences
// produce no record.
type AttributionRecord struct {
	WordCount int `json:"word_count"` // words in the source sentence
	Position  int `json:"position"`   // 1-based response sentence ordinal
}

// PatternResult holds the outcome of evaluating one pattern category
// against the response text.
type PatternResult struct {
	Count   int      `json:"count"`             // total match occurrences across all rules
	Matches []string `json:"matches,omitempty"` // matched substrings in encounter order, duplicates retained
	Score   float64  `json:"score"`             // min(count/5, 1.0)
}

// QualityScores holds the length/readability/structure heuristics.
type QualityScores struct {
	LengthScore      float64 `json:"length_score"`      // min(words/1000, 1.0)
	ReadabilityScore float64 `json:"readability_score"` // peaks at 15 words per sentence
	StructureScore   float64 `json:"structure_score"`   // min(paragraphs/10, 1.0)
	OverallScore     float64 `json:"overall_score"`     // arithmetic mean of the three
}

// KeywordDensity is one entry of the top-N keyword density table.
type KeywordDensity struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// ContentSignals carries scores produced by an external content-analysis
// collaborator. Nil fields mean the collaborator did not supply a value;
// the corresponding recommendation rules are skipped, not fired.
type ContentSignals struct {
	Readability *float64 `json:"readability,omitempty"` // 0-100 scale
	Coherence   *float64 `json:"coherence,omitempty"`   // 0-1 scale
}

// FetchMeta contains HTTP metadata from fetching a document.
type FetchMeta struct {
	StatusCode   int    `json:"status_code,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
	Encoding     string `json:"encoding,omitempty"` // charset the body was decoded from
}

// Severity indicates how urgent a recommendation is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RecommendationItem is one actionable advisory derived from the
// analysis by a fixed threshold rule.
type RecommendationItem struct {
	Category string   `json:"category"` // meta_tags, headings, content, geo
	Element  string   `json:"element"`  // title, description, h1, length, authority, ...
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// LLMSummary contains an optional LLM-generated summary.
// It never affects scoring and is clearly separated in output.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
