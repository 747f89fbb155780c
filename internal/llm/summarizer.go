package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/geoscope/internal/model"
)

// Summarizer wraps a provider and produces the LLMSummary block for a
// report.
type Summarizer struct {
	provider Provider
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer from configuration. Only the
// "openai" provider is supported; an empty provider disables
// summarization.
func NewSummarizer(config model.LLMConfig) (*Summarizer, error) {
	if config.Provider == "" {
		return &Summarizer{config: config}, nil
	}

	switch config.Provider {
	case "openai":
		provider, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return &Summarizer{provider: provider, config: config}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", config.Provider)
	}
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the summary block for a finished report.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.AnalysisReport) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
