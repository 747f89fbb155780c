// Package geo implements the attribution metrics: how much of a source
// document a generated response draws on, and how prominently it places
// that material.
package geo

import (
	"fmt"
	"math"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/text"
)

// Engine computes attribution metrics over a (source, response) pair.
type Engine struct {
	lambda    float64
	tokenizer *text.Tokenizer
}

// NewEngine creates an attribution engine. lambda is the positional
// decay constant; non-positive values are a configuration fault.
func NewEngine(lambda float64, tokenizer *text.Tokenizer) (*Engine, error) {
	if lambda <= 0 {
		return nil, fmt.Errorf("lambda decay must be positive, got %g", lambda)
	}
	return &Engine{lambda: lambda, tokenizer: tokenizer}, nil
}

// WordCountMetric is the base ratio metric: source words over total
// response words. Returns 0 when the response is empty.
func (e *Engine) WordCountMetric(sourceWords, totalWords int) float64 {
	if totalWords == 0 {
		return 0
	}
	return float64(sourceWords) / float64(totalWords)
}

// PositionAdjustedMetric weights each attributed sentence by
// exp(-position/λ), so material surfacing early in the response counts
// close to its full word weight and material buried deep decays toward
// zero. Returns 0 when the response is empty.
func (e *Engine) PositionAdjustedMetric(records []model.AttributionRecord, totalWords int) float64 {
	if totalWords == 0 {
		return 0
	}

	weightedSum := 0.0
	for _, record := range records {
		weight := math.Exp(-float64(record.Position) / e.lambda)
		weightedSum += float64(record.WordCount) * weight
	}
	return weightedSum / float64(totalWords)
}

// CalculateMetrics runs the full attribution computation for a
// (source, response) text pair. Deterministic: identical inputs always
// produce an identical result.
func (e *Engine) CalculateMetrics(sourceText, responseText string) model.Attribution {
	sourceSentences := e.tokenizer.Sentences(sourceText)
	responseSentences := e.tokenizer.Sentences(responseText)

	sourceWords := e.tokenizer.WordCount(sourceText)
	totalWords := e.tokenizer.WordCount(responseText)

	records := Attribute(sourceSentences, responseSentences)

	return model.Attribution{
		WordCountMetric:        e.WordCountMetric(sourceWords, totalWords),
		PositionAdjustedMetric: e.PositionAdjustedMetric(records, totalWords),
		SourcePositions:        records,
		SourceWords:            sourceWords,
		ResponseWords:          totalWords,
	}
}
