// Package quality implements length/readability/structure heuristics
// over response text.
package quality

import (
	"math"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/text"
)

const (
	idealWordCount      = 1000 // length score saturates here
	idealSentenceLength = 15   // readability peaks at this many words per sentence
	idealParagraphs     = 10   // structure score saturates here
)

// Scorer computes content quality sub-scores.
type Scorer struct {
	tokenizer *text.Tokenizer
}

// NewScorer creates a quality scorer.
func NewScorer(tokenizer *text.Tokenizer) *Scorer {
	return &Scorer{tokenizer: tokenizer}
}

// Score computes the three sub-scores and their arithmetic mean.
// Degenerate input (empty text, zero sentences) resolves to zeros, not
// an error.
func (s *Scorer) Score(textContent string) model.QualityScores {
	words := s.tokenizer.WordCount(textContent)
	sentences := s.tokenizer.Sentences(textContent)
	paragraphs := s.tokenizer.Paragraphs(textContent)

	avgSentenceLength := 0.0
	if len(sentences) > 0 {
		total := 0
		for _, sentence := range sentences {
			total += sentence.Words
		}
		avgSentenceLength = float64(total) / float64(len(sentences))
	}

	lengthScore := math.Min(float64(words)/idealWordCount, 1.0)
	readabilityScore := 1.0 - math.Min(math.Abs(avgSentenceLength-idealSentenceLength)/idealSentenceLength, 1.0)
	structureScore := math.Min(float64(paragraphs)/idealParagraphs, 1.0)

	return model.QualityScores{
		LengthScore:      lengthScore,
		ReadabilityScore: readabilityScore,
		StructureScore:   structureScore,
		OverallScore:     (lengthScore + readabilityScore + structureScore) / 3,
	}
}
