package text

import (
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/geoscope/internal/model"
)

// Sentence is one trimmed sentence span with its derived word count and
// 1-based ordinal position within the parent document.
type Sentence struct {
	Text     string
	Words    int
	Position int
}

// Tokenizer splits text into words, sentences and paragraphs according
// to a locale profile.
type Tokenizer struct {
	profile LocaleProfile
}

// NewTokenizer creates a tokenizer with the given profile.
func NewTokenizer(profile LocaleProfile) *Tokenizer {
	return &Tokenizer{profile: profile}
}

// Words splits text on whitespace. No stemming or casing is applied.
func (t *Tokenizer) Words(text string) []string {
	return strings.Fields(text)
}

// WordCount returns the number of whitespace-separated words.
func (t *Tokenizer) WordCount(text string) int {
	return len(strings.Fields(text))
}

// Sentences splits text on sentence-terminal punctuation, trims each
// span and drops empty ones. Empty or punctuation-only text yields an
// empty slice, not an error.
func (t *Tokenizer) Sentences(text string) []Sentence {
	var sentences []Sentence
	var current strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(current.String())
		current.Reset()
		if trimmed == "" {
			return
		}
		sentences = append(sentences, Sentence{
			Text:     trimmed,
			Words:    len(strings.Fields(trimmed)),
			Position: len(sentences) + 1,
		})
	}

	for _, r := range text {
		if t.profile.isTerminator(r) {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// Paragraphs counts paragraphs delimited by blank-line breaks.
// Text without any blank line is a single paragraph.
func (t *Tokenizer) Paragraphs(text string) int {
	count := 0
	inBlank := true
	for _, block := range strings.Split(text, "\n") {
		if strings.TrimSpace(block) == "" {
			inBlank = true
			continue
		}
		if inBlank {
			count++
			inBlank = false
		}
	}
	return count
}

// KeywordDensity returns the top-N keyword densities over stop-word
// filtered words of at least three runes. Ties are broken by first
// occurrence so the result is deterministic.
func (t *Tokenizer) KeywordDensity(text string, topN int) []model.KeywordDensity {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	total := 0

	word := strings.Builder{}
	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		if len([]rune(w)) <= 2 || t.profile.IsStopWord(w) {
			return
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
		total++
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	if total == 0 {
		return nil
	}

	firstSeen := make(map[string]int, len(order))
	for i, w := range order {
		firstSeen[w] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	result := make([]model.KeywordDensity, 0, len(order))
	for _, w := range order {
		result = append(result, model.KeywordDensity{
			Word:    w,
			Count:   counts[w],
			Density: float64(counts[w]) / float64(total),
		})
	}
	return result
}
