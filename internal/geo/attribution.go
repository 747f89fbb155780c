package geo

import (
	"strings"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/text"
)

// Attribute locates each source sentence inside the response sentence
// sequence. For every source sentence, response sentences are scanned in
// order (position 1, 2, ...); the first whose lower-cased text contains
// the lower-cased source sentence wins and scanning stops for that
// source sentence. Source sentences that match nowhere contribute no
// record. Multiple source sentences may attribute to the same position.
func Attribute(sourceSentences, responseSentences []text.Sentence) []model.AttributionRecord {
	var records []model.AttributionRecord
	for _, source := range sourceSentences {
		needle := strings.ToLower(source.Text)
		for _, response := range responseSentences {
			if strings.Contains(strings.ToLower(response.Text), needle) {
				records = append(records, model.AttributionRecord{
					WordCount: source.Words,
					Position:  response.Position,
				})
				break
			}
		}
	}
	return records
}
