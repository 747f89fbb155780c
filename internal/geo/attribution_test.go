package geo

import (
	"testing"

	"github.com/ppiankov/geoscope/internal/text"
)

func sentencesOf(texts ...string) []text.Sentence {
	tokenizer := text.NewTokenizer(text.DefaultTurkish())
	sentences := make([]text.Sentence, 0, len(texts))
	for i, s := range texts {
		words := tokenizer.WordCount(s)
		sentences = append(sentences, text.Sentence{Text: s, Words: words, Position: i + 1})
	}
	return sentences
}

func TestAttribute_FirstMatchWins(t *testing.T) {
	source := sentencesOf("A B C")
	response := sentencesOf("A B C", "X Y", "A B C D")

	records := Attribute(source, response)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Position != 1 {
		t.Errorf("expected first match at position 1, got %d", records[0].Position)
	}
}

func TestAttribute_CaseInsensitiveSubstring(t *testing.T) {
	source := sentencesOf("yapay zeka önemlidir")
	response := sentencesOf("Bilinen bir gerçek", "Araştırmalara göre YAPAY ZEKA önemlidir elbette")

	records := Attribute(source, response)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Position != 2 {
		t.Errorf("expected position 2, got %d", records[0].Position)
	}
	if records[0].WordCount != 3 {
		t.Errorf("expected word count 3, got %d", records[0].WordCount)
	}
}

func TestAttribute_UnmatchedSentencesSilentlyDropped(t *testing.T) {
	source := sentencesOf("bulunan cümle", "hiçbir yerde geçmeyen cümle")
	response := sentencesOf("işte bulunan cümle burada")

	records := Attribute(source, response)

	// No zero-padded entry for the unmatched sentence; it simply
	// contributes nothing to the decay metric's numerator.
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Position != 1 {
		t.Errorf("expected position 1, got %d", records[0].Position)
	}
}

func TestAttribute_MultipleSourcesSamePosition(t *testing.T) {
	source := sentencesOf("ilk parça", "ikinci parça")
	response := sentencesOf("ilk parça ve ikinci parça aynı cümlede")

	records := Attribute(source, response)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, record := range records {
		if record.Position != 1 {
			t.Errorf("record %d: expected position 1, got %d", i, record.Position)
		}
	}
}

func TestAttribute_EmptyInputs(t *testing.T) {
	if records := Attribute(nil, sentencesOf("bir cümle")); len(records) != 0 {
		t.Errorf("expected no records for empty source, got %d", len(records))
	}
	if records := Attribute(sentencesOf("bir cümle"), nil); len(records) != 0 {
		t.Errorf("expected no records for empty response, got %d", len(records))
	}
}
