package text

import "github.com/ppiankov/geoscope/internal/model"

// LocaleProfile captures the locale-specific pieces of tokenization:
// which runes end a sentence and which words carry no topical weight.
type LocaleProfile struct {
	SentenceTerminators []rune
	StopWords           map[string]struct{}
}

// DefaultTurkish returns the profile the tool shipped with.
func DefaultTurkish() LocaleProfile {
	return LocaleProfile{
		SentenceTerminators: []rune{'.', '!', '?'},
		StopWords: stopWordSet([]string{
			"ve", "veya", "bir", "bu", "şu", "için", "ile", "da", "de", "mi", "den", "dan",
		}),
	}
}

// ProfileFromConfig builds a profile from configuration, falling back to
// the Turkish defaults for any empty field.
func ProfileFromConfig(cfg model.LocaleConfig) LocaleProfile {
	profile := DefaultTurkish()
	if cfg.SentenceTerminators != "" {
		profile.SentenceTerminators = []rune(cfg.SentenceTerminators)
	}
	if len(cfg.StopWords) > 0 {
		profile.StopWords = stopWordSet(cfg.StopWords)
	}
	return profile
}

func (p LocaleProfile) isTerminator(r rune) bool {
	for _, t := range p.SentenceTerminators {
		if r == t {
			return true
		}
	}
	return false
}

// IsStopWord reports whether the (already lower-cased) word is a stop word.
func (p LocaleProfile) IsStopWord(word string) bool {
	_, ok := p.StopWords[word]
	return ok
}

func stopWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
