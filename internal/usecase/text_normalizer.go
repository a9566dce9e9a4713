package usecase

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// NormalizedText holds the two forms of an utterance used by the extractor
type NormalizedText struct {
	// Lower is lower-cased and trimmed, diacritics preserved
	Lower string
	// Folded is Lower with Turkish letters replaced by their closest ASCII letter
	Folded string
}

// diacriticFolder is a fixed substitution table, not a general transliterator.
// U+0307 is the combining dot that lower-casing "İ" leaves behind.
var diacriticFolder = strings.NewReplacer(
	"ç", "c",
	"ğ", "g",
	"ı", "i",
	"ö", "o",
	"ş", "s",
	"ü", "u",
	"\u0307", "",
)

// TextNormalizer produces the normalized forms of customer input
type TextNormalizer struct {
	enableDebugLogging bool
}

// NewTextNormalizer creates a new text normalizer
func NewTextNormalizer(enableDebugLogging bool) *TextNormalizer {
	return &TextNormalizer{
		enableDebugLogging: enableDebugLogging,
	}
}

// Normalize lower-cases and trims the input, then folds diacritics
func (n *TextNormalizer) Normalize(input string) NormalizedText {
	lower := strings.TrimSpace(strings.ToLower(input))
	out := NormalizedText{
		Lower:  lower,
		Folded: FoldDiacritics(lower),
	}

	if n.enableDebugLogging {
		log.Debugf("[NORMALIZE] Input: %q → Lower: %q, Folded: %q", input, out.Lower, out.Folded)
	}

	return out
}

// FoldDiacritics applies the fixed substitution table to already lower-cased text
func FoldDiacritics(s string) string {
	return diacriticFolder.Replace(s)
}
