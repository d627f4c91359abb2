// Package textproc tokenizes free text (tune titles) for indexing
// alongside melodic features.
package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold strips combining diacritical marks (Tokenize lower-cases
// before calling it), the same preprocessing step the original tokenizer ran through
// unidecode before unioning tokenization strategies.
func asciiFold(text string) string {
	folded, _, err := transform.String(stripDiacritics, text)
	if err != nil {
		return text
	}
	return folded
}

// Tokenize splits text into a set of lower-cased tokens, unioning
// several splitting strategies the way the original title indexer
// does: whitespace-separated, alphanumeric runs, alpha-only runs, and
// numeric-only runs, over both the original and diacritic-stripped
// text.
func Tokenize(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	preprocessed := lower + " " + asciiFold(lower)

	tokens := splitOn(preprocessed, unicode.IsSpace)

	var more []string
	for _, tok := range tokens {
		more = append(more, splitOn(tok, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })...)
	}
	tokens = append(tokens, more...)

	more = more[:0]
	for _, tok := range tokens {
		more = append(more, splitOn(tok, func(r rune) bool { return !unicode.IsLetter(r) })...)
	}
	tokens = append(tokens, more...)

	more = more[:0]
	for _, tok := range tokens {
		more = append(more, splitOn(tok, func(r rune) bool { return !unicode.IsDigit(r) })...)
	}
	tokens = append(tokens, more...)

	result := make(map[string]struct{})
	for _, tok := range tokens {
		if tok != "" {
			result[tok] = struct{}{}
		}
	}
	return result
}

func splitOn(s string, isSeparator func(rune) bool) []string {
	return strings.FieldsFunc(s, isSeparator)
}
