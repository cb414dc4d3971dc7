package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minTokenLength = 3

// normalizeText lowercases, strips diacritics, replaces every
// non-alphanumeric rune with a space and collapses whitespace.
func normalizeText(s string) string {
	s = strings.ToLower(s)

	deaccent := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet builds the set of normalized words of length >= minTokenLength
// across all parts.
func tokenSet(parts ...string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, part := range parts {
		for _, word := range strings.Fields(normalizeText(part)) {
			if len(word) >= minTokenLength {
				tokens[word] = struct{}{}
			}
		}
	}
	return tokens
}

// dedupeKey identifies a book independent of catalog ID, so a favorite
// stored under a non-OpenLibrary ID still matches its OpenLibrary twin.
func dedupeKey(title, author string) string {
	return normalizeText(title) + "::" + normalizeText(author)
}

// jaccard is the intersection-over-union of two sets, 0 when either is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
