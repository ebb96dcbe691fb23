package survey

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops the combining marks,
// e.g. "COMUNICACIÓN" → "COMUNICACION". Transformers carry state, so each
// call builds its own chain.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeHeader standardizes a raw spreadsheet header for matching:
// accents folded to ASCII, then lowercased, remaining non-ASCII dropped, and
// surrounding whitespace trimmed. Lowercasing happens after the fold so
// compatibility decompositions that emit uppercase ASCII (™ → "TM") still
// come out lowercase.
func NormalizeHeader(header string) string {
	h := strings.ToLower(asciiFold(strings.TrimSpace(header)))

	var b strings.Builder
	b.Grow(len(h))
	for _, r := range h {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCategory standardizes a demographic attribute value so that group
// keys are stable: trimmed, lowercased, and inner whitespace runs collapsed
// to a single space.
func NormalizeCategory(value string) string {
	fields := strings.Fields(strings.ToLower(value))
	return strings.Join(fields, " ")
}
