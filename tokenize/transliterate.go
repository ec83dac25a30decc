package tokenize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterate is the external collaborator spec.md §1 assumes exists:
// something that turns arbitrary Unicode into ASCII. DefaultTransliterate
// is a usable default -- NFKD-decompose then strip combining marks, the
// standard golang.org/x/text recipe for diacritic stripping -- but callers
// performing real transliteration of non-Latin scripts should supply their
// own via Options.Transliterate.
type Transliterate func(string) string

var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DefaultTransliterate strips combining diacritical marks, leaving the
// base Latin letters behind. It is idempotent: a second pass is a no-op,
// satisfying the fixed-point requirement in spec.md §4.B step 6.
func DefaultTransliterate(s string) string {
	result, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return result
}

// transliterateToFixedPoint applies fn repeatedly until the output stops
// changing, defending against transliterators that decompose text over
// more than one pass.
func transliterateToFixedPoint(fn Transliterate, s string) string {
	for {
		next := fn(s)
		if next == s {
			return next
		}
		s = next
	}
}
