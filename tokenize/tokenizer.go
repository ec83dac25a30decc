package tokenize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenize runs the full tokenization pipeline over text and returns the
// resulting TextInfo. A nil/empty text yields an empty TextInfo and no
// error -- tokenization never fails on its input text, only on
// misconfigured Options (see PatternShapeError).
func Tokenize(text string, opts Options) (*TextInfo, error) {
	result := NewTextInfo()
	if text == "" {
		return result, nil
	}

	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	if opts.Prepare != nil {
		text = opts.Prepare(text, opts.Locale, "\""+opts.IncludeChars)
	}

	text = transliterateToFixedPoint(cfg.transliterate, text)
	text = strings.ReplaceAll(text, "'", "")

	caser := cases.Lower(language.Make(opts.Locale))

	minLen := opts.minLength()
	maxLen := opts.maxLength()

	matches := cfg.pattern.FindAllStringIndex(text, -1)
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		word := text[start:end]

		if opts.Stemming != nil {
			stemmed, ok := opts.Stemming(word, opts.Locale)
			if !ok {
				result.addIgnored(word)
				continue
			}
			word = stemmed
		}

		word = caser.String(word)

		_, blacklisted := cfg.blacklist[word]
		_, whitelisted := cfg.whitelist[word]

		if len(word) < minLen || blacklisted {
			if whitelisted {
				// accepted despite being short/blacklisted
			} else {
				result.addIgnored(word)
				continue
			}
		} else if len(word) > maxLen {
			word = word[:maxLen]
		}

		result.addKept(word, start)
	}

	return result, nil
}
