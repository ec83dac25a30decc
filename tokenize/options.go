package tokenize

import (
	"regexp"
	"strings"

	"github.com/vippsas/fulltextindex/locale"
)

// Options configures one tokenization pass. Zero value is usable: it
// tokenizes with the default locale's pattern, minLength 1, maxLength 25,
// no blacklist/whitelist, and no stoplist.
type Options struct {
	Locale string

	// Pattern overrides the locale's default word-extraction pattern.
	// Leave empty to use the locale default.
	Pattern string

	// Flags overrides the locale's default regexp flags. Leave nil to use
	// the locale default.
	Flags *locale.Flags

	// IncludeChars, when non-empty, is spliced into the pattern's
	// character class(es) so callers can keep wildcard characters like
	// '*' and '?' alive through tokenization (used by the query parser).
	IncludeChars string

	// Prepare, if set, is called with (text, locale, `"`+includeChars)
	// before transliteration and may return a replacement text. The
	// leading `"` in the third argument is an artifact of the original
	// implementation this index's behavior was distilled from; its
	// purpose is unclear, so it is reproduced verbatim as an opaque
	// pass-through rather than guessed at.
	Prepare func(text, locale, keepChars string) string

	// Stemming, if set, is called per extracted word with (word, locale).
	// ok=false is the "reject this token" sentinel: the word is recorded
	// as ignored and its word-index slot is not advanced.
	Stemming func(word, locale string) (stemmed string, ok bool)

	MinLength int // default 1 if <= 0
	MaxLength int // default 25 if <= 0

	Blacklist map[string]struct{}
	Whitelist map[string]struct{}

	UseStoplist bool

	// Transliterate defaults to DefaultTransliterate when nil.
	Transliterate Transliterate
}

func (o Options) minLength() int {
	if o.MinLength <= 0 {
		return 1
	}
	return o.MinLength
}

func (o Options) maxLength() int {
	if o.MaxLength <= 0 {
		return 25
	}
	return o.MaxLength
}

// resolved is the fully computed, ready-to-run configuration for one
// tokenization pass.
type resolved struct {
	settings      locale.Settings
	pattern       *regexp.Regexp
	blacklist     map[string]struct{}
	whitelist     map[string]struct{}
	transliterate Transliterate
}

func resolve(o Options) (resolved, error) {
	settings := locale.Get(o.Locale)

	patternSrc := settings.Pattern
	if o.Pattern != "" {
		patternSrc = o.Pattern
	}

	if o.IncludeChars != "" {
		spliced, err := spliceIncludeChars(patternSrc, o.IncludeChars)
		if err != nil {
			return resolved{}, err
		}
		patternSrc = spliced
	}

	flags := settings.Flags
	if o.Flags != nil {
		flags = *o.Flags
	}
	settingsWithFlags := locale.Settings{Locale: settings.Locale, Pattern: patternSrc, Flags: flags}
	compiled, err := settingsWithFlags.CompilePattern()
	if err != nil {
		return resolved{}, err
	}

	blacklist := make(map[string]struct{}, len(o.Blacklist))
	for w := range o.Blacklist {
		blacklist[w] = struct{}{}
	}
	if o.UseStoplist {
		for w := range settings.Stoplist {
			blacklist[w] = struct{}{}
		}
	}

	transliterate := o.Transliterate
	if transliterate == nil {
		transliterate = DefaultTransliterate
	}

	return resolved{
		settings:      settings,
		pattern:       compiled,
		blacklist:     blacklist,
		whitelist:     o.Whitelist,
		transliterate: transliterate,
	}, nil
}

// spliceIncludeChars escapes each rune in includeChars and inserts the
// escaped sequence immediately after every '[' occurrence in pattern. It
// fails with PatternShapeError if pattern has no character class.
func spliceIncludeChars(pattern, includeChars string) (string, error) {
	if !strings.Contains(pattern, "[") {
		return "", PatternShapeError{Pattern: pattern}
	}

	var escaped strings.Builder
	for _, r := range includeChars {
		escaped.WriteString(regexp.QuoteMeta(string(r)))
	}
	insert := escaped.String()

	var out strings.Builder
	for i := 0; i < len(pattern); i++ {
		out.WriteByte(pattern[i])
		if pattern[i] == '[' {
			out.WriteString(insert)
		}
	}
	return out.String(), nil
}
