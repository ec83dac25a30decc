package tokenize

import "fmt"

// PatternShapeError is returned when Options.IncludeChars is set but the
// effective pattern contains no character class ('[') to splice the
// escaped include-characters into.
type PatternShapeError struct {
	Pattern string
}

func (e PatternShapeError) Error() string {
	return fmt.Sprintf("tokenize: pattern %q has no character class to splice includeChars into", e.Pattern)
}
