package query

import (
	"regexp"
	"strings"
)

var phraseRe = regexp.MustCompile(`"([^"]*)"`)

// Parse splits a raw query string into a Tree: top-level OR branches
// (space-delimited literal " OR "), each further split into its quoted
// phrases (extracted in order) and residual bare-word text.
func Parse(raw string) Tree {
	var tree Tree
	for _, part := range strings.Split(raw, " OR ") {
		tree.Branches = append(tree.Branches, parseBranch(part))
	}
	return tree
}

func parseBranch(s string) Branch {
	matches := phraseRe.FindAllStringSubmatchIndex(s, -1)

	var phrases []string
	var residualParts []string
	last := 0
	for _, m := range matches {
		residualParts = append(residualParts, s[last:m[0]])
		phrases = append(phrases, s[m[2]:m[3]])
		last = m[1]
	}
	residualParts = append(residualParts, s[last:])

	residual := strings.TrimSpace(strings.Join(residualParts, " "))
	return Branch{Phrases: phrases, Residual: residual}
}

// DefaultMinimumWildcardWordLength is the minimum position a '*' wildcard
// may appear at within a token before that token is pruned as too broad.
const DefaultMinimumWildcardWordLength = 2

// PruneWildcards splits tokenized bare words into those kept for querying
// and those ignored because they are wildcard-only (e.g. "*", "**") or
// because their first '*' occurs before minimumWildcardWordLength.
func PruneWildcards(words []string, minimumWildcardWordLength int) (kept, ignored []string) {
	for _, w := range words {
		if !strings.ContainsAny(w, "*?") {
			kept = append(kept, w)
			continue
		}
		if isWildcardOnly(w) {
			ignored = append(ignored, w)
			continue
		}
		if idx := strings.IndexByte(w, '*'); idx >= 0 && idx < minimumWildcardWordLength {
			ignored = append(ignored, w)
			continue
		}
		kept = append(kept, w)
	}
	return kept, ignored
}

func isWildcardOnly(w string) bool {
	for _, r := range w {
		if r != '*' && r != '?' {
			return false
		}
	}
	return true
}
