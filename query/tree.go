// Package query parses the human-facing full-text query grammar
// (spec.md §6.3) into a Tree the executor can run: an OR of branches, each
// branch an AND of phrases and a residual bare-word string.
package query

// Tree is the parsed form of a full query string: an OR of independent
// Branches.
type Tree struct {
	Branches []Branch
}

// Branch is one OR-disjunct: zero or more quoted phrases (matched in
// order) ANDed with a residual bare-word string.
type Branch struct {
	// Phrases holds the raw (unquoted) contents of each `"..."` substring,
	// in the order they appeared in the branch.
	Phrases []string

	// Residual is whatever remains of the branch after phrase extraction,
	// still raw text -- the executor tokenizes it with includeChars="*?"
	// using the index's own locale/pattern configuration.
	Residual string
}
