package fulltextindex

import (
	"context"
	"sort"

	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/tokenize"
)

// filterByPhrase narrows candidates to only the entries whose `_occurs_`
// metadata shows phraseWords occurring as a contiguous run, in order. It
// prefers the already-fetched perWord ResultSets (populated while resolving
// the branch's bare residual words); for a phrase word not present there
// (the branch had no residual words, or a word unique to the phrase) it
// queries the substrate directly, filtered to candidates, so only
// already-surviving paths are ever decoded.
func (idx *Index) filterByPhrase(ctx context.Context, candidates substrate.ResultSet, perWord map[string]substrate.ResultSet, phraseWords []string) (substrate.ResultSet, error) {
	if len(candidates.Entries) == 0 {
		return candidates, nil
	}

	positionsByWord := make([][]positionsEntry, len(phraseWords))
	for i, w := range phraseWords {
		rs, ok := perWord[w]
		if !ok {
			var err error
			rs, err = idx.tree.Query(ctx, wordOp(w), w, &candidates)
			if err != nil {
				return substrate.ResultSet{}, SubstrateError{Err: err}
			}
		}
		positionsByWord[i] = indexPositions(rs)
	}

	var filtered substrate.ResultSet
	for _, entry := range candidates.Entries {
		if phraseMatches(entry.Path, positionsByWord) {
			filtered.Entries = append(filtered.Entries, entry)
		}
	}
	filtered.FilterKey = candidates.FilterKey
	filtered.Hints = candidates.Hints
	filtered.Stats.CandidateCount = len(filtered.Entries)
	return filtered, nil
}

type positionsEntry struct {
	path string
	pos  []int
}

// indexPositions decodes every entry's `_occurs_` metadata into a sorted
// position list, keyed by path for phraseMatches's lookup.
func indexPositions(rs substrate.ResultSet) []positionsEntry {
	out := make([]positionsEntry, 0, len(rs.Entries))
	for _, e := range rs.Entries {
		positions := tokenize.DecodeOccurs(e.Metadata["_occurs_"])
		out = append(out, positionsEntry{path: e.Path, pos: positions})
	}
	return out
}

func lookupPositions(entries []positionsEntry, path string) ([]int, bool) {
	for _, e := range entries {
		if e.path == path {
			return e.pos, true
		}
	}
	return nil, false
}

// phraseMatches reports whether, for the given path, there exists a
// starting position p0 such that every phraseWords[i] occurred at position
// p0+i (spec.md §4.G): an iterative cursor walk over word 0's positions,
// checking each candidate start against every other word's (sorted)
// position list with a binary search.
func phraseMatches(path string, positionsByWord [][]positionsEntry) bool {
	if len(positionsByWord) == 0 {
		return true
	}

	firstPositions, ok := lookupPositions(positionsByWord[0], path)
	if !ok || len(firstPositions) == 0 {
		return false
	}

	for _, p0 := range firstPositions {
		if phraseStartsAt(path, positionsByWord, p0) {
			return true
		}
	}
	return false
}

func phraseStartsAt(path string, positionsByWord [][]positionsEntry, p0 int) bool {
	for i := 1; i < len(positionsByWord); i++ {
		positions, ok := lookupPositions(positionsByWord[i], path)
		if !ok {
			return false
		}
		want := p0 + i
		idx := sort.SearchInts(positions, want)
		if idx >= len(positions) || positions[idx] != want {
			return false
		}
	}
	return true
}
