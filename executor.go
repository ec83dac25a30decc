package fulltextindex

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/vippsas/fulltextindex/query"
	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/tokenize"
)

// Operator is one of the two operators this index answers.
type Operator string

const (
	OpContains    Operator = "fulltext:contains"
	OpNotContains Operator = "fulltext:!contains"
)

// Query runs raw against the index under op and returns the matching
// records as a substrate.ResultSet (entries, stats, and any hints about
// words that were dropped along the way). A hit against the substrate's
// own (op, query string) cache short-circuits parsing and execution
// entirely; a miss is cached on the way out (spec.md §2, §4.F).
func (idx *Index) Query(ctx context.Context, op Operator, raw string) (substrate.ResultSet, error) {
	switch op {
	case OpContains, OpNotContains:
	default:
		return substrate.ResultSet{}, UnsupportedOperatorError{Operator: string(op)}
	}

	cacheOp := substrate.Op(op)
	if cached, ok := idx.tree.Cache(cacheOp, raw, nil); ok {
		return cached, nil
	}

	var result substrate.ResultSet
	var err error
	switch op {
	case OpContains:
		result, err = idx.queryContains(ctx, raw)
	case OpNotContains:
		result, err = idx.queryNotContains(ctx, raw)
	}
	if err != nil {
		return substrate.ResultSet{}, err
	}

	idx.tree.Cache(cacheOp, raw, &result)
	return result, nil
}

func (idx *Index) queryContains(ctx context.Context, raw string) (substrate.ResultSet, error) {
	tree := query.Parse(raw)
	return idx.executeTree(ctx, tree)
}

// queryNotContains answers fulltext:!contains by handing the substrate a
// BlacklistingSearchOperator scan: every posted word is checked against the
// query's (possibly wildcarded) words, and any record with a matching
// posting is excluded from the universe (spec.md §4.F "Negation").
func (idx *Index) queryNotContains(ctx context.Context, raw string) (substrate.ResultSet, error) {
	tree := query.Parse(raw)

	var allWords []string
	for _, branch := range tree.Branches {
		for _, phrase := range branch.Phrases {
			words, _, err := idx.tokenizeBranchText(phrase)
			if err != nil {
				return substrate.ResultSet{}, err
			}
			allWords = append(allWords, words...)
		}
		words, _, err := idx.tokenizeBranchText(branch.Residual)
		if err != nil {
			return substrate.ResultSet{}, err
		}
		allWords = append(allWords, words...)
	}

	kept, _ := query.PruneWildcards(allWords, idx.cfg.minimumWildcardWordLength())
	scan := substrate.BlacklistScan{Checks: make([]substrate.BlacklistCheck, 0, len(kept))}
	for _, w := range kept {
		scan.Checks = append(scan.Checks, buildBlacklistCheck(w))
	}

	result, err := idx.tree.QueryBlacklist(ctx, scan)
	if err != nil {
		return substrate.ResultSet{}, SubstrateError{Err: err}
	}
	return result, nil
}

// buildBlacklistCheck compiles a single query word (which may contain '*'
// or '?') into a substrate.BlacklistCheck: an exact match for a plain word,
// an anchored case-insensitive regexp for a wildcard one.
func buildBlacklistCheck(word string) substrate.BlacklistCheck {
	if !strings.ContainsAny(word, "*?") {
		return func(candidate string) bool { return candidate == word }
	}
	re := wildcardToRegexp(word)
	return func(candidate string) bool { return re.MatchString(candidate) }
}

// wordOp picks the substrate operator a word's own postings should be
// queried with: OpLike for a wildcarded word, OpEqual otherwise (spec.md
// §4.F step 3).
func wordOp(word string) substrate.Op {
	if strings.ContainsAny(word, "*?") {
		return substrate.OpLike
	}
	return substrate.OpEqual
}

func wildcardToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// tokenizeBranchText tokenizes a branch's phrase or residual text using the
// index's query-time options (wildcard characters kept alive), returning
// every kept word in position order (repeats included) alongside any
// ignored ones.
func (idx *Index) tokenizeBranchText(text string) (words, ignored []string, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}
	info, err := tokenize.Tokenize(text, idx.queryTokenizeOptions(idx.cfg.DefaultLocale))
	if err != nil {
		return nil, nil, err
	}
	return info.ToSequence(), info.Ignored, nil
}

// executeTree ORs together the ResultSet of every branch, preserving order
// of first occurrence across branches.
func (idx *Index) executeTree(ctx context.Context, tree query.Tree) (substrate.ResultSet, error) {
	var union substrate.ResultSet
	seen := make(map[string]struct{})

	for _, branch := range tree.Branches {
		branchResult, err := idx.executeBranch(ctx, branch)
		if err != nil {
			return substrate.ResultSet{}, err
		}
		for _, e := range branchResult.Entries {
			if _, ok := seen[e.Path]; ok {
				continue
			}
			seen[e.Path] = struct{}{}
			union.Entries = append(union.Entries, e)
		}
		union.Hints = append(union.Hints, branchResult.Hints...)
	}
	union.Stats.CandidateCount = len(union.Entries)
	return union, nil
}

// executeBranch ANDs a branch's phrases with its residual bare words:
// bare words are resolved first (cheapest to order by cardinality), then
// each phrase is checked against the surviving candidates using the
// per-word postings gathered along the way. A branch made up of phrases
// alone (no residual bare words) has no candidates to narrow yet, so its
// first phrase is instead run as its own cardinality-ordered bare-word
// sub-query over its own words, establishing the candidate set that the
// phrase check (and any further phrases) then narrows.
func (idx *Index) executeBranch(ctx context.Context, branch query.Branch) (substrate.ResultSet, error) {
	residualWords, residualIgnored, err := idx.tokenizeBranchText(branch.Residual)
	if err != nil {
		return substrate.ResultSet{}, err
	}
	kept, pruned := query.PruneWildcards(residualWords, idx.cfg.minimumWildcardWordLength())

	var hints []substrate.Hint
	for _, w := range residualIgnored {
		hints = append(hints, substrate.Hint{Type: substrate.HintIgnoredWord, Word: w})
	}
	for _, w := range pruned {
		hints = append(hints, substrate.Hint{Type: substrate.HintIgnoredWord, Word: w})
	}

	var result substrate.ResultSet
	var perWord map[string]substrate.ResultSet
	haveCandidates := false
	if len(kept) > 0 {
		result, perWord, err = idx.executeBareWords(ctx, kept)
		if err != nil {
			return substrate.ResultSet{}, err
		}
		haveCandidates = true
	}
	result.Hints = append(result.Hints, hints...)

	for _, phrase := range branch.Phrases {
		phraseWords, phraseIgnored, err := idx.tokenizeBranchText(phrase)
		if err != nil {
			return substrate.ResultSet{}, err
		}
		for _, w := range phraseIgnored {
			result.Hints = append(result.Hints, substrate.Hint{Type: substrate.HintIgnoredWord, Word: w})
		}
		if len(phraseWords) == 0 {
			continue
		}

		if !haveCandidates {
			carriedHints := result.Hints
			phraseCandidates, phrasePerWord, err := idx.executeBareWords(ctx, phraseWords)
			if err != nil {
				return substrate.ResultSet{}, err
			}
			phraseCandidates.Hints = append(carriedHints, phraseCandidates.Hints...)
			result, err = idx.filterByPhrase(ctx, phraseCandidates, phrasePerWord, phraseWords)
			if err != nil {
				return substrate.ResultSet{}, err
			}
			haveCandidates = true
			continue
		}

		result, err = idx.filterByPhrase(ctx, result, perWord, phraseWords)
		if err != nil {
			return substrate.ResultSet{}, err
		}
	}

	result.Stats.CandidateCount = len(result.Entries)
	return result, nil
}

// executeBareWords runs the sequential, cardinality-ordered AND-intersection
// described in spec.md §4.F: Count() every distinct word first so the most
// selective word is queried first, then each subsequent word's Query is
// filtered against the running result. Because each step's filter argument
// is the previous step's ResultSet, the final ResultSet is a subset of every
// per-word ResultSet observed along the way -- so perWord (the per-word,
// unfiltered-by-later-words ResultSet as observed at the moment it was
// queried) still safely bounds the phrase checker's position lookups for
// any path present in the final result.
func (idx *Index) executeBareWords(ctx context.Context, words []string) (substrate.ResultSet, map[string]substrate.ResultSet, error) {
	if len(words) == 0 {
		return substrate.ResultSet{}, nil, nil
	}

	type scored struct {
		word  string
		count int
	}
	scoredWords := make([]scored, 0, len(words))
	seenWord := make(map[string]struct{})
	for _, w := range words {
		if _, dup := seenWord[w]; dup {
			continue
		}
		seenWord[w] = struct{}{}

		n, err := idx.tree.Count(ctx, wordOp(w), w)
		if err != nil {
			return substrate.ResultSet{}, nil, SubstrateError{Err: err}
		}
		scoredWords = append(scoredWords, scored{word: w, count: n})
	}
	sort.SliceStable(scoredWords, func(i, j int) bool { return scoredWords[i].count < scoredWords[j].count })

	perWord := make(map[string]substrate.ResultSet, len(scoredWords))
	var running substrate.ResultSet
	var hints []substrate.Hint

	for i, sw := range scoredWords {
		var filter *substrate.ResultSet
		if i > 0 {
			filter = &running
		}
		r, err := idx.tree.Query(ctx, wordOp(sw.word), sw.word, filter)
		if err != nil {
			return substrate.ResultSet{}, nil, SubstrateError{Err: err}
		}
		perWord[sw.word] = r

		if r.Stats.CandidateCount == 0 && len(r.Entries) == 0 {
			hints = append(hints, substrate.Hint{Type: substrate.HintMissingWord, Word: sw.word})
		}
		running = r
		if len(running.Entries) == 0 {
			break
		}
	}

	running.Hints = append(running.Hints, hints...)
	return running, perWord, nil
}
