// Package tokenize turns record text into a TextInfo: a normalized,
// position-tracking view of the words it contains, ready for the index
// maintainer to diff and the query executor to search.
package tokenize

// WordInfo tracks every place a single normalized word occurred in a text:
// Indexes holds the dense, kept-word position (the index into the sequence
// of words that survived filtering), SourceIndexes holds the byte offset of
// the match in the text as matched (after Prepare, transliteration and
// apostrophe removal). Both slices grow in lockstep;
// |Indexes| == |SourceIndexes| always holds, and both are monotonically
// non-decreasing in tokenization order.
type WordInfo struct {
	Indexes       []int
	SourceIndexes []int
}

// Occurs is the number of times the word occurred.
func (w WordInfo) Occurs() int {
	return len(w.Indexes)
}

func (w *WordInfo) record(wordIndex, sourceIndex int) {
	w.Indexes = append(w.Indexes, wordIndex)
	w.SourceIndexes = append(w.SourceIndexes, sourceIndex)
}

// TextInfo is the result of tokenizing one text: a map from normalized word
// to its WordInfo, plus the list of words that were ignored along the way
// (deduplicated, in first-seen order).
type TextInfo struct {
	Words   map[string]WordInfo
	Ignored []string

	ignoredSeen map[string]struct{}
	nextIndex   int
}

// NewTextInfo returns an empty TextInfo ready to be filled in by a
// tokenization pass.
func NewTextInfo() *TextInfo {
	return &TextInfo{
		Words:       make(map[string]WordInfo),
		ignoredSeen: make(map[string]struct{}),
	}
}

func (t *TextInfo) addIgnored(word string) {
	if _, ok := t.ignoredSeen[word]; ok {
		return
	}
	t.ignoredSeen[word] = struct{}{}
	t.Ignored = append(t.Ignored, word)
}

// addKept records an occurrence of word at the current word index and
// advances the index. Returns the word index consumed.
func (t *TextInfo) addKept(word string, sourceIndex int) int {
	wi := t.Words[word]
	idx := t.nextIndex
	wi.record(idx, sourceIndex)
	t.Words[word] = wi
	t.nextIndex++
	return idx
}

// WordCount is the total number of kept occurrences across all words
// (sum of WordInfo.Occurs()).
func (t *TextInfo) WordCount() int {
	n := 0
	for _, wi := range t.Words {
		n += wi.Occurs()
	}
	return n
}

// UniqueWordCount is the number of distinct kept words.
func (t *TextInfo) UniqueWordCount() int {
	return len(t.Words)
}

// ToArray returns the unique kept words, in no particular order.
func (t *TextInfo) ToArray() []string {
	result := make([]string, 0, len(t.Words))
	for w := range t.Words {
		result = append(result, w)
	}
	return result
}

// ToSequence reconstructs the word-position array: a dense slice, indexed
// by kept-word position, of the word occurring there. Positions that were
// skipped by filtering (stemming rejection, blacklist, min/max length) are
// simply absent from any WordInfo and so never appear as a gap-filler here
// -- the slice length is exactly t.nextIndex, one entry per kept word.
func (t *TextInfo) ToSequence() []string {
	seq := make([]string, t.nextIndex)
	for word, wi := range t.Words {
		for _, idx := range wi.Indexes {
			seq[idx] = word
		}
	}
	return seq
}

// Has reports whether word occurs at least once.
func (t *TextInfo) Has(word string) bool {
	_, ok := t.Words[word]
	return ok
}
