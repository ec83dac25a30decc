// Package memtree is an in-memory reference implementation of
// substrate.Tree: a sorted-map stand-in for the B+tree/record index
// substrate, used by the test suite and by the CLI's memory backend. It
// deliberately has no third-party storage dependency (see DESIGN.md).
package memtree

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/vippsas/fulltextindex/substrate"
)

type posting struct {
	path     string
	metadata map[string]string
}

type wordPostings struct {
	order     []substrate.RecordPointer
	byPointer map[substrate.RecordPointer]posting
}

// Tree is a concurrency-safe, in-memory substrate.Tree.
type Tree struct {
	mu       sync.RWMutex
	postings map[string]*wordPostings
	universe map[substrate.RecordPointer]string // every record ever seen by HandleRecordUpdate
	cache    map[cacheKey]substrate.ResultSet
}

type cacheKey struct {
	op    substrate.Op
	value string
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{
		postings: make(map[string]*wordPostings),
		universe: make(map[substrate.RecordPointer]string),
		cache:    make(map[cacheKey]substrate.ResultSet),
	}
}

var _ substrate.Tree = (*Tree)(nil)

func (t *Tree) HandleRecordUpdate(ctx context.Context, word string, pointer substrate.RecordPointer, path string, newMetadata map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.universe[pointer] = path
	t.invalidateCacheLocked()

	if newMetadata == nil {
		wp, ok := t.postings[word]
		if !ok {
			return nil
		}
		delete(wp.byPointer, pointer)
		if len(wp.byPointer) == 0 {
			delete(t.postings, word)
		}
		return nil
	}

	wp, ok := t.postings[word]
	if !ok {
		wp = &wordPostings{byPointer: make(map[substrate.RecordPointer]posting)}
		t.postings[word] = wp
	}
	if _, existed := wp.byPointer[pointer]; !existed {
		wp.order = append(wp.order, pointer)
	}
	wp.byPointer[pointer] = posting{path: path, metadata: newMetadata}
	return nil
}

func (t *Tree) Count(ctx context.Context, op substrate.Op, value string) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	paths := make(map[string]struct{})
	for _, word := range t.matchingWordsLocked(op, value) {
		wp := t.postings[word]
		for _, ptr := range wp.order {
			if p, ok := wp.byPointer[ptr]; ok {
				paths[p.path] = struct{}{}
			}
		}
	}
	return len(paths), nil
}

func (t *Tree) Query(ctx context.Context, op substrate.Op, value string, filter *substrate.ResultSet) (substrate.ResultSet, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var allowed map[string]struct{}
	if filter != nil {
		allowed = make(map[string]struct{}, len(filter.Entries))
		for _, e := range filter.Entries {
			allowed[e.Path] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	result := substrate.ResultSet{FilterKey: string(op) + ":" + value}
	for _, word := range t.matchingWordsLocked(op, value) {
		wp := t.postings[word]
		for _, ptr := range wp.order {
			p, ok := wp.byPointer[ptr]
			if !ok {
				continue
			}
			if allowed != nil {
				if _, ok := allowed[p.path]; !ok {
					continue
				}
			}
			if _, ok := seen[p.path]; ok {
				continue
			}
			seen[p.path] = struct{}{}
			result.Entries = append(result.Entries, substrate.Entry{
				Path:     p.path,
				Pointer:  ptr,
				Metadata: p.metadata,
			})
		}
	}
	result.Stats.CandidateCount = len(result.Entries)
	return result, nil
}

func (t *Tree) QueryBlacklist(ctx context.Context, scan substrate.BlacklistScan) (substrate.ResultSet, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	excluded := make(map[substrate.RecordPointer]struct{})
	for word, wp := range t.postings {
		matched := false
		for _, check := range scan.Checks {
			if check(word) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for ptr := range wp.byPointer {
			excluded[ptr] = struct{}{}
		}
	}

	result := substrate.ResultSet{FilterKey: "blacklist"}
	for ptr, path := range t.universe {
		if _, ok := excluded[ptr]; ok {
			continue
		}
		result.Entries = append(result.Entries, substrate.Entry{Path: path, Pointer: ptr})
	}
	sort.Slice(result.Entries, func(i, j int) bool { return result.Entries[i].Path < result.Entries[j].Path })
	result.Stats.CandidateCount = len(result.Entries)
	return result, nil
}

func (t *Tree) Build(ctx context.Context, records []substrate.RawRecord, cb substrate.BuildCallback) ([]string, error) {
	t.mu.Lock()
	t.postings = make(map[string]*wordPostings)
	t.universe = make(map[substrate.RecordPointer]string)
	t.invalidateCacheLocked()
	t.mu.Unlock()

	posted := make(map[string]struct{})
	var order []string

	add := func(word string, pointer substrate.RecordPointer, path string, metadata map[string]string) error {
		if err := t.HandleRecordUpdate(ctx, word, pointer, path, metadata); err != nil {
			return err
		}
		if _, ok := posted[word]; !ok {
			posted[word] = struct{}{}
			order = append(order, word)
		}
		return nil
	}

	for _, rec := range records {
		if err := cb(add, rec); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (t *Tree) Cache(op substrate.Op, value string, store *substrate.ResultSet) (substrate.ResultSet, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := cacheKey{op: op, value: value}
	if store != nil {
		t.cache[key] = *store
		return *store, true
	}
	result, ok := t.cache[key]
	return result, ok
}

func (t *Tree) invalidateCacheLocked() {
	t.cache = make(map[cacheKey]substrate.ResultSet)
}

// matchingWordsLocked returns the sorted set of posted words matching
// op/value. Callers must hold t.mu for reading.
func (t *Tree) matchingWordsLocked(op substrate.Op, value string) []string {
	if op == substrate.OpEqual {
		if _, ok := t.postings[value]; ok {
			return []string{value}
		}
		return nil
	}

	re := wildcardToRegexp(value)
	var matched []string
	for word := range t.postings {
		if re.MatchString(word) {
			matched = append(matched, word)
		}
	}
	sort.Strings(matched)
	return matched
}

// wildcardToRegexp turns a '*'/'?' wildcard pattern into an anchored,
// case-insensitive regexp: '*' -> any run of characters, '?' -> exactly
// one character.
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
