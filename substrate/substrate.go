// Package substrate defines the contract a generic B+tree/record index
// substrate must offer for a full-text index to be built on top of it
// (spec.md §6.1). The substrate itself -- durability, B-tree layout,
// concurrency -- is out of scope; only the consuming interface lives here,
// plus (in substrate/memtree and substrate/sqlstore) reference
// implementations used for tests and for running the index standalone.
package substrate

import (
	"context"

	"github.com/gofrs/uuid"
)

// RecordPointer is the opaque identifier for a record in the underlying
// database. Equality and set membership are the only operations the
// full-text index ever performs on it.
type RecordPointer = uuid.UUID

// Op is a comparison operator a Tree's Count/Query understands.
type Op string

const (
	OpEqual Op = "=="
	OpLike  Op = "like"
)

// HintType categorizes a Hint attached to a ResultSet.
type HintType string

const (
	HintIgnoredWord HintType = "ignoredWord"
	HintMissingWord HintType = "missingWord"
)

// Hint documents why a query returned fewer results than a naive reading
// of the query string would suggest. Hints are not errors.
type Hint struct {
	Type HintType
	Word string
}

// Stats is the small bookkeeping block every ResultSet carries, useful for
// logging/debugging query execution without re-running it.
type Stats struct {
	ScannedWords   int
	CandidateCount int
}

// Entry is one matched posting: the record's path, its opaque pointer, and
// whatever metadata the substrate stored alongside it (for this index
// type, always just `_occurs_`).
type Entry struct {
	Path     string
	Pointer  RecordPointer
	Metadata map[string]string
}

// ResultSet is an ordered collection of matches, plus a FilterKey (an
// opaque label naming the substrate query that produced it, such as
// "==:brown" or "blacklist", useful as a debug/log correlation handle) and
// hints explaining omissions. A ResultSet merged from several queries keeps
// the FilterKey of the last query it came from; the OR-union returned for
// fulltext:contains carries an empty FilterKey.
type ResultSet struct {
	Entries   []Entry
	FilterKey string
	Stats     Stats
	Hints     []Hint
}

// Paths returns the entries' paths, preserving order.
func (r ResultSet) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}

// ByPath indexes entries for O(1) membership/metadata lookup.
func (r ResultSet) ByPath() map[string]Entry {
	m := make(map[string]Entry, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Path] = e
	}
	return m
}

// BlacklistCheck reports whether word should cause its postings to be
// excluded from the ultimate record set. The query executor compiles one
// check per negated query word (a literal-equality check, or an anchored
// regexp for wildcard words).
type BlacklistCheck func(word string) bool

// BlacklistScan is the "BlacklistingSearchOperator": the substrate
// enumerates every posting, and for any whose word matches any Checks,
// reports its pointer as excluded. The Tree.QueryBlacklist caller receives
// back the universe of records minus the excluded ones.
type BlacklistScan struct {
	Checks []BlacklistCheck
}

// AddFunc is what a Build callback calls once per word it wants posted.
type AddFunc func(word string, pointer RecordPointer, path string, metadata map[string]string) error

// RawRecord is one record supplied to a full rebuild: its pointer, path,
// and the raw value of its indexed field. Locating every record, its path
// and its raw value is the surrounding database's job (out of scope,
// spec.md §1); the substrate only needs the list handed to it to discard
// old postings and replay cb over the new ones.
type RawRecord struct {
	Pointer RecordPointer
	Path    string
	Value   string
}

// BuildCallback is invoked once per RawRecord during a full rebuild; it is
// expected to tokenize rec.Value and call add for every kept word.
type BuildCallback func(add AddFunc, rec RawRecord) error

// Tree is the substrate contract a full-text index consumes.
type Tree interface {
	// HandleRecordUpdate posts/retracts a single word's presence for a
	// record. newMetadata == nil means remove the posting.
	HandleRecordUpdate(ctx context.Context, word string, pointer RecordPointer, path string, newMetadata map[string]string) error

	// Count reports cardinality for op/value without materializing a
	// ResultSet; used to pick join order.
	Count(ctx context.Context, op Op, value string) (int, error)

	// Query executes op/value, optionally filtered to only entries whose
	// path is present in filter (nil means unfiltered).
	Query(ctx context.Context, op Op, value string, filter *ResultSet) (ResultSet, error)

	// QueryBlacklist runs a BlacklistingSearchOperator scan: every posting
	// is checked against scan.Checks, and matches' records are excluded
	// from the returned universe-minus-excluded ResultSet.
	QueryBlacklist(ctx context.Context, scan BlacklistScan) (ResultSet, error)

	// Build discards existing postings and invokes cb once per record in
	// records, returning every word that ended up posted.
	Build(ctx context.Context, records []RawRecord, cb BuildCallback) ([]string, error)

	// Cache reads (store == nil) or writes (store != nil) a cached
	// ResultSet for (op, value). Read returns ok=false on a miss.
	Cache(op Op, value string, store *ResultSet) (result ResultSet, ok bool)
}
