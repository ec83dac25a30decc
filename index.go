// Package fulltextindex is a full-text secondary index for a hierarchical
// key-value database: it tokenizes a configured string attribute,
// maintains an inverted word -> record-pointer posting via an external
// substrate.Tree, and answers fulltext:contains / fulltext:!contains
// queries with phrase, OR, wildcard, and negation support.
package fulltextindex

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/tokenize"
)

// ReservedKey is the one key name that cannot be indexed, because node
// keys themselves are not full-text-indexable.
const ReservedKey = "{key}"

// Record is the hierarchical document an index is built over: a flat view
// of its fields, keyed by name. A field value may be a string, a
// []string/[]any (joined with a single space), or absent.
type Record map[string]any

// Config is an index's tokenization configuration, applied uniformly to
// every record it maintains postings for.
type Config struct {
	// Key names the field to index. Must not be ReservedKey.
	Key string

	// TextLocaleKey, if set, names a field carrying a per-record locale
	// override; DefaultLocale is used when absent.
	TextLocaleKey string
	DefaultLocale string

	Prepare  func(text, locale, keepChars string) string
	Stemming func(word, locale string) (stemmed string, ok bool)

	Blacklist   map[string]struct{}
	Whitelist   map[string]struct{}
	UseStoplist bool

	MinLength int
	MaxLength int

	// MinimumWildcardWordLength is the minimum position a '*' may appear
	// at in a query token before the token is pruned. Defaults to
	// query.DefaultMinimumWildcardWordLength (2).
	MinimumWildcardWordLength int

	Transliterate tokenize.Transliterate
}

func (c Config) minimumWildcardWordLength() int {
	if c.MinimumWildcardWordLength <= 0 {
		return 2
	}
	return c.MinimumWildcardWordLength
}

// Index is a full-text secondary index over one field of a record set,
// backed by a substrate.Tree that owns durability and concurrency.
type Index struct {
	cfg  Config
	tree substrate.Tree
	log  logrus.FieldLogger
}

// New constructs an Index. log may be nil, in which case logrus's standard
// logger is used.
func New(cfg Config, tree substrate.Tree, log logrus.FieldLogger) (*Index, error) {
	if cfg.Key == ReservedKey {
		return nil, InvalidKeyError{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Index{cfg: cfg, tree: tree, log: log}, nil
}

// tokenizeOptions returns the Options to use for indexing record text
// (no wildcard characters kept).
func (idx *Index) tokenizeOptions(loc string) tokenize.Options {
	return tokenize.Options{
		Locale:        loc,
		Prepare:       idx.cfg.Prepare,
		Stemming:      idx.cfg.Stemming,
		MinLength:     idx.cfg.MinLength,
		MaxLength:     idx.cfg.MaxLength,
		Blacklist:     idx.cfg.Blacklist,
		Whitelist:     idx.cfg.Whitelist,
		UseStoplist:   idx.cfg.UseStoplist,
		Transliterate: idx.cfg.Transliterate,
	}
}

// queryTokenizeOptions is the same configuration but with '*'/'?' kept
// alive, for tokenizing query text (spec.md §4.F step 1).
func (idx *Index) queryTokenizeOptions(loc string) tokenize.Options {
	opts := idx.tokenizeOptions(loc)
	opts.IncludeChars = "*?"
	return opts
}

func (idx *Index) recordLocale(record Record) string {
	if idx.cfg.TextLocaleKey != "" {
		if v, ok := record[idx.cfg.TextLocaleKey]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return idx.cfg.DefaultLocale
}

// extractText reads the configured field from record, joining array values
// with a single space. A missing field yields "".
func (idx *Index) extractText(record Record) string {
	if record == nil {
		return ""
	}
	v, ok := record[idx.cfg.Key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, " ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// HandleRecordUpdate re-tokenizes record's indexed field and diffs the
// result against previous (the TextInfo produced for this record the last
// time it was indexed, or nil if this is a new record), posting/retracting
// only the words whose membership or `_occurs_` metadata actually changed.
// The per-word substrate mutations are independent of one another, so they
// fan out across an errgroup (spec.md §4.D).
func (idx *Index) HandleRecordUpdate(ctx context.Context, path string, pointer substrate.RecordPointer, record Record, previous *tokenize.TextInfo) (*tokenize.TextInfo, error) {
	text := idx.extractText(record)
	loc := idx.recordLocale(record)

	next, err := tokenize.Tokenize(text, idx.tokenizeOptions(loc))
	if err != nil {
		return nil, err
	}
	if next.UniqueWordCount() == 0 {
		idx.log.WithField("path", path).Warn("record text yields no kept words; nothing is posted for it")
	}

	prevOccurs := make(map[string]string)
	if previous != nil {
		for word, info := range previous.Words {
			prevOccurs[word] = tokenize.EncodeOccurs(idx.log, word, path, info.Indexes)
		}
	}

	type mutation struct {
		word     string
		metadata map[string]string // nil means retract
	}
	var mutations []mutation

	for word, info := range next.Words {
		occurs := tokenize.EncodeOccurs(idx.log, word, path, info.Indexes)
		if prevOccurs[word] != occurs {
			mutations = append(mutations, mutation{word: word, metadata: map[string]string{"_occurs_": occurs}})
		}
	}
	if previous != nil {
		for word := range previous.Words {
			if !next.Has(word) {
				mutations = append(mutations, mutation{word: word, metadata: nil})
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range mutations {
		m := m
		g.Go(func() error {
			if err := idx.tree.HandleRecordUpdate(gctx, m.word, pointer, path, m.metadata); err != nil {
				return SubstrateError{Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return next, nil
}
