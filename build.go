package fulltextindex

import (
	"context"

	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/tokenize"
)

// RawRecord is one record supplied to a full rebuild, identified by its
// substrate pointer, path, and the raw value of the indexed field --
// Build's caller is responsible for sourcing these from the surrounding
// database (out of scope for this package, spec.md §1).
type RawRecord struct {
	Pointer substrate.RecordPointer
	Path    string
	Value   string
}

// Build discards the index's existing postings and replays it from scratch
// over records, supplementing spec.md §6.1's `build()` callback: each
// record's text is tokenized under the index's own configuration (locale
// lookup included, via localeOf), and every kept word is posted with its
// encoded `_occurs_` metadata. Build returns the full list of distinct
// words that ended up posted, exactly as substrate.Tree.Build does.
//
// Unlike HandleRecordUpdate, Build never diffs against prior state -- a
// rebuild is the escape hatch for when incremental maintenance can no
// longer be trusted (tokenizer configuration changed, drift is suspected),
// so it always re-derives every posting from the raw text.
func (idx *Index) Build(ctx context.Context, records []RawRecord, localeOf func(pointer substrate.RecordPointer) string) ([]string, error) {
	rawRecords := make([]substrate.RawRecord, len(records))
	for i, r := range records {
		rawRecords[i] = substrate.RawRecord{Pointer: r.Pointer, Path: r.Path, Value: r.Value}
	}

	cb := func(add substrate.AddFunc, rec substrate.RawRecord) error {
		loc := idx.cfg.DefaultLocale
		if localeOf != nil {
			if l := localeOf(rec.Pointer); l != "" {
				loc = l
			}
		}

		info, err := tokenize.Tokenize(rec.Value, idx.tokenizeOptions(loc))
		if err != nil {
			return err
		}

		for word, wordInfo := range info.Words {
			occurs := tokenize.EncodeOccurs(idx.log, word, rec.Path, wordInfo.Indexes)
			if err := add(word, rec.Pointer, rec.Path, map[string]string{"_occurs_": occurs}); err != nil {
				return err
			}
		}
		return nil
	}

	words, err := idx.tree.Build(ctx, rawRecords, cb)
	if err != nil {
		return nil, SubstrateError{Err: err}
	}
	return words, nil
}
