// Package fttest provides fixtures shared by this module's test suite:
// the three-record sample dataset used throughout, a ready-to-query
// memtree-backed Index, and env-var-gated skip helpers for the
// substrate/sqlstore integration tests -- adapted from the teacher's
// sqltest.Fixture precedent (env-driven DSN, skip rather than fail when
// no live database is configured).
package fttest

import (
	"context"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/fulltextindex"
	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/substrate/memtree"
)

// SampleRecord is one entry of the canonical three-record dataset.
type SampleRecord struct {
	Path string
	Text string
}

// SampleDataset is the dataset spec.md's end-to-end scenarios are defined
// over: R1 "The quick brown fox", R2 "Quick brown dogs jump", R3 "slow
// green turtles".
func SampleDataset() []SampleRecord {
	return []SampleRecord{
		{Path: "R1", Text: "The quick brown fox"},
		{Path: "R2", Text: "Quick brown dogs jump"},
		{Path: "R3", Text: "slow green turtles"},
	}
}

// NewMemoryIndex builds an Index over substrate/memtree, configured with
// the given UseStoplist setting, and indexes every record in dataset via
// HandleRecordUpdate (not Build), exercising the incremental maintenance
// path by default.
func NewMemoryIndex(t *testing.T, dataset []SampleRecord, useStoplist bool) (*fulltextindex.Index, substrate.Tree) {
	t.Helper()

	tree := memtree.New()
	idx, err := fulltextindex.New(fulltextindex.Config{
		Key:           "text",
		DefaultLocale: "en",
		UseStoplist:   useStoplist,
	}, tree, nil)
	require.NoError(t, err)

	for _, rec := range dataset {
		pointer, err := uuid.NewV4()
		require.NoError(t, err)
		_, err = idx.HandleRecordUpdate(context.Background(), rec.Path, pointer, fulltextindex.Record{"text": rec.Text}, nil)
		require.NoError(t, err)
	}

	return idx, tree
}

// RunIfPostgres skips the calling test unless FULLTEXTINDEX_POSTGRES_DSN is
// set, returning the DSN.
func RunIfPostgres(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("FULLTEXTINDEX_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set FULLTEXTINDEX_POSTGRES_DSN to run substrate/sqlstore Postgres integration tests")
	}
	return dsn
}

// RunIfMssql skips the calling test unless FULLTEXTINDEX_MSSQL_DSN is set,
// returning the DSN.
func RunIfMssql(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("FULLTEXTINDEX_MSSQL_DSN")
	if dsn == "" {
		t.Skip("set FULLTEXTINDEX_MSSQL_DSN to run substrate/sqlstore SQL Server integration tests")
	}
	return dsn
}
