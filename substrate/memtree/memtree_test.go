package memtree

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/fulltextindex/substrate"
)

func mustPointer(t *testing.T) substrate.RecordPointer {
	t.Helper()
	p, err := uuid.NewV4()
	require.NoError(t, err)
	return p
}

func TestHandleRecordUpdate_PostAndRetract(t *testing.T) {
	tree := New()
	ctx := context.Background()
	p := mustPointer(t)

	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p, "R1", map[string]string{"_occurs_": "2"}))

	n, err := tree.Count(ctx, substrate.OpEqual, "brown")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p, "R1", nil))
	n, err = tree.Count(ctx, substrate.OpEqual, "brown")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQuery_FilterRestrictsToAllowedPaths(t *testing.T) {
	tree := New()
	ctx := context.Background()

	p1, p2 := mustPointer(t), mustPointer(t)
	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p1, "R1", map[string]string{"_occurs_": "1"}))
	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p2, "R2", map[string]string{"_occurs_": "0"}))

	unfiltered, err := tree.Query(ctx, substrate.OpEqual, "brown", nil)
	require.NoError(t, err)
	assert.Len(t, unfiltered.Entries, 2)

	filter := substrate.ResultSet{Entries: []substrate.Entry{{Path: "R1"}}}
	filtered, err := tree.Query(ctx, substrate.OpEqual, "brown", &filter)
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, "R1", filtered.Entries[0].Path)
}

func TestQuery_Wildcard(t *testing.T) {
	tree := New()
	ctx := context.Background()
	p := mustPointer(t)
	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p, "R1", map[string]string{"_occurs_": "1"}))

	result, err := tree.Query(ctx, substrate.OpLike, "br*n", nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "R1", result.Entries[0].Path)
}

func TestQueryBlacklist_ExcludesMatchingPostings(t *testing.T) {
	tree := New()
	ctx := context.Background()
	p1, p2 := mustPointer(t), mustPointer(t)
	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p1, "R1", map[string]string{"_occurs_": "1"}))
	require.NoError(t, tree.HandleRecordUpdate(ctx, "green", p2, "R2", map[string]string{"_occurs_": "0"}))

	scan := substrate.BlacklistScan{Checks: []substrate.BlacklistCheck{
		func(word string) bool { return word == "brown" },
	}}
	result, err := tree.QueryBlacklist(ctx, scan)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "R2", result.Entries[0].Path)
}

func TestBuild_ReplacesExistingPostings(t *testing.T) {
	tree := New()
	ctx := context.Background()
	p := mustPointer(t)
	require.NoError(t, tree.HandleRecordUpdate(ctx, "stale", p, "R1", map[string]string{"_occurs_": "0"}))

	words, err := tree.Build(ctx, []substrate.RawRecord{{Pointer: p, Path: "R1", Value: "fresh"}},
		func(add substrate.AddFunc, rec substrate.RawRecord) error {
			return add(rec.Value, rec.Pointer, rec.Path, map[string]string{"_occurs_": "0"})
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, words)

	n, err := tree.Count(ctx, substrate.OpEqual, "stale")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = tree.Count(ctx, substrate.OpEqual, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCache_ReadWrite(t *testing.T) {
	tree := New()
	_, ok := tree.Cache(substrate.OpEqual, "brown", nil)
	assert.False(t, ok)

	stored := substrate.ResultSet{FilterKey: "=={brown}"}
	got, ok := tree.Cache(substrate.OpEqual, "brown", &stored)
	assert.True(t, ok)
	assert.Equal(t, stored, got)

	got, ok = tree.Cache(substrate.OpEqual, "brown", nil)
	assert.True(t, ok)
	assert.Equal(t, stored, got)
}
