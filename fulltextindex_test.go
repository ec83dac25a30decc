package fulltextindex_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/fulltextindex"
	"github.com/vippsas/fulltextindex/internal/fttest"
	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/tokenize"
)

func sortedPaths(rs substrate.ResultSet) []string {
	paths := rs.Paths()
	sort.Strings(paths)
	return paths
}

func TestQuery_EndToEndScenarios(t *testing.T) {
	idx, _ := fttest.NewMemoryIndex(t, fttest.SampleDataset(), false)
	ctx := context.Background()

	cases := []struct {
		name  string
		op    fulltextindex.Operator
		query string
		want  []string
	}{
		{"bare word", fulltextindex.OpContains, "brown", []string{"R1", "R2"}},
		{"two bare words AND", fulltextindex.OpContains, "brown fox", []string{"R1"}},
		{"phrase in order", fulltextindex.OpContains, `"brown fox"`, []string{"R1"}},
		{"phrase reversed order", fulltextindex.OpContains, `"fox brown"`, []string{}},
		{"OR across branches", fulltextindex.OpContains, "quick OR turtles", []string{"R1", "R2", "R3"}},
		{"negation", fulltextindex.OpNotContains, "brown", []string{"R3"}},
		{"wildcard prefix", fulltextindex.OpContains, "br*", []string{"R1", "R2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := idx.Query(ctx, tc.op, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sortedPaths(result))
		})
	}
}

func TestQuery_WildcardBelowMinimumLengthIsPrunedWithHint(t *testing.T) {
	idx, _ := fttest.NewMemoryIndex(t, fttest.SampleDataset(), false)

	result, err := idx.Query(context.Background(), fulltextindex.OpContains, "a*")
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	var gotHint bool
	for _, h := range result.Hints {
		if h.Type == substrate.HintIgnoredWord && h.Word == "a*" {
			gotHint = true
		}
	}
	assert.True(t, gotHint, "expected an ignoredWord hint for a*, got %+v", result.Hints)
}

func TestQuery_StoplistCollapsesPhrase(t *testing.T) {
	idx, _ := fttest.NewMemoryIndex(t, fttest.SampleDataset(), true)

	result, err := idx.Query(context.Background(), fulltextindex.OpContains, `"the quick"`)
	require.NoError(t, err)

	assert.Equal(t, []string{"R1"}, sortedPaths(result))
}

func TestQuery_UnsupportedOperator(t *testing.T) {
	idx, _ := fttest.NewMemoryIndex(t, fttest.SampleDataset(), false)

	_, err := idx.Query(context.Background(), fulltextindex.Operator("fulltext:startswith"), "brown")
	require.Error(t, err)
	var unsupported fulltextindex.UnsupportedOperatorError
	require.ErrorAs(t, err, &unsupported)
}

func TestNew_RejectsReservedKey(t *testing.T) {
	_, err := fulltextindex.New(fulltextindex.Config{Key: fulltextindex.ReservedKey}, nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, fulltextindex.InvalidKeyError{})
}

func TestHandleRecordUpdate_RetractsWordsNoLongerPresent(t *testing.T) {
	idx, _ := fttest.NewMemoryIndex(t, fttest.SampleDataset(), false)
	ctx := context.Background()

	before, err := idx.Query(ctx, fulltextindex.OpContains, "fox")
	require.NoError(t, err)
	assert.Equal(t, []string{"R1"}, sortedPaths(before))
	pointer := before.Entries[0].Pointer

	var prev *tokenize.TextInfo
	prev, err = idx.HandleRecordUpdate(ctx, "R1", pointer, fulltextindex.Record{"text": "The quick brown fox"}, nil)
	require.NoError(t, err)

	// Re-running HandleRecordUpdate for R1 with different text should
	// retract "fox" and post "cat".
	_, err = idx.HandleRecordUpdate(ctx, "R1", pointer, fulltextindex.Record{"text": "the quick brown cat"}, prev)
	require.NoError(t, err)

	after, err := idx.Query(ctx, fulltextindex.OpContains, "fox")
	require.NoError(t, err)
	assert.Empty(t, after.Entries)

	afterCat, err := idx.Query(ctx, fulltextindex.OpContains, "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"R1"}, sortedPaths(afterCat))
}
