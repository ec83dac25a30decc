package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gofrs/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/fulltextindex/internal/fttest"
	"github.com/vippsas/fulltextindex/substrate"
	"github.com/vippsas/fulltextindex/substrate/sqlstore"
)

// TestTree_Postgres exercises the Tree against a live Postgres instance,
// skipped unless FULLTEXTINDEX_POSTGRES_DSN is set -- mirroring the
// teacher's RunIfPostgres-gated fixture idiom so the core suite never
// requires a live database.
func TestTree_Postgres(t *testing.T) {
	dsn := fttest.RunIfPostgres(t)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	tree := sqlstore.New(db, "fulltextindex_test_postings")
	ctx := context.Background()
	require.NoError(t, tree.EnsureSchema(ctx))

	p, err := uuid.NewV4()
	require.NoError(t, err)
	require.NoError(t, tree.HandleRecordUpdate(ctx, "brown", p, "R1", map[string]string{"_occurs_": "2"}))

	n, err := tree.Count(ctx, substrate.OpEqual, "brown")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	result, err := tree.Query(ctx, substrate.OpEqual, "brown", nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.Equal(t, "R1", result.Entries[0].Path)
}
