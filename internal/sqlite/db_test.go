package sqlite

import (
	"context"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "salon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salon.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = NewProductRepo(db).Create(ctx, testProduct)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	products, err := NewProductRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NoError(t, db.HealthCheck(ctx))
}
