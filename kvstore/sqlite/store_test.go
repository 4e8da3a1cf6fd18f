package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sagarc03/kvtodo"
	"github.com/sagarc03/kvtodo/kvstore/kvstoretest"
	"github.com/sagarc03/kvtodo/kvstore/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestStore_Contract(t *testing.T) {
	kvstoretest.Run(t, func(t *testing.T) kvtodo.KeyValueStore {
		return setupTestStore(t)
	})
}

func TestStore_InMemoryDSN(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.Open(ctx, ":memory:", "todos")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Set(ctx, "a", []byte("1")))

	value, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)
}

func TestOpen_InvalidNamespace(t *testing.T) {
	_, err := sqlite.Open(context.Background(), ":memory:", "Bad-Name")
	assert.Error(t, err)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Migrate(ctx))

	value, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)
}

func TestStore_Validate(t *testing.T) {
	t.Run("migrated table is valid", func(t *testing.T) {
		store := setupTestStore(t)
		assert.NoError(t, store.Validate(context.Background()))
	})

	t.Run("missing table", func(t *testing.T) {
		ctx := context.Background()
		store, err := sqlite.Open(ctx, ":memory:", "never_migrated")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		err = store.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("wrong columns", func(t *testing.T) {
		ctx := context.Background()
		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		db.SetMaxOpenConns(1)
		defer func() { _ = db.Close() }()

		_, err = db.ExecContext(ctx, `CREATE TABLE broken (key INTEGER PRIMARY KEY, data TEXT)`)
		require.NoError(t, err)

		err = sqlite.ValidateSchema(ctx, db, "broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing columns: value")
		assert.Contains(t, err.Error(), "key: expected text, got integer")
	})

	t.Run("invalid table name", func(t *testing.T) {
		ctx := context.Background()
		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		err = sqlite.ValidateSchema(ctx, db, "bad; DROP")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid table name")
	})
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	require.NoError(t, sqlite.Migrate(ctx, db, "todos"))
	require.NoError(t, sqlite.ValidateSchema(ctx, db, "todos"))
	require.NoError(t, sqlite.DropTables(ctx, db, "todos"))
	assert.Error(t, sqlite.ValidateSchema(ctx, db, "todos"))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	dsn := t.TempDir() + "/shared.db"

	a, err := sqlite.Open(ctx, dsn, "list_a")
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	b, err := sqlite.Open(ctx, dsn, "list_b")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	require.NoError(t, a.Migrate(ctx))
	require.NoError(t, b.Migrate(ctx))

	require.NoError(t, a.Set(ctx, "k", []byte("from a")))

	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, kvtodo.ErrNotFound)
}
