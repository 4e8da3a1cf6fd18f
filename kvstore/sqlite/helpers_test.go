package sqlite_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/sagarc03/kvtodo/kvstore/sqlite"
	"github.com/stretchr/testify/require"
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	require.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

// setupTestStore creates a migrated store with a unique table name in a temp database file.
func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "kvtodo.db")

	store, err := sqlite.Open(ctx, dsn, "todos_"+getRandomString(t))
	require.NoError(t, err, "failed to open")

	require.NoError(t, store.Migrate(ctx), "failed to migrate")

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
