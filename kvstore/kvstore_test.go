package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	natssrv "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/kvtodo"
	"github.com/sagarc03/kvtodo/kvstore"
)

func openTestStore(t *testing.T, cfg kvstore.Config) kvstore.Store {
	t.Helper()

	store, err := kvstore.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func roundTrip(t *testing.T, store kvtodo.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("buy milk")))

	value, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("buy milk"), value)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys)
}

func TestOpen_Memory(t *testing.T) {
	t.Parallel()
	store := openTestStore(t, kvstore.Config{Type: kvstore.TypeMemory})
	roundTrip(t, store)
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()
	store := openTestStore(t, kvstore.Config{
		Type:      kvstore.TypeSQLite,
		DSN:       filepath.Join(t.TempDir(), "kvtodo.db"),
		Namespace: "todos",
	})
	roundTrip(t, store)
}

func TestOpen_SQLiteDefaultNamespace(t *testing.T) {
	t.Parallel()
	store := openTestStore(t, kvstore.Config{
		Type: kvstore.TypeSQLite,
		DSN:  ":memory:",
	})
	roundTrip(t, store)
}

func TestOpen_Filesystem(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	store := openTestStore(t, kvstore.Config{
		Type:      kvstore.TypeFilesystem,
		DSN:       dir,
		Namespace: "todos",
	})
	roundTrip(t, store)

	_, err := os.Stat(filepath.Join(dir, "todos", "a"))
	assert.NoError(t, err)
}

func TestOpen_NATS(t *testing.T) {
	t.Parallel()

	s, err := natssrv.NewServer(&natssrv.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	})
	require.NoError(t, err)
	go s.Start()
	require.True(t, s.ReadyForConnections(5*time.Second), "nats server not ready")
	t.Cleanup(s.Shutdown)

	store := openTestStore(t, kvstore.Config{
		Type:      kvstore.TypeNATS,
		DSN:       s.ClientURL(),
		Namespace: "todos",
	})
	roundTrip(t, store)
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  kvstore.Config
	}{
		{"unsupported type", kvstore.Config{Type: "redis", Namespace: "todos"}},
		{"empty type", kvstore.Config{Namespace: "todos"}},
		{"invalid namespace", kvstore.Config{Type: kvstore.TypeMemory, Namespace: "Todos-1"}},
		{"unreachable postgres", kvstore.Config{Type: kvstore.TypePostgres, DSN: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", Namespace: "todos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := kvstore.Open(context.Background(), tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, store)
		})
	}
}
