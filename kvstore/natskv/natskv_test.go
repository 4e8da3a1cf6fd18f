package natskv_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	natssrv "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/kvtodo"
	"github.com/sagarc03/kvtodo/kvstore/kvstoretest"
	"github.com/sagarc03/kvtodo/kvstore/natskv"
)

func runTestNATSJetStreamServer(t *testing.T) *natssrv.Server {
	t.Helper()

	opts := &natssrv.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}
	s, err := natssrv.NewServer(opts)
	require.NoError(t, err, "new nats server")

	go s.Start()
	if !s.ReadyForConnections(5 * time.Second) {
		s.Shutdown()
		t.Fatalf("nats server not ready")
	}
	t.Cleanup(s.Shutdown)
	return s
}

func TestStore_Contract(t *testing.T) {
	s := runTestNATSJetStreamServer(t)

	var n int
	kvstoretest.Run(t, func(t *testing.T) kvtodo.KeyValueStore {
		n++
		store, err := natskv.Open(context.Background(), s.ClientURL(), fmt.Sprintf("todos_%d", n))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestOpen(t *testing.T) {
	s := runTestNATSJetStreamServer(t)
	ctx := context.Background()

	t.Run("rejects invalid bucket", func(t *testing.T) {
		_, err := natskv.Open(ctx, s.ClientURL(), "bad.bucket")
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := natskv.Open(ctx, "nats://127.0.0.1:1", "todos")
		assert.Error(t, err)
	})

	t.Run("reopen sees existing data", func(t *testing.T) {
		first, err := natskv.Open(ctx, s.ClientURL(), "reopen")
		require.NoError(t, err)
		require.NoError(t, first.Set(ctx, "a", []byte("buy milk")))
		require.NoError(t, first.Close())

		second, err := natskv.Open(ctx, s.ClientURL(), "reopen")
		require.NoError(t, err)
		defer func() { _ = second.Close() }()

		value, err := second.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("buy milk"), value)
	})

	t.Run("ping", func(t *testing.T) {
		store, err := natskv.Open(ctx, s.ClientURL(), "ping")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		assert.NoError(t, store.Ping(ctx))
	})
}

func TestStore_InvalidKey(t *testing.T) {
	s := runTestNATSJetStreamServer(t)
	ctx := context.Background()

	store, err := natskv.Open(ctx, s.ClientURL(), "invalid_key")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.Set(ctx, "trailing.", []byte("x"))
	assert.ErrorIs(t, err, kvtodo.ErrInvalidInput)
}

func TestStore_Delete_LosesRaceToNewerWrite(t *testing.T) {
	s := runTestNATSJetStreamServer(t)
	ctx := context.Background()

	store, err := natskv.Open(ctx, s.ClientURL(), "delete_race")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set(ctx, "abc", []byte("buy milk")))
	stale, err := store.Revision(ctx, "abc")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "abc", []byte("buy oat milk")))

	assert.NoError(t, store.DeleteRevision(ctx, "abc", stale))

	value, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("buy oat milk"), value)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, kvtodo.ErrNotFound)
}
