// Package kvstoretest provides a behavioural test suite shared by every
// kvtodo.KeyValueStore implementation.
package kvstoretest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sagarc03/kvtodo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. Each call must return an isolated store.
type Factory func(t *testing.T) kvtodo.KeyValueStore

// Run exercises the KeyValueStore contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("empty store lists no keys", func(t *testing.T) {
		store := newStore(t)

		keys, err := store.ListKeys(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, keys)
		assert.Empty(t, keys)
	})

	t.Run("set then get", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "key-1", []byte("buy milk")))

		value, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("buy milk"), value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "key-1", []byte("first")))
		require.NoError(t, store.Set(ctx, "key-1", []byte("second")))

		value, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), value)

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"key-1"}, keys)
	})

	t.Run("empty value round trips", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "empty", []byte{}))

		value, err := store.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("binary and unicode values round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		values := map[string][]byte{
			"unicode": []byte("café ☕ \"quoted\" \\slash"),
			"binary":  {0x00, 0xff, 0x10, 0x7f},
		}
		for k, v := range values {
			require.NoError(t, store.Set(ctx, k, v))
		}
		for k, v := range values {
			got, err := store.Get(ctx, k)
			require.NoError(t, err)
			assert.Equal(t, v, got, k)
		}
	})

	t.Run("get missing key", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, kvtodo.ErrNotFound)
	})

	t.Run("list returns every key", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		want := []string{"a", "b-2", "c_3", "d=4", "e.5"}
		for _, k := range want {
			require.NoError(t, store.Set(ctx, k, []byte("v-"+k)))
		}

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, keys)
	})

	t.Run("delete removes key", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Set(ctx, "b", []byte("2")))
		require.NoError(t, store.Delete(ctx, "a"))

		_, err := store.Get(ctx, "a")
		assert.ErrorIs(t, err, kvtodo.ErrNotFound)

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, keys)
	})

	t.Run("delete missing key", func(t *testing.T) {
		store := newStore(t)

		err := store.Delete(context.Background(), "missing")
		assert.ErrorIs(t, err, kvtodo.ErrNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Delete(ctx, "a"))
		assert.ErrorIs(t, store.Delete(ctx, "a"), kvtodo.ErrNotFound)
	})

	t.Run("set after delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Delete(ctx, "a"))
		require.NoError(t, store.Set(ctx, "a", []byte("2")))

		value, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), value)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.ListKeys(ctx)
		assert.Error(t, err)
		_, err = store.Get(ctx, "a")
		assert.Error(t, err)
		assert.Error(t, store.Set(ctx, "a", []byte("1")))
		assert.Error(t, store.Delete(ctx, "a"))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- store.Set(ctx, fmt.Sprintf("key-%d", i), []byte(fmt.Sprintf("value-%d", i)))
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Len(t, keys, writers)
	})
}
