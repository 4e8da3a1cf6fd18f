// Package natskv implements kvtodo.KeyValueStore on a NATS JetStream
// key-value bucket. The namespace becomes the bucket name.
package natskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/sagarc03/kvtodo"
)

// Store provides key-value operations on a single JetStream bucket.
type Store struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// Open connects to the NATS server at url and binds to bucket, creating it
// when it does not exist yet.
func Open(ctx context.Context, url, bucket string) (*Store, error) {
	if err := kvtodo.ValidateNamespace(bucket); err != nil {
		return nil, fmt.Errorf("open nats kv: %w", err)
	}

	nc, err := nats.Connect(url, nats.Name("kvtodo"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "kvtodo items",
		History:     1,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("bind bucket %s: %w", bucket, err)
	}

	return &Store{nc: nc, kv: kv}, nil
}

// Ping checks the connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.nc.IsConnected() {
		return fmt.Errorf("ping: nats status %s", s.nc.Status())
	}
	if _, err := s.kv.Status(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (s *Store) Close() error {
	s.nc.Close()
	return nil
}

func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	lister, err := s.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer func() { _ = lister.Stop() }()

	keys := []string{}
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	return keys, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, mapError(err))
	}

	value := entry.Value()
	if value == nil {
		value = []byte{}
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	if _, err := s.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, mapError(err))
	}

	return nil
}

// Delete removes key. A bucket delete on an absent key would only write a
// tombstone, so existence is checked first and the delete is pinned to
// the revision that was read.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, mapError(err))
	}

	return s.deleteRevision(ctx, key, entry.Revision())
}

// deleteRevision deletes key only while it is still at rev. A write that
// landed after rev was read wins: the delete is ordered before it and
// reports success.
func (s *Store) deleteRevision(ctx context.Context, key string, rev uint64) error {
	err := s.kv.Delete(ctx, key, jetstream.LastRevision(rev))
	if err == nil || isWrongLastSequence(err) {
		return nil
	}
	return fmt.Errorf("delete %s: %w", key, mapError(err))
}

func isWrongLastSequence(err error) bool {
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jetstream.ErrKeyNotFound):
		return kvtodo.ErrNotFound
	case errors.Is(err, jetstream.ErrInvalidKey):
		return fmt.Errorf("%w: %w", kvtodo.ErrInvalidInput, err)
	default:
		return err
	}
}
