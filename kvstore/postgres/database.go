// Package postgres implements kvtodo.KeyValueStore on top of PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/kvtodo"
)

// Store provides PostgreSQL key-value operations for a single namespace.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// Open creates a connection pool for dsn. The namespace is used as the
// table name and must pass kvtodo.ValidateNamespace.
func Open(ctx context.Context, dsn, namespace string) (*Store, error) {
	if err := kvtodo.ValidateNamespace(namespace); err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return NewStore(pool, namespace), nil
}

// NewStore wraps an existing pool. The caller keeps ownership of the pool
// only until Close is called on the returned store.
func NewStore(pool *pgxpool.Pool, namespace string) *Store {
	return &Store{
		pool:      pool,
		tableName: namespace,
	}
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate creates the namespace table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, s.pool, s.tableName); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the namespace table matches the expected structure.
func (s *Store) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, s.pool, s.tableName)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
