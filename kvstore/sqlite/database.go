// Package sqlite implements kvtodo.KeyValueStore on top of SQLite.
//
// Each namespace is a table of (key, value) rows. The driver is
// modernc.org/sqlite, so no cgo is required.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/kvtodo"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store provides SQLite key-value operations for a single namespace.
type Store struct {
	db        *sql.DB
	tableName string
}

// Open opens the SQLite database at dsn. The namespace is used as the
// table name and must pass kvtodo.ValidateNamespace.
//
// Open does not create the table; call Migrate for that.
func Open(ctx context.Context, dsn, namespace string) (*Store, error) {
	if err := kvtodo.ValidateNamespace(namespace); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY and
	// keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{
		db:        db,
		tableName: namespace,
	}, nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the namespace table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, s.db, s.tableName); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the namespace table matches the expected structure.
func (s *Store) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, s.db, s.tableName)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
