package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the key-value table for tableName if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)
	`, pgx.Identifier{tableName}.Sanitize())

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// DropTables removes the key-value table for tableName.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	sql := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, pgx.Identifier{tableName}.Sanitize())

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("drop kv table: %w", err)
	}
	return nil
}
