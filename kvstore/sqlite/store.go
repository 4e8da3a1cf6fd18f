package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sagarc03/kvtodo"
)

func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, quoteIdentifier(s.tableName))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			return nil, fmt.Errorf("list keys: scan: %w", scanErr)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys: rows: %w", err)
	}

	return keys, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, quoteIdentifier(s.tableName))

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kvtodo.ErrNotFound
		}
		return nil, fmt.Errorf("get: %w", err)
	}

	if value == nil {
		value = []byte{}
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, quoteIdentifier(s.tableName))

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, quoteIdentifier(s.tableName))

	result, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("delete: %w", kvtodo.ErrNotFound)
	}

	return nil
}
