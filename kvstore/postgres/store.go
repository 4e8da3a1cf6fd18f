package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sagarc03/kvtodo"
)

func (s *Store) table() string {
	return pgx.Identifier{s.tableName}.Sanitize()
}

func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, s.table())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	if keys == nil {
		keys = []string{}
	}

	return keys, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table())

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value
	`, s.table())

	if value == nil {
		value = []byte{}
	}

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table())

	tag, err := s.pool.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete: %w", kvtodo.ErrNotFound)
	}

	return nil
}
