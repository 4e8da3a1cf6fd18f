// Package filesystem provides a directory-backed KeyValueStore.
// Each key is one file under the namespace directory and writes are
// atomic through a temp file and rename.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sagarc03/kvtodo"
)

// Store provides file system key-value operations.
type Store struct {
	root *os.Root
}

// Open creates dir/namespace if needed and returns a store rooted there.
func Open(dir, namespace string) (*Store, error) {
	if err := kvtodo.ValidateNamespace(namespace); err != nil {
		return nil, fmt.Errorf("open filesystem store: %w", err)
	}

	path := filepath.Join(dir, namespace)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("open filesystem store: %w", err)
	}

	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, fmt.Errorf("open filesystem store: %w", err)
	}

	return NewFileStorage(root), nil
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Ping checks the root directory is still readable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.root.Stat("."); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the root directory handle.
func (s *Store) Close() error {
	return s.root.Close()
}

// ListKeys returns the names of all regular files in the root. Dot-files
// left behind by interrupted writes and names that are not valid keys are
// skipped.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	keys := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !kvtodo.IsValidKey(entry.Name()) {
			continue
		}
		keys = append(keys, entry.Name())
	}

	return keys, nil
}

// Get reads the file stored under key. Returns kvtodo.ErrNotFound if the file does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !kvtodo.IsValidKey(key) {
		return nil, fmt.Errorf("get %q: %w", key, kvtodo.ErrInvalidInput)
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kvtodo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "key", key, "err", closeErr)
		}
	}()

	value, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return value, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Set atomically writes value under key using a temp file and rename.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if !kvtodo.IsValidKey(key) {
		return fmt.Errorf("set %q: %w", key, kvtodo.ErrInvalidInput)
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := io.Copy(t, &ctxReader{ctx: ctx, r: bytes.NewReader(value)}); err != nil {
		return fmt.Errorf("could not write value: %w", err)
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	if err := t.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, key); renameErr != nil {
		return fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return nil
}

// Delete removes a file. Returns kvtodo.ErrNotFound if the file does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !kvtodo.IsValidKey(key) {
		return fmt.Errorf("delete %q: %w", key, kvtodo.ErrInvalidInput)
	}

	err := s.root.Remove(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kvtodo.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
