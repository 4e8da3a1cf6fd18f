package kvtodo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// KeyValueStore defines the interface for the store holding todo items.
// Implementations map a string key to an opaque byte value and must be
// safe for concurrent use. There are no transactions and no ordering
// guarantees across keys.
//
// All methods accept a context for cancellation and timeout control.
type KeyValueStore interface {
	// ListKeys returns every key currently in the store.
	//
	// Returns:
	//   - []string: All keys, in a store-defined order. Empty (not nil) when the store is empty.
	//   - error: Any storage error
	ListKeys(ctx context.Context) ([]string, error)

	// Get retrieves the value stored under key.
	//
	// Returns:
	//   - []byte: The stored value
	//   - error: ErrNotFound if the key doesn't exist, or other storage errors
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key from the store.
	//
	// Returns:
	//   - error: ErrNotFound if the key doesn't exist, or other storage errors
	Delete(ctx context.Context, key string) error
}

type TodoService struct {
	store KeyValueStore
	newID func() string
}

// ServiceConfig holds configuration options for TodoService.
type ServiceConfig struct {
	// NewID generates identifiers for created items (default: uuid.NewString)
	NewID func() string
}

func NewTodoService(store KeyValueStore, cfg ServiceConfig) (*TodoService, error) {
	if store == nil {
		return nil, errors.New("new todo service: store cannot be nil")
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &TodoService{
		store: store,
		newID: newID,
	}, nil
}

// List returns every todo item in the store.
//
// It reads all keys and then each value. The result is all-or-nothing: if
// any single value cannot be read the whole call fails. A key that was
// listed but is gone by the time it is read (a concurrent delete), or any
// other read failure, is reported as ErrInternal.
//
// Items come back in the order the store yields keys.
func (s *TodoService) List(ctx context.Context) ([]TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	items := make([]TodoItem, 0, len(keys))
	for _, key := range keys {
		value, getErr := s.store.Get(ctx, key)
		if getErr != nil {
			if errors.Is(getErr, ErrNotFound) {
				return nil, fmt.Errorf("list todos: key %s vanished during list: %w", key, ErrInternal)
			}
			if errors.Is(getErr, ErrInvalidInput) {
				return nil, fmt.Errorf("list todos: read %s: %w: %v", key, ErrInternal, getErr)
			}
			return nil, fmt.Errorf("list todos: read %s: %w: %w", key, ErrInternal, getErr)
		}
		items = append(items, TodoItem{ID: key, Title: string(value)})
	}

	return items, nil
}

// Create stores a new item under a freshly generated id.
// There is no collision check; generated ids are random UUIDs.
func (s *TodoService) Create(ctx context.Context, title string) (TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return TodoItem{}, fmt.Errorf("create todo: %w", err)
	}

	id := s.newID()
	if !IsValidKey(id) {
		return TodoItem{}, fmt.Errorf("create todo: generated id %q is not a valid key: %w", id, ErrInternal)
	}

	if err := s.store.Set(ctx, id, []byte(title)); err != nil {
		return TodoItem{}, fmt.Errorf("create todo %s: %w", id, err)
	}

	slog.Debug("todo created", "id", id, "title", title)

	return TodoItem{ID: id, Title: title}, nil
}

// Update writes title under id unconditionally. It behaves the same
// whether or not id already exists (upsert). Ids a backend cannot hold
// are rejected by that backend with ErrInvalidInput.
func (s *TodoService) Update(ctx context.Context, id, title string) (TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return TodoItem{}, fmt.Errorf("update todo: %w", err)
	}

	if id == "" {
		return TodoItem{}, fmt.Errorf("update todo: empty id: %w", ErrInvalidInput)
	}

	if err := s.store.Set(ctx, id, []byte(title)); err != nil {
		return TodoItem{}, fmt.Errorf("update todo %s: %w", id, err)
	}

	return TodoItem{ID: id, Title: title}, nil
}

// Delete removes the item stored under id.
// Deleting an id that does not exist succeeds, so repeated deletes are idempotent.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	if id == "" {
		return fmt.Errorf("delete todo: empty id: %w", ErrInvalidInput)
	}

	err := s.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}

	return nil
}
