package kvstore

import (
	"context"
	"fmt"

	"github.com/sagarc03/kvtodo"
	"github.com/sagarc03/kvtodo/kvstore/filesystem"
	"github.com/sagarc03/kvtodo/kvstore/memory"
	"github.com/sagarc03/kvtodo/kvstore/natskv"
	"github.com/sagarc03/kvtodo/kvstore/postgres"
	"github.com/sagarc03/kvtodo/kvstore/sqlite"
)

// Supported backend types.
const (
	TypeMemory     = "memory"
	TypeSQLite     = "sqlite"
	TypePostgres   = "postgres"
	TypeFilesystem = "filesystem"
	TypeNATS       = "nats"
)

// Config holds the configuration for opening a key-value backend.
type Config struct {
	// Type specifies the backend: memory, sqlite, postgres, filesystem or nats
	Type string `mapstructure:"type" validate:"required,oneof=memory sqlite postgres filesystem nats"`
	// DSN is the connection string, directory or NATS URL depending on Type
	DSN string `mapstructure:"dsn"`
	// Namespace names the table, directory or bucket holding the items
	Namespace string `mapstructure:"namespace" validate:"required,max=63"`
}

// Store is a KeyValueStore with lifecycle methods.
type Store interface {
	kvtodo.KeyValueStore
	Ping(ctx context.Context) error
	Close() error
}

type migrator interface {
	Migrate(ctx context.Context) error
	Validate(ctx context.Context) error
}

// Open connects to the configured backend, provisions the namespace and
// pings it. The caller must Close the returned store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = kvtodo.DefaultNamespace
	}

	if err := kvtodo.ValidateNamespace(namespace); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	store, err := open(ctx, cfg.Type, cfg.DSN, namespace)
	if err != nil {
		return nil, err
	}

	if m, ok := store.(migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("migrate %s: %w", cfg.Type, err)
		}
		if err := m.Validate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("validate %s schema: %w", cfg.Type, err)
		}
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Type, err)
	}

	return store, nil
}

func open(ctx context.Context, storeType, dsn, namespace string) (Store, error) {
	switch storeType {
	case TypeMemory:
		return memory.New(), nil
	case TypeSQLite:
		return sqlite.Open(ctx, dsn, namespace)
	case TypePostgres:
		return postgres.Open(ctx, dsn, namespace)
	case TypeFilesystem:
		return filesystem.Open(dsn, namespace)
	case TypeNATS:
		return natskv.Open(ctx, dsn, namespace)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
