// Package kvstore opens the configured key-value backend for kvtodo.
//
// # Supported Backends
//
//   - memory: process-local map, nothing survives a restart
//   - sqlite: one table per namespace, using modernc.org/sqlite
//   - postgres: one table per namespace, using a pgx connection pool
//   - filesystem: one directory per namespace, one file per key
//   - nats: one JetStream key-value bucket per namespace
//
// # Usage
//
//	store, err := kvstore.Open(ctx, kvstore.Config{
//	    Type:      "sqlite",
//	    DSN:       "kvtodo.db",
//	    Namespace: "kvtodo",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Open provisions the namespace (table, directory or bucket) and checks the
// backend is reachable before returning.
package kvstore
