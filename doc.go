// Package kvtodo provides a small todo-list service backed by a pluggable
// key-value store.
//
// Every todo item is stored as a single key-value pair: the key is the item id
// and the value is the raw title bytes. The service holds no state between
// calls; each operation re-reads from the store.
//
// # Key Components
//
//   - TodoService: list, create, update (upsert) and delete on top of a store
//   - KeyValueStore: interface for the backing store (memory, SQLite,
//     PostgreSQL, filesystem, NATS JetStream KV)
//   - CleanTitle: strips quoting artifacts left around a title string
//   - IsValidKey: checks that an id is safe to use as a store key
//
// # Example Usage
//
//	service, err := kvtodo.NewTodoService(store, kvtodo.ServiceConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	item, err := service.Create(ctx, "buy milk")
//
//	items, err := service.List(ctx)
//
// See the http package for the REST API and the kvstore packages for store
// implementations.
package kvtodo
