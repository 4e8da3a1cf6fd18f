// Package config provides configuration loading and validation for kvtodo.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (KVTODO_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with KVTODO_ prefix:
//   - server.port → KVTODO_SERVER_PORT
//   - store.type → KVTODO_STORE_TYPE
//   - store.namespace → KVTODO_STORE_NAMESPACE
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port and read/write/idle/shutdown timeouts in seconds
//   - Store: backend type, DSN, and namespace
//   - CORS: cross-origin resource sharing settings
//   - Metrics: Prometheus listener toggle and port
//   - Log: logging level and format (text or json)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Ports must be 1-65535
//   - Store type must be memory, sqlite, postgres, filesystem, or nats
//   - Namespace must match ^[a-z_][a-z0-9_]*$ and be at most 63 characters
//   - Log level must be debug, info, warn, or error
package config
