// Package clientcli provides a client library for talking to a kvtodo server.
//
// It supports list, create, update and delete of todo items, and includes
// profile-based configuration for managing connections to multiple servers.
//
// # Basic Usage
//
// Create a client and add an item:
//
//	client, err := clientcli.New(&clientcli.Config{
//		Endpoint: "http://localhost:5708",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Create(ctx, "buy milk")
//
// Set Prefix to talk to the /{prefix}/todos form of the routes.
//
// # Profile Configuration
//
// Use profiles to manage multiple server configurations:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.Lookup("production")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Environment Variables
//
// The following environment variables are supported:
//   - KVTODO_ENDPOINT: Server endpoint URL
//   - KVTODO_PREFIX: Route prefix
//   - KVTODO_PROFILE: Profile name to use
//   - KVTODO_CONFIG: Path to config file
//
// # Error Handling
//
// Server errors are returned as *APIError. Use errors.Is with the sentinels
// to check for specific conditions:
//
//	if errors.Is(err, clientcli.ErrBadRequest) {
//		// title was missing or malformed
//	}
package clientcli
