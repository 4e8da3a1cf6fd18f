package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/kvtodo/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "kvtodo",
	Short:   "Todo list HTTP server backed by a key-value store",
	Long: `kvtodo serves a small todo list API (list, create, update, delete)
over HTTP and keeps every item in a pluggable key-value store:
memory, sqlite, postgres, a directory, or a NATS JetStream bucket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = []string{configFile}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(os.Stdout, cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("store-type", "", "store type: memory, sqlite, postgres, filesystem, nats (default: sqlite, env: KVTODO_STORE_TYPE)")
	rootCmd.PersistentFlags().String("store-dsn", "", "store DSN, directory or NATS URL (default: kvtodo.db, env: KVTODO_STORE_DSN)")
	rootCmd.PersistentFlags().String("namespace", "", "table, directory or bucket holding the items (default: kvtodo, env: KVTODO_STORE_NAMESPACE)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json (default: text, env: KVTODO_LOG_FORMAT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info, env: KVTODO_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
