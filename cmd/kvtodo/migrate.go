package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/kvtodo/config"
	"github.com/sagarc03/kvtodo/kvstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Provision the store namespace",
	Long: `Create the table, directory or bucket for the configured namespace
and check that the store is reachable. serve does the same on startup;
migrate lets it happen ahead of time.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	store, err := kvstore.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _ = store.Close() }()

	slog.Info("store ready", "type", cfg.Store.Type, "namespace", cfg.Store.Namespace)
	cmd.Printf("store %s ready (namespace %s)\n", cfg.Store.Type, cfg.Store.Namespace)
	return nil
}
