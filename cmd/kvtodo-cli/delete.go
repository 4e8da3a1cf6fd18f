package main

import (
	"os"

	"github.com/sagarc03/kvtodo/clientcli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id> [id...]",
	Aliases: []string{"rm"},
	Short:   "Delete todo items",
	Long: `Delete one or more todo items. Deleting an id that does not exist
succeeds.

Examples:
  kvtodo-cli delete 0b8f3c5e-6d0a-4c1e-9e43-3f1f7c8b2a10
  kvtodo-cli delete -q id-1 id-2 id-3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	results, err := client.Delete(cmd.Context(), clientcli.DeleteOptions{IDs: args})
	if err != nil {
		return reportError(err)
	}

	if err := getFormatter().FormatDelete(os.Stdout, results); err != nil {
		return err
	}

	if clientcli.HasDeleteErrors(results) {
		return &exitError{code: 1}
	}

	return nil
}
