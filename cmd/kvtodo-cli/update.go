package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <title...>",
	Short: "Replace the title of a todo item",
	Long: `Replace the title stored under id. The item is created if it does not
exist yet.

Examples:
  kvtodo-cli update 0b8f3c5e-6d0a-4c1e-9e43-3f1f7c8b2a10 buy oat milk`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Update(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatWrite(os.Stdout, result)
}
