package main

import (
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todo items",
	Long: `List every todo item on the server.

Examples:
  kvtodo-cli list
  kvtodo-cli list --prefix work
  kvtodo-cli list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.List(cmd.Context())
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatList(os.Stdout, result)
}
