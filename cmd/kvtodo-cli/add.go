package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title...>",
	Short: "Add a todo item",
	Long: `Add a new todo item. Remaining arguments are joined with spaces to
form the title.

The server trims surrounding whitespace and a leading "-" or "+" marker
from the title.

Examples:
  kvtodo-cli add buy milk
  kvtodo-cli add "walk the dog"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Create(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatWrite(os.Stdout, result)
}
