package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Query returns the command for running the canned analytics queries.
func Query() *cobra.Command {
	var (
		configPath string
		list       bool
	)

	cmd := &cobra.Command{
		Use:   "query [number]",
		Short: "Run a canned analytics query against the warehouse",
		Long: `Run one of the built-in analytics queries against the star schema.

Without arguments an interactive picker is shown on a terminal; in a
pipe all queries run in sequence. A query number runs just that query.

Examples:
  # Pick a query interactively
  dwhctl query

  # Run query 2 (top 10 most popular songs)
  dwhctl query 2

  # List the available queries
  dwhctl query --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return handlers.Query(cmd.Context(), configPath, arg, list)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the available queries and exit")

	return cmd
}
