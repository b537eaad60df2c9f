package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// LoadErrors returns the command for inspecting recent COPY failures.
func LoadErrors() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "loaderrors",
		Short: "Show the most recent load errors",
		Long: `Show the ten most recent COPY failures recorded by the cluster.

Each row names the failing query, line, column, and the offending
value, joined from the cluster's load error log. Useful when 'dwhctl
etl' reports a copy failure.

Example:
  dwhctl loaderrors`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.LoadErrors(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}
