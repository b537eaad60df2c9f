package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Status returns the command for showing the warehouse status.
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current state of the warehouse",
		Long: `Show the current state of the warehouse resources.

This command reads the cluster and role state from AWS without changing
anything. It reports:
  - Cluster state, node type and count, database and master user
  - The endpoint address once the cluster is available
  - The data-access role, its ARN, and whether the S3 read grant is attached
  - Whether the recorded ARN in the config matches the live role

Example:
  dwhctl status

  # Machine-readable output
  dwhctl status --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
