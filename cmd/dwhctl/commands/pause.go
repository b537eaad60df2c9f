package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Pause returns the command for pausing the warehouse cluster.
func Pause() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the warehouse cluster to stop compute billing",
		Long: `Pause the warehouse cluster.

A paused cluster keeps its data but stops billing for compute. If the
cluster has no recent snapshot the pause is rejected by AWS; in that
case a snapshot is taken first and the pause retried once.

Resume with 'dwhctl resume'.

Example:
  dwhctl pause`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Pause(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}
