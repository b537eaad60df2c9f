package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Resume returns the command for resuming a paused warehouse cluster.
func Resume() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused warehouse cluster",
		Long: `Resume a paused warehouse cluster and wait until it is available.

Example:
  dwhctl resume`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Resume(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}
