package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes the warehouse cluster and the data-access
// role. The cluster is deleted first and polled until gone, then the
// role is detached and deleted.
func Destroy() *cobra.Command {
	var (
		configPath string
		yes        bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the warehouse cluster and its access role",
		Long: `Destroy removes the warehouse resources from AWS.

This command deletes, in order:
  - The Redshift cluster (no final snapshot is taken)
  - The S3 read grant on the data-access role
  - The data-access role itself

The role is only deleted once the policy detach has become visible; if
that visibility check times out, the role is left in place so a re-run
can finish the teardown.

Example:
  dwhctl destroy -c dwhctl.yaml

WARNING: This operation is irreversible. All warehouse data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, yes, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive dashboard")

	return cmd
}
