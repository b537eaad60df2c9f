package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Provision returns the command for provisioning the warehouse.
//
// This command handles the complete provisioning workflow: creating the
// data-access role, creating the cluster, recording the endpoint, and
// opening network ingress.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect dwhctl.yaml)
//	--plain: Disable the interactive dashboard
func Provision() *cobra.Command {
	var (
		configPath string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the warehouse cluster and its access role",
		Long: `Create the warehouse cluster and its access role.

This command provisions everything the warehouse needs on AWS:

  1. Creates the IAM data-access role and grants it S3 read access
  2. Creates the Redshift cluster with the role attached
  3. Waits for the cluster to become available
  4. Records the endpoint and role ARN back into the config file
  5. Opens network ingress on the database port

Provisioning is idempotent: resources that already exist are reused,
so the command can be re-run after a failure.

If no config file is specified, it looks for dwhctl.yaml in the current
directory. Use 'dwhctl init' to create a configuration file.

Examples:
  # Provision using dwhctl.yaml in current directory
  dwhctl provision

  # Provision using a specific config file
  dwhctl provision -c production.yaml

  # Plain log output (no dashboard)
  dwhctl provision --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive dashboard")

	return cmd
}
