package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
	"github.com/imamik/dwhctl/internal/config"
)

// Init returns the command for interactively creating a warehouse configuration.
//
// This command guides users through creating a configuration YAML file
// using an interactive wizard with text inputs and single-select prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "dwhctl.yaml")
//	--credentials-csv: Import an access key pair from a console-exported CSV
//	--yes, -y: Accept all defaults without prompting
//	--force, -f: Overwrite an existing configuration file
func Init() *cobra.Command {
	var (
		outputPath     string
		credentialsCSV string
		yes            bool
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a warehouse configuration",
		Long: `Interactively create a warehouse configuration file.

This command guides you through configuring your warehouse step by
step. It will ask about:

  - Cluster identity (identifier and region)
  - Cluster shape (node type and count)
  - Warehouse database (name, master user, password)
  - IAM role for reading source data
  - Source data locations in S3

Leave the password prompt empty to have a strong master password
generated and stored in the config file.

AWS credentials can be imported from a credentials CSV downloaded from
the console with --credentials-csv; otherwise the ambient credential
chain (environment, shared config, instance profile) is used.

Use --yes to accept all defaults without prompting, for scripted
setups. An existing config file is never overwritten without --force.

Examples:
  # Interactive setup
  dwhctl init

  # Import credentials from a console export
  dwhctl init --credentials-csv new_user_credentials.csv

  # Non-interactive, all defaults
  dwhctl init --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, credentialsCSV, yes, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultFilename, "Output file path")
	cmd.Flags().StringVar(&credentialsCSV, "credentials-csv", "", "Path to a console-exported credentials CSV")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept all defaults without prompting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}
