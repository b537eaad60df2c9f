// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Root returns the root command for the dwhctl CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dwhctl",
		Short: "Provision and load an analytics warehouse on AWS Redshift",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Optional .env with AWS credentials
			_ = godotenv.Load()
		},
	}

	// Lifecycle commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Provision())
	cmd.AddCommand(Status())
	cmd.AddCommand(Pause())
	cmd.AddCommand(Resume())
	cmd.AddCommand(Destroy())

	// Warehouse commands
	cmd.AddCommand(Tables())
	cmd.AddCommand(ETL())
	cmd.AddCommand(Query())
	cmd.AddCommand(LoadErrors())
	cmd.AddCommand(Sources())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
