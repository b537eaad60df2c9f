package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// ETL returns the command for loading the warehouse from S3.
func ETL() *cobra.Command {
	var (
		configPath string
		testLoad   bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Load the warehouse from the S3 source data",
		Long: `Load the warehouse in two stages.

Stage one copies the raw JSON from S3 into the staging tables using the
cluster's data-access role. Stage two populates the star schema from
staging with deduplicating inserts.

The full dataset takes multiple hours to copy on a small cluster, so
the command asks for confirmation first. Use --test to load a small
subset instead, which finishes in a few minutes and is enough to try
the analytics queries.

Examples:
  # Quick subset load
  dwhctl etl --test

  # Full load, skipping the confirmation
  dwhctl etl --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ETL(cmd.Context(), configPath, testLoad, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().BoolVarP(&testLoad, "test", "t", false, "Load a small subset of the source data")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the full-load confirmation prompt")

	return cmd
}
