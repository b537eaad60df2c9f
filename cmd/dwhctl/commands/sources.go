package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Sources returns the parent command for exploring the S3 source data.
func Sources() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Explore the S3 source data",
		Long: `Explore the raw song and event data in S3 before loading it.

The dataset argument selects between the song records ("song") and the
event logs ("log") configured in the sources section.`,
	}

	cmd.AddCommand(sourcesList())
	cmd.AddCommand(sourcesSample())
	cmd.AddCommand(sourcesJSONPath())

	return cmd
}

// sourcesList returns the command for listing source objects.
func sourcesList() *cobra.Command {
	var (
		configPath string
		dataset    string
		max        int32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objects under a source prefix",
		Long: `List the S3 objects under a configured source prefix.

Examples:
  # First 20 song files
  dwhctl sources list --dataset song

  # First 50 event log files
  dwhctl sources list --dataset log --max 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SourcesList(cmd.Context(), configPath, dataset, max)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "song", "Dataset to list: song or log")
	cmd.Flags().Int32Var(&max, "max", 20, "Maximum number of objects to list")

	return cmd
}

// sourcesSample returns the command for sampling source records.
func sourcesSample() *cobra.Command {
	var (
		configPath string
		dataset    string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Fetch and print sample records from a source",
		Long: `Fetch a few objects from a source prefix and print their records.

Song files hold one JSON record each; event log files hold
newline-delimited JSON and are sampled record by record.

Examples:
  dwhctl sources sample --dataset song
  dwhctl sources sample --dataset log -n 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SourcesSample(cmd.Context(), configPath, dataset, count)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "song", "Dataset to sample: song or log")
	cmd.Flags().IntVarP(&count, "count", "n", 3, "Number of records to print")

	return cmd
}

// sourcesJSONPath returns the command for showing the JSONPaths file.
func sourcesJSONPath() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "jsonpath",
		Short: "Show the JSONPaths mapping for event loads",
		Long: `Fetch and print the JSONPaths file that maps event log fields to
staging columns during COPY.

Example:
  dwhctl sources jsonpath`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SourcesJSONPath(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}
