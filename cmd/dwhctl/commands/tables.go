package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dwhctl/cmd/dwhctl/handlers"
)

// Tables returns the parent command for managing the warehouse schema.
func Tables() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage the warehouse schema",
		Long: `Manage the staging and star-schema tables in the warehouse.

The schema consists of two staging tables (event_staging, song_staging)
and the star schema (songplays, users, songs, artists, time).`,
	}

	cmd.AddCommand(tablesCreate())
	cmd.AddCommand(tablesDrop())

	return cmd
}

// tablesCreate returns the command for (re)creating the schema.
func tablesCreate() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Drop and recreate all warehouse tables",
		Long: `Drop and recreate the staging and star-schema tables.

Existing tables are dropped first, so this resets the warehouse to an
empty schema ready for a load. A paused cluster is resumed
automatically before connecting.

Example:
  dwhctl tables create

WARNING: Existing table contents are lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.TablesCreate(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}

// tablesDrop returns the command for dropping the schema.
func tablesDrop() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop all warehouse tables",
		Long: `Drop the staging and star-schema tables. Missing tables are skipped.

Example:
  dwhctl tables drop`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.TablesDrop(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: dwhctl.yaml)")

	return cmd
}
