// Package main is the entry point for the dwhctl CLI.
//
// dwhctl is a command-line tool for provisioning an analytics warehouse
// on AWS Redshift and loading it with data. It creates the data-access
// role and the cluster, opens network ingress, builds the star schema,
// and runs the S3-to-warehouse load, all from a single YAML config.
//
// Commands: init, provision, status, pause, resume, destroy, tables,
// etl, query, loaderrors, sources.
//
// For detailed usage information, run:
//
//	dwhctl --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/dwhctl/cmd/dwhctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
