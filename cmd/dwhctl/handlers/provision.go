// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/platform/aws"
	"github.com/imamik/dwhctl/internal/provisioning"
	"github.com/imamik/dwhctl/internal/ui/tui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newControlPlane creates the AWS control-plane client.
	newControlPlane = func(ctx context.Context, cfg *config.Config) (aws.ControlPlane, error) {
		return aws.NewRealClient(ctx, aws.ClientOptions{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
		})
	}

	// newStore creates the config write-back store.
	newStore = func(path string) config.Store {
		return config.NewFileStore(path)
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile locates the default config file (for testing injection).
	findConfigFile = config.Find

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runProvision drives the provisioning pipeline.
	runProvision = provisioning.Provision

	// runTeardown drives the teardown pipeline.
	runTeardown = provisioning.Teardown

	// runProvisionTUI wraps provisioning with the dashboard.
	runProvisionTUI = tui.RunProvisionTUI

	// runDestroyTUI wraps teardown with the dashboard.
	runDestroyTUI = tui.RunDestroyTUI

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// Provision provisions the warehouse cluster and its data-access role.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the warehouse configuration
//  2. Initializes the AWS client from config or ambient credentials
//  3. Runs the pipeline: role, cluster, endpoint, ingress
//  4. Records the role ARN and endpoint host back into the config file
//
// On a terminal the pipeline renders a live dashboard; --plain or a
// pipe falls back to log lines.
func Provision(ctx context.Context, configPath string, plain bool) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Provisioning warehouse: %s", cfg.Cluster.Identifier)

	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, cloud, newStore(path))

	if !plain && isInteractiveTTY() {
		err = runProvisionTUI(cfg.Cluster.Identifier, cfg.AWS.Region, func(observer provisioning.Observer) error {
			pCtx.Observer = observer
			return runProvision(pCtx)
		})
	} else {
		err = runProvision(pCtx)
	}
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	printProvisionSuccess(cfg, pCtx.State, path)
	return nil
}

// loadConfig loads and validates the warehouse configuration.
// If configPath is empty, it looks for dwhctl.yaml in the current
// directory and its parents. The resolved path is returned for the
// write-back store.
func loadConfig(configPath string) (*config.Config, string, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, "", fmt.Errorf("no config file found: %w\nRun 'dwhctl init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, configPath, nil
}

// printProvisionSuccess outputs completion message and next steps.
func printProvisionSuccess(cfg *config.Config, state *provisioning.State, path string) {
	fmt.Printf("\nWarehouse ready!\n\n")
	fmt.Printf("  Cluster:  %s (%s)\n", cfg.Cluster.Identifier, cfg.AWS.Region)
	if state.Endpoint != nil {
		fmt.Printf("  Endpoint: %s:%d\n", state.Endpoint.Address, state.Endpoint.Port)
	}
	if state.RoleARN != "" {
		fmt.Printf("  Role ARN: %s\n", state.RoleARN)
	}
	fmt.Printf("\nThe endpoint and role ARN were recorded in %s.\n", path)
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Create the schema:")
	fmt.Println("     dwhctl tables create")
	fmt.Println()
	fmt.Println("  2. Load a data subset:")
	fmt.Println("     dwhctl etl --test")
	fmt.Println()
	fmt.Println("  3. Explore it:")
	fmt.Println("     dwhctl query")
	fmt.Println()
}
