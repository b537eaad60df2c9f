package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/provisioning"
)

// Pause suspends the warehouse cluster.
//
// A pause rejected for a missing recent backup triggers one snapshot
// and a single retry; a second rejection is surfaced as an error.
// The command returns once the pause is accepted, the cluster reaches
// paused on its own.
func Pause(ctx context.Context, configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	log.Printf("Pausing warehouse: %s", cfg.Cluster.Identifier)

	lifecycle := provisioning.NewClusterLifecycle(cloud, newStore(path), provisioning.NewConsoleObserver(), config.LoadTimeouts(), cfg)
	if err := lifecycle.Pause(ctx); err != nil {
		return fmt.Errorf("pause failed: %w", err)
	}

	log.Printf("Pause accepted, %s stops compute billing once it reaches paused", cfg.Cluster.Identifier)
	fmt.Println("Check progress with 'dwhctl status', resume with 'dwhctl resume'.")
	return nil
}
