package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/provisioning"
)

// Resume restarts a paused warehouse cluster and waits until it is
// available again.
func Resume(ctx context.Context, configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	log.Printf("Resuming warehouse: %s", cfg.Cluster.Identifier)

	lifecycle := provisioning.NewClusterLifecycle(cloud, newStore(path), provisioning.NewConsoleObserver(), config.LoadTimeouts(), cfg)
	if err := lifecycle.Resume(ctx); err != nil {
		return fmt.Errorf("resume failed: %w", err)
	}
	if _, err := lifecycle.WaitAvailable(ctx); err != nil {
		return fmt.Errorf("wait for resume: %w", err)
	}

	log.Printf("Warehouse %s is available", cfg.Cluster.Identifier)
	return nil
}
