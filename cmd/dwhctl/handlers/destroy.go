package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"

	"github.com/imamik/dwhctl/internal/provisioning"
)

// Factory function variables for destroy - can be replaced in tests.
var (
	// confirmDestroy asks for interactive confirmation.
	confirmDestroy = func(clusterID string) (bool, error) {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Destroy warehouse %q?", clusterID)).
			Description("The cluster is deleted without a final snapshot. All data will be lost.").
			Value(&confirmed).
			Run()
		return confirmed, err
	}
)

// Destroy handles the destroy command.
//
// It deletes the cluster first and waits until it is gone, then
// detaches the S3 read grant and deletes the data-access role. If the
// detach never becomes visible the role is left in place for a re-run.
func Destroy(ctx context.Context, configPath string, yes, plain bool) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !yes {
		if !isInteractiveTTY() {
			return fmt.Errorf("refusing to destroy %s without confirmation, pass --yes", cfg.Cluster.Identifier)
		}
		confirmed, err := confirmDestroy(cfg.Cluster.Identifier)
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	log.Printf("Destroying warehouse: %s", cfg.Cluster.Identifier)

	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, cloud, newStore(path))

	if !plain && isInteractiveTTY() {
		err = runDestroyTUI(cfg.Cluster.Identifier, cfg.AWS.Region, func(observer provisioning.Observer) error {
			pCtx.Observer = observer
			return runTeardown(pCtx)
		})
	} else {
		err = runTeardown(pCtx)
	}
	if err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Warehouse %s destroyed", cfg.Cluster.Identifier)
	return nil
}
