package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/provisioning"
	"github.com/imamik/dwhctl/internal/warehouse"
)

// Warehouse interface for testing - matches warehouse.DB.
type Warehouse interface {
	Close(ctx context.Context) error
	ResetTables(ctx context.Context) error
	DropTables(ctx context.Context) error
	RunETL(ctx context.Context, src config.Sources, roleARN string, opts warehouse.ETLOptions, progress warehouse.Progress) error
	CountRows(ctx context.Context, table string) (int64, error)
	LoadErrors(ctx context.Context) (*warehouse.Rows, error)
	RunAnalytics(ctx context.Context, q warehouse.AnalyticsQuery) (*warehouse.Rows, error)
}

// connectWarehouse opens a database session against the cluster
// endpoint (for testing injection).
var connectWarehouse = func(ctx context.Context, cfg config.Database) (Warehouse, error) {
	return warehouse.Connect(ctx, cfg)
}

// TablesCreate drops and recreates the staging and star-schema tables.
// A paused cluster is resumed first.
func TablesCreate(ctx context.Context, configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("no endpoint recorded in config, run 'dwhctl provision' first")
	}

	if err := resumeIfPaused(ctx, cfg, path); err != nil {
		return err
	}

	db, err := connectWarehouse(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer closeQuietly(ctx, db)

	log.Printf("Resetting warehouse schema on %s", cfg.Database.Host)
	if err := db.ResetTables(ctx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	fmt.Printf("Created %d tables.\n", len(warehouse.Tables))
	return nil
}

// TablesDrop drops the staging and star-schema tables.
func TablesDrop(ctx context.Context, configPath string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("no endpoint recorded in config, run 'dwhctl provision' first")
	}

	db, err := connectWarehouse(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer closeQuietly(ctx, db)

	log.Printf("Dropping warehouse schema on %s", cfg.Database.Host)
	if err := db.DropTables(ctx); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	fmt.Printf("Dropped %d tables.\n", len(warehouse.Tables))
	return nil
}

// resumeIfPaused resumes the cluster when it is paused, so the
// connection below does not fail with an opaque network error.
func resumeIfPaused(ctx context.Context, cfg *config.Config, path string) error {
	cloud, err := newControlPlane(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	lifecycle := provisioning.NewClusterLifecycle(cloud, newStore(path), provisioning.NewConsoleObserver(), config.LoadTimeouts(), cfg)
	state, err := lifecycle.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to check cluster state: %w", err)
	}
	switch state {
	case provisioning.StatePaused:
	case provisioning.StatePausing:
		// Resume is rejected mid-transition.
		return fmt.Errorf("cluster %s is still pausing, retry once it is paused", cfg.Cluster.Identifier)
	default:
		return nil
	}

	log.Printf("Cluster %s is paused, resuming first", cfg.Cluster.Identifier)
	if err := lifecycle.Resume(ctx); err != nil {
		return fmt.Errorf("failed to resume cluster: %w", err)
	}
	if _, err := lifecycle.WaitAvailable(ctx); err != nil {
		return fmt.Errorf("wait for resume: %w", err)
	}
	return nil
}

// closeQuietly closes the warehouse session, logging close failures.
func closeQuietly(ctx context.Context, db Warehouse) {
	if err := db.Close(ctx); err != nil {
		log.Printf("Warning: closing warehouse session: %v", err)
	}
}
