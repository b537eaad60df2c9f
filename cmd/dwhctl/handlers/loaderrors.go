package handlers

import (
	"context"
	"fmt"
)

// LoadErrors shows the ten most recent COPY failures recorded by the
// cluster.
func LoadErrors(ctx context.Context, configPath string) error {
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

	rows, err := db.LoadErrors(ctx)
	if err != nil {
		return fmt.Errorf("failed to read load errors: %w", err)
	}
	if len(rows.Records) == 0 {
		fmt.Println("No load errors recorded.")
		return nil
	}

	fmt.Print(renderRowsTable("Recent load errors", rows))
	return nil
}
