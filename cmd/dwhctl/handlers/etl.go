package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"

	"github.com/imamik/dwhctl/internal/warehouse"
)

// Factory function variables for etl - can be replaced in tests.
var (
	// confirmFullLoad asks before the multi-hour full load.
	confirmFullLoad = func() (bool, error) {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Run the full load?").
			Description("Copying the full dataset takes multiple hours on a small cluster. Use --test for a quick subset.").
			Value(&confirmed).
			Run()
		return confirmed, err
	}
)

// ETL runs the two-stage load: COPY from S3 into the staging tables,
// then the star-schema inserts.
func ETL(ctx context.Context, configPath string, testLoad, yes bool) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.IAMRole.ARN == "" {
		return fmt.Errorf("no role ARN recorded in config, run 'dwhctl provision' first")
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("no endpoint recorded in config, run 'dwhctl provision' first")
	}

	if !testLoad && !yes {
		if !isInteractiveTTY() {
			return fmt.Errorf("full load needs confirmation, pass --yes (or --test for a subset)")
		}
		confirmed, err := confirmFullLoad()
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	db, err := connectWarehouse(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer closeQuietly(ctx, db)

	scope := "full dataset"
	if testLoad {
		scope = "test subset"
	}
	log.Printf("Loading %s into %s", scope, cfg.Database.Name)

	opts := warehouse.ETLOptions{Sample: testLoad}
	progress := func(stage, table string) {
		log.Printf("  [%s] loading %s", stage, table)
	}
	if err := db.RunETL(ctx, cfg.Sources, cfg.IAMRole.ARN, opts, progress); err != nil {
		printLoadErrorHint(ctx, db)
		return fmt.Errorf("load failed: %w", err)
	}

	printLoadCounts(ctx, db)
	return nil
}

// printLoadErrorHint surfaces the cluster's load error log after a
// failed COPY. Best effort.
func printLoadErrorHint(ctx context.Context, db Warehouse) {
	rows, err := db.LoadErrors(ctx)
	if err != nil || len(rows.Records) == 0 {
		return
	}
	fmt.Print(renderRowsTable("Recent load errors", rows))
	fmt.Println(renderDimStyle.Render("  Full detail: dwhctl loaderrors"))
}

// printLoadCounts reports the row count of every managed table.
func printLoadCounts(ctx context.Context, db Warehouse) {
	fmt.Println()
	fmt.Println("Load complete.")
	fmt.Println()
	for _, table := range warehouse.Tables {
		count, err := db.CountRows(ctx, table)
		if err != nil {
			fmt.Printf("  %-15s (count failed: %v)\n", table, err)
			continue
		}
		fmt.Printf("  %-15s %d rows\n", table, count)
	}
}
