package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/imamik/dwhctl/internal/warehouse"
)

// Factory function variables for query - can be replaced in tests.
var (
	// pickQuery shows the interactive query picker.
	pickQuery = func(queries []warehouse.AnalyticsQuery) (int, error) {
		options := make([]huh.Option[int], len(queries))
		for i, q := range queries {
			options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, q.Summary), i)
		}
		var choice int
		err := huh.NewSelect[int]().
			Title("Analytics queries").
			Options(options...).
			Value(&choice).
			Run()
		return choice, err
	}
)

// Query runs canned analytics queries against the star schema.
//
// A query number runs one query; without a number, a terminal gets an
// interactive picker and a pipe runs every query in sequence.
func Query(ctx context.Context, configPath, arg string, list bool) error {
	queries := warehouse.AnalyticsQueries()

	if list {
		printQueryList(queries)
		return nil
	}

	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("no endpoint recorded in config, run 'dwhctl provision' first")
	}

	// Negative means run everything.
	selected := -1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(queries) {
			return fmt.Errorf("query number must be 1-%d, got %q", len(queries), arg)
		}
		selected = n - 1
	} else if isInteractiveTTY() {
		choice, err := pickQuery(queries)
		if err != nil {
			return fmt.Errorf("picker canceled: %w", err)
		}
		selected = choice
	}

	db, err := connectWarehouse(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer closeQuietly(ctx, db)

	if selected >= 0 {
		return runOneQuery(ctx, db, queries[selected])
	}
	for _, q := range queries {
		if err := runOneQuery(ctx, db, q); err != nil {
			return err
		}
	}
	return nil
}

// runOneQuery executes a query and renders the result table.
func runOneQuery(ctx context.Context, db Warehouse, q warehouse.AnalyticsQuery) error {
	rows, err := db.RunAnalytics(ctx, q)
	if err != nil {
		return fmt.Errorf("query %q failed: %w", q.Summary, err)
	}
	fmt.Print(renderRowsTable(q.Summary, rows))
	return nil
}

// printQueryList prints the numbered query menu.
func printQueryList(queries []warehouse.AnalyticsQuery) {
	fmt.Println("Available queries:")
	for i, q := range queries {
		fmt.Printf("  %d. %s\n", i+1, q.Summary)
	}
}
