package warehouse

import (
	"context"
	"fmt"

	"github.com/imamik/dwhctl/internal/config"
)

// Progress receives stage notifications during a load. A nil Progress
// is valid and reports nothing.
type Progress func(stage, table string)

// ETLOptions control the scope of a load.
type ETLOptions struct {
	// Sample loads a small slice of each dataset instead of the full
	// buckets.
	Sample bool
}

// RunETL performs the two-stage load: COPY the raw JSON into staging,
// then populate the star schema with the deduplicating inserts. The
// role ARN must be recorded so COPY can read the source buckets.
func (db *DB) RunETL(ctx context.Context, src config.Sources, roleARN string, opts ETLOptions, progress Progress) error {
	if roleARN == "" {
		return fmt.Errorf("role ARN not recorded, provision the role first")
	}
	if progress == nil {
		progress = func(stage, table string) {}
	}

	for _, stmt := range CopyStatements(src, roleARN, opts.Sample) {
		progress("staging", stmt.Table)
		if err := db.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("copy into %s: %w", stmt.Table, err)
		}
	}

	for _, stmt := range InsertStatements() {
		progress("star", stmt.Table)
		if err := db.Exec(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("populate %s: %w", stmt.Table, err)
		}
	}
	return nil
}

// CountRows returns the row count of a managed table.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if !isManagedTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	rows, err := db.Select(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err != nil {
		return 0, err
	}
	if len(rows.Records) != 1 || len(rows.Records[0]) != 1 {
		return 0, fmt.Errorf("unexpected count result for %s", table)
	}
	var count int64
	if _, err := fmt.Sscan(rows.Records[0][0], &count); err != nil {
		return 0, fmt.Errorf("parse count for %s: %w", table, err)
	}
	return count, nil
}

func isManagedTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}
