package handlers

import (
	"context"
	"testing"

	"github.com/imamik/dwhctl/internal/config"
	"github.com/imamik/dwhctl/internal/warehouse"
)

// swap replaces a factory variable for the duration of a test.
func swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// stubConfig makes loadConfig return the given config for any path.
func stubConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	swap(t, &loadConfigFile, func(string) (*config.Config, error) { return cfg, nil })
	swap(t, &findConfigFile, func() (string, error) { return config.DefaultFilename, nil })
}

// fakeWarehouse records warehouse calls without a database connection.
type fakeWarehouse struct {
	resetCalls   int
	dropCalls    int
	etlOpts      []warehouse.ETLOptions
	etlRoleARN   string
	etlErr       error
	queries      []string
	loadErrRows  *warehouse.Rows
	loadErrCalls int
	counts       map[string]int64
	closed       bool
}

func (f *fakeWarehouse) Close(context.Context) error {
	f.closed = true
	return nil
}

func (f *fakeWarehouse) ResetTables(context.Context) error {
	f.resetCalls++
	return nil
}

func (f *fakeWarehouse) DropTables(context.Context) error {
	f.dropCalls++
	return nil
}

func (f *fakeWarehouse) RunETL(_ context.Context, _ config.Sources, roleARN string, opts warehouse.ETLOptions, progress warehouse.Progress) error {
	f.etlOpts = append(f.etlOpts, opts)
	f.etlRoleARN = roleARN
	if progress != nil {
		progress("staging", "staging_events")
	}
	return f.etlErr
}

func (f *fakeWarehouse) CountRows(_ context.Context, table string) (int64, error) {
	return f.counts[table], nil
}

func (f *fakeWarehouse) LoadErrors(context.Context) (*warehouse.Rows, error) {
	f.loadErrCalls++
	if f.loadErrRows == nil {
		return &warehouse.Rows{}, nil
	}
	return f.loadErrRows, nil
}

func (f *fakeWarehouse) RunAnalytics(_ context.Context, q warehouse.AnalyticsQuery) (*warehouse.Rows, error) {
	f.queries = append(f.queries, q.Summary)
	return &warehouse.Rows{Columns: q.Columns}, nil
}

// stubWarehouse makes connectWarehouse return the given fake.
func stubWarehouse(t *testing.T, fake *fakeWarehouse) {
	t.Helper()
	swap(t, &connectWarehouse, func(context.Context, config.Database) (Warehouse, error) {
		return fake, nil
	})
}
