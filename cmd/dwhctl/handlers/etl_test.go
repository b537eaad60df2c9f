package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	dwhtesting "github.com/imamik/dwhctl/internal/testing"
	"github.com/imamik/dwhctl/internal/warehouse"
)

func TestETLNeedsRoleARN(t *testing.T) {
	cfg := dwhtesting.NewConfigBuilder().
		WithHost("test-cluster.abc123.us-west-2.redshift.amazonaws.com").
		Build()
	stubConfig(t, cfg)

	err := ETL(context.Background(), "dwhctl.yaml", true, false)
	require.ErrorContains(t, err, "no role ARN recorded")
}

func TestETLNeedsEndpoint(t *testing.T) {
	cfg := dwhtesting.NewConfigBuilder().
		WithRoleARN("arn:aws:iam::123456789012:role/test-role").
		Build()
	stubConfig(t, cfg)

	err := ETL(context.Background(), "dwhctl.yaml", true, false)
	require.ErrorContains(t, err, "no endpoint recorded")
}

func TestETLTestLoadRunsSample(t *testing.T) {
	stubConfig(t, dwhtesting.FullConfig())

	fake := &fakeWarehouse{counts: map[string]int64{"songplays": 42}}
	stubWarehouse(t, fake)

	err := ETL(context.Background(), "dwhctl.yaml", true, false)
	require.NoError(t, err)

	require.Len(t, fake.etlOpts, 1)
	require.True(t, fake.etlOpts[0].Sample)
	require.Equal(t, "arn:aws:iam::123456789012:role/test-role", fake.etlRoleARN)
	require.True(t, fake.closed)
}

func TestETLFullLoadNeedsConfirmation(t *testing.T) {
	stubConfig(t, dwhtesting.FullConfig())
	swap(t, &isInteractiveTTY, func() bool { return false })

	err := ETL(context.Background(), "dwhctl.yaml", false, false)
	require.ErrorContains(t, err, "pass --yes")
}

func TestETLFullLoadDeclined(t *testing.T) {
	stubConfig(t, dwhtesting.FullConfig())
	swap(t, &isInteractiveTTY, func() bool { return true })
	swap(t, &confirmFullLoad, func() (bool, error) { return false, nil })

	fake := &fakeWarehouse{}
	stubWarehouse(t, fake)

	err := ETL(context.Background(), "dwhctl.yaml", false, false)
	require.NoError(t, err)
	require.Empty(t, fake.etlOpts, "declining must not start the load")
}

func TestETLFullLoadWithYes(t *testing.T) {
	stubConfig(t, dwhtesting.FullConfig())

	fake := &fakeWarehouse{}
	stubWarehouse(t, fake)

	err := ETL(context.Background(), "dwhctl.yaml", false, true)
	require.NoError(t, err)
	require.Len(t, fake.etlOpts, 1)
	require.False(t, fake.etlOpts[0].Sample)
}

func TestETLFailureShowsLoadErrors(t *testing.T) {
	stubConfig(t, dwhtesting.FullConfig())

	fake := &fakeWarehouse{
		etlErr: errors.New("copy into staging_events: S3ServiceException"),
		loadErrRows: &warehouse.Rows{
			Columns: []string{"starttime", "err_reason"},
			Records: [][]string{{"2024-01-01", "Invalid timestamp format"}},
		},
	}
	stubWarehouse(t, fake)

	err := ETL(context.Background(), "dwhctl.yaml", true, false)
	require.ErrorContains(t, err, "load failed")
	require.Equal(t, 1, fake.loadErrCalls, "failed loads surface the error log")
}
