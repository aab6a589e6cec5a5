package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/domain/chart"
	"tabscope/domain/profile"
	"tabscope/domain/table"
	"tabscope/internal"
	"tabscope/internal/testkit"
)

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(internal.LogLevelError, &bytes.Buffer{})
}

func TestProfileRunMatchesSequentialProfile(t *testing.T) {
	tbl, err := testkit.NewShoppingDataGenerator(testkit.DefaultShoppingConfig()).GenerateTable()
	require.NoError(t, err)

	sequential := NewProfileService(WithLogger(quietLogger()))
	want := sequential.Profile(tbl)

	for _, workers := range []int{1, 3, 16} {
		svc := NewProfileService(WithWorkers(workers), WithLogger(quietLogger()))
		got, err := svc.ProfileRun(context.Background(), "shopping.csv", tbl)
		require.NoError(t, err)

		assert.Equal(t, want, got.Report, "workers=%d", workers)
		assert.Equal(t, "shopping.csv", got.Source)
		assert.NotEmpty(t, got.ID)
		assert.NotEmpty(t, got.Fingerprint)
	}
}

func TestProfileRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewProfileService(WithWorkers(2), WithLogger(quietLogger()))
	_, err := svc.ProfileRun(ctx, "sales", testkit.SalesTable(t))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAggregateAppliesDefaults(t *testing.T) {
	svc := NewProfileService(
		WithChartDefaults(ChartDefaults{HistogramBins: 4, TopN: 2}),
		WithLogger(quietLogger()),
	)
	tbl := testkit.SalesTable(t)

	hist, err := svc.Aggregate(tbl, chart.Request{Kind: chart.KindHistogram, Y: "units"})
	require.NoError(t, err)
	assert.Len(t, hist.Histogram.Counts, 4)

	pie, err := svc.Aggregate(tbl, chart.Request{Kind: chart.KindPie, X: "region"})
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, pie.TopN.Labels)

	pie, err = svc.Aggregate(tbl, chart.Request{Kind: chart.KindPie, X: "region", TopN: 10})
	require.NoError(t, err)
	assert.Len(t, pie.TopN.Labels, 5)
}

func TestColumns(t *testing.T) {
	svc := NewProfileService(WithLogger(quietLogger()))
	cols := svc.Columns(testkit.SalesTable(t))

	require.Len(t, cols, 4)
	assert.Equal(t, ColumnDescriptor{Name: "region", Type: profile.TypeCategorical, NonNullCount: 6, MissingCount: 1}, cols[0])
	assert.Equal(t, profile.TypeNumeric, cols[1].Type)
	assert.Equal(t, profile.TypeNumeric, cols[2].Type)
	assert.Equal(t, profile.TypeBoolean, cols[3].Type)

	assert.Equal(t, []string{"units", "price"}, svc.NumericColumns(testkit.SalesTable(t)))
}

type staticSource struct {
	t   *table.Table
	err error
}

func (s staticSource) Load(context.Context) (*table.Table, error) { return s.t, s.err }
func (s staticSource) Name() string                               { return "static" }

func TestLoad(t *testing.T) {
	svc := NewProfileService(WithLogger(quietLogger()))

	tbl, err := svc.Load(context.Background(), staticSource{t: testkit.SalesTable(t)})
	require.NoError(t, err)
	assert.Equal(t, 7, tbl.NumRows())

	boom := errors.New("boom")
	_, err = svc.Load(context.Background(), staticSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load static")
}
