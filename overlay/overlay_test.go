package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/config"
	"github.com/uyouii/truncated-density/histogram"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SampleSize = 5000
	cfg.GridSize = 2000
	cfg.Seed = 17
	return cfg
}

func TestBuild(t *testing.T) {
	cfg := testConfig()

	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	for _, v := range res.Sample.Values {
		require.GreaterOrEqual(t, v, cfg.Threshold)
	}
	assert.Equal(t, cfg.Threshold, res.Chart.Threshold)
	assert.Len(t, res.Chart.Histogram, cfg.Bins)
	assert.InDelta(t, 1, histogram.Area(res.Chart.Histogram), 1e-9)
	assert.InDelta(t, 1, res.Grid.Integral(), 1e-3)

	require.Len(t, res.Chart.Curves, 2)
	truncated, unconditional := res.Chart.Curves[0], res.Chart.Curves[1]
	assert.Equal(t, SeriesTruncated, truncated.Name)
	assert.Equal(t, SeriesUnconditional, unconditional.Name)
	require.Len(t, unconditional.Points, len(truncated.Points))
	for i := range truncated.Points {
		assert.Equal(t, truncated.Points[i].X, unconditional.Points[i].X)
		assert.Greater(t, truncated.Points[i].Value, unconditional.Points[i].Value)
	}
}

func TestBuildWithKDE(t *testing.T) {
	cfg := testConfig()
	cfg.KDE = true

	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Chart.Curves, 3)
	assert.Equal(t, SeriesKDE, res.Chart.Curves[2].Name)
	assert.Equal(t, cfg.Threshold, res.Chart.Curves[2].Points[0].X)
}

func TestBuildReproducible(t *testing.T) {
	a, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	b, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, a.Chart, b.Chart)
}

func TestBuildThresholdBeyondSample(t *testing.T) {
	cfg := testConfig()
	cfg.Threshold = 40

	_, err := Build(context.Background(), cfg)
	var inputErr *common.InvalidInputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestCompare(t *testing.T) {
	cfg := testConfig()

	cmp, err := Compare(context.Background(), cfg, []float64{1, 0, 0.5})
	require.NoError(t, err)
	require.Len(t, cmp.Entries, 3)

	assert.Equal(t, []float64{0, 0.5, 1}, []float64{
		cmp.Entries[0].Threshold, cmp.Entries[1].Threshold, cmp.Entries[2].Threshold,
	})
	for i := 1; i < len(cmp.Entries); i++ {
		assert.Less(t, cmp.Entries[i].SupportZ, cmp.Entries[i-1].SupportZ)
		assert.Less(t, cmp.Entries[i].SampleSize, cmp.Entries[i-1].SampleSize)
	}
	for _, e := range cmp.Entries {
		assert.InDelta(t, 1, e.Grid.Integral(), 1e-3)
	}

	assert.Equal(t, 0.0, cmp.Chart.Threshold)
	require.Len(t, cmp.Chart.Curves, 3)
	assert.Equal(t, "threshold 0.5", cmp.Chart.Curves[1].Name)
}

func TestCompareErrors(t *testing.T) {
	_, err := Compare(context.Background(), testConfig(), nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = Compare(context.Background(), testConfig(), []float64{0, 40})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Compare(ctx, testConfig(), []float64{0, 1})
	assert.ErrorIs(t, err, context.Canceled)
}
