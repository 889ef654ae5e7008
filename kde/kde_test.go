package kde

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/sampler"
	"github.com/uyouii/truncated-density/utils"
	"gonum.org/v1/gonum/integrate"
)

func draws(t *testing.T, n int, seed uint64) []float64 {
	t.Helper()
	values, err := sampler.Draw(model.NormalParameters{Mean: 0, StdDev: 1}, n, seed)
	require.NoError(t, err)
	return values
}

func integral(density []model.Density) float64 {
	xs, ys := make([]float64, len(density)), make([]float64, len(density))
	for i, d := range density {
		xs[i], ys[i] = d.X, d.Value
	}
	return integrate.Trapezoidal(xs, ys)
}

func TestKdensityIntegratesToOne(t *testing.T) {
	values := draws(t, 2000, 1)
	snapshot := append([]float64(nil), values...)

	k, err := NewKDEUnivariate(values, nil, 1, 0, nil, WithGridSize(400))
	require.NoError(t, err)

	density, bw, err := k.Kdensity()
	require.NoError(t, err)
	require.Len(t, density, 400)
	assert.Greater(t, bw, 0.0)
	assert.InDelta(t, 1, integral(density), 0.01)
	assert.Equal(t, snapshot, values)

	again, _, err := k.Kdensity()
	require.NoError(t, err)
	assert.Equal(t, density, again)
}

func TestKdensityClipped(t *testing.T) {
	values := draws(t, 3000, 2)
	clip := &model.Clip{Lower: 0.5, Upper: math.Inf(1)}

	k, err := NewKDEUnivariate(values, nil, 1, 0, clip, WithGridSize(300))
	require.NoError(t, err)
	for _, x := range k.Endog {
		require.GreaterOrEqual(t, x, 0.5)
	}

	density, _, err := k.Kdensity()
	require.NoError(t, err)
	assert.Equal(t, 0.5, density[0].X)
	for _, d := range density {
		assert.GreaterOrEqual(t, d.Value, 0.0)
	}
}

func TestQuantile(t *testing.T) {
	values := draws(t, 500, 3)
	k, err := NewKDEUnivariate(values, nil, 1, 0, nil, WithGridSize(200))
	require.NoError(t, err)

	median, err := k.Quantile(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0, median.Value, 0.15)

	q90, err := k.Quantile(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 1.2816, q90.Value, 0.3)
	assert.Greater(t, q90.Value, median.Value)

	cdf, err := k.Cdf()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cdf[0].Value)
	assert.InDelta(t, 1, cdf[len(cdf)-1].Value, 0.01)
}

func TestNewKDEUnivariateInvalid(t *testing.T) {
	_, err := NewKDEUnivariate(nil, nil, 1, 0, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = NewKDEUnivariate([]float64{1, 2}, []float64{1}, 1, 0, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = NewKDEUnivariate([]float64{1, 2}, nil, 1, 0, &model.Clip{Lower: 5, Upper: 6})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestWeightsFollowSort(t *testing.T) {
	k, err := NewKDEUnivariate([]float64{3, 1, 2}, []float64{30, 10, 20}, 1, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, k.Endog)
	assert.Equal(t, []float64{10, 20, 30}, k.Weights)
}

func TestBandWidth(t *testing.T) {
	assert.InDelta(t, 1.0592, NewGaussianKernel().NormalReferenceConstant(), 1e-4)

	values, _ := sortPaired(draws(t, 1000, 4), InitOnes(1000))
	silverman := NewNormalReferenceBandWidth(nil).BandWidth(values)
	scott := ScottBandWidth{}.BandWidth(values)
	assert.InDelta(t, silverman, scott, 1e-3)
}

func TestEstimate(t *testing.T) {
	ctx := context.Background()

	_, err := Estimate(ctx, []float64{1, 2, 3}, 0, 100)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	values := draws(t, 1000, 5)
	density, err := Estimate(ctx, values, -0.25, 0)
	require.NoError(t, err)
	assert.Len(t, density, DefaultGridSize)
	assert.Equal(t, -0.25, density[0].X)
}

func TestParseBandWidth(t *testing.T) {
	values, _ := sortPaired(draws(t, 1000, 6), InitOnes(1000))

	normal, err := ParseBandWidth("")
	require.NoError(t, err)
	silverman, err := ParseBandWidth(" Silverman ")
	require.NoError(t, err)
	assert.Less(t, silverman.BandWidth(values), normal.BandWidth(values))

	scott, err := ParseBandWidth(BandWidthScott)
	require.NoError(t, err)
	assert.Equal(t, ScottBandWidth{}, scott)

	_, err = ParseBandWidth("wide")
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestEstimateWithBandWidth(t *testing.T) {
	ctx := context.Background()
	values := draws(t, 1000, 7)

	normal, err := Estimate(ctx, values, -5, 256)
	require.NoError(t, err)
	narrow, err := Estimate(ctx, values, -5, 256, WithBandWidth(SilvermanBandWidth{}))
	require.NoError(t, err)

	// a narrower kernel leaves less of the grid past the data
	assert.Greater(t, narrow[0].X, normal[0].X)
}

func TestQuantiles(t *testing.T) {
	ctx := context.Background()

	_, err := Quantiles(ctx, []float64{1, 2}, 0, []float64{0.5})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	values := draws(t, 2000, 8)
	ps := []float64{0.1, 0.5, 0.9}
	quantiles, err := Quantiles(ctx, values, math.Inf(-1), ps, WithBandWidth(ScottBandWidth{}))
	require.NoError(t, err)
	require.Len(t, quantiles, len(ps))

	for i, q := range quantiles {
		assert.Equal(t, ps[i], q.Quantile)
		// rounded to 3 decimals
		assert.Equal(t, utils.FormatFloat(q.Value, 3), q.Value)
		if i > 0 {
			assert.Greater(t, q.Value, quantiles[i-1].Value)
		}
	}
	assert.InDelta(t, 0, quantiles[1].Value, 0.15)
	assert.InDelta(t, 1.2816, quantiles[2].Value, 0.3)
}
