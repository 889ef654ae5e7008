package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/kde"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/truncnorm"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "truncdensity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.NormalParameters{Mean: 0, StdDev: 1}, cfg.Params())
	assert.Equal(t, truncnorm.DefaultGridSize, cfg.GridSize)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
mean: 10
std_dev: 2.5
threshold: 12
grid_size: 2000
normalization: support
format: png
kde: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10.0, cfg.Mean)
	assert.Equal(t, 2.5, cfg.StdDev)
	assert.Equal(t, 12.0, cfg.Threshold)
	assert.Equal(t, 2000, cfg.GridSize)
	assert.Equal(t, "support", cfg.Normalization)
	assert.Equal(t, "png", cfg.Format)
	assert.True(t, cfg.KDE)
	// untouched keys keep their defaults
	assert.Equal(t, 10000, cfg.SampleSize)
	assert.Equal(t, 50, cfg.Bins)

	evaluator := truncnorm.NewEvaluator(cfg.EvaluatorOptions()...)
	assert.Equal(t, 2000, evaluator.GridSize())
	assert.Equal(t, truncnorm.NormalizeSupport, evaluator.Normalization())
}

func TestBandwidthOption(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for name, rule := range map[string]kde.BandWidth{
		"":          kde.NewNormalReferenceBandWidth(nil),
		"normal":    kde.NewNormalReferenceBandWidth(nil),
		"Scott":     kde.ScottBandWidth{},
		"silverman": kde.SilvermanBandWidth{},
	} {
		cfg, err := Load(writeConfig(t, "bandwidth: "+strconv.Quote(name)+"\n"))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		k, err := kde.NewKDEUnivariate(values, nil, 1, 0, nil, cfg.KDEOptions()...)
		require.NoError(t, err)
		_, bw, err := k.Kdensity()
		require.NoError(t, err)
		assert.InDelta(t, rule.BandWidth(values), bw, 1e-12, "bandwidth %q", name)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "threshold: 1.5\nbins: 20\n")
	t.Setenv("TRUNCDENSITY_THRESHOLD", "0.25")
	t.Setenv("TRUNCDENSITY_SEED", "99")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Threshold)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 20, cfg.Bins)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "mean: [1, 2"))
	assert.Error(t, err)

	t.Setenv("TRUNCDENSITY_GRID_SIZE", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.StdDev = 0
	cfg.Bins = 0
	cfg.Format = "gif"
	cfg.Normalization = "tail"
	cfg.Bandwidth = "wide"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}
