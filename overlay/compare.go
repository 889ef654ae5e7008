package overlay

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/config"
	"github.com/uyouii/truncated-density/histogram"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/sampler"
	"github.com/uyouii/truncated-density/truncnorm"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type ComparisonEntry struct {
	Threshold  float64
	SampleSize int
	Grid       *model.DensityGrid
	// SupportZ is P(X >= Threshold) under the generating distribution.
	SupportZ float64
}

type Comparison struct {
	Chart   *model.OverlayChart
	Entries []ComparisonEntry
}

// Compare truncates one raw sample at every threshold and evaluates each
// truncation concurrently. Entries are sorted by threshold; the histogram is
// the one for the lowest threshold.
func Compare(ctx context.Context, cfg *config.Config, thresholds []float64) (*Comparison, error) {
	logger := utils.GetLogger(ctx)

	if len(thresholds) == 0 {
		return nil, fmt.Errorf("no thresholds to compare: %w", common.ErrorInvalidValue)
	}
	thresholds = append([]float64(nil), thresholds...)
	sort.Float64s(thresholds)

	raw, err := sampler.Draw(cfg.Params(), cfg.SampleSize, cfg.Seed)
	if err != nil {
		logger.Error("draw sample failed", zap.Error(err))
		return nil, err
	}

	evaluator := truncnorm.NewEvaluator(cfg.EvaluatorOptions()...)
	entries := make([]ComparisonEntry, len(thresholds))
	errs := make([]error, len(thresholds))

	var wg sync.WaitGroup
	for i, threshold := range thresholds {
		wg.Add(1)
		go func(i int, threshold float64) {
			defer wg.Done()
			entries[i], errs[i] = compareOne(ctx, evaluator, cfg.Params(), raw, threshold)
		}(i, threshold)
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		logger.Error("compare thresholds failed", zap.Error(err))
		return nil, err
	}

	lowest := sampler.Truncate(raw, thresholds[0])
	bins, err := histogram.Density(lowest.Values, cfg.Bins)
	if err != nil {
		return nil, err
	}

	chart := &model.OverlayChart{
		Title:     fmt.Sprintf("Normal(%g, %g) truncated at %v", cfg.Mean, cfg.StdDev, thresholds),
		Threshold: thresholds[0],
		Histogram: bins,
	}
	for _, e := range entries {
		chart.Curves = append(chart.Curves, model.Series{
			Name:   fmt.Sprintf("threshold %g", e.Threshold),
			Points: e.Grid.Points,
		})
	}

	logger.Info("compare thresholds success", zap.Int("thresholdCnt", len(thresholds)))
	return &Comparison{Chart: chart, Entries: entries}, nil
}

func compareOne(ctx context.Context, evaluator *truncnorm.Evaluator, params model.NormalParameters,
	raw []float64, threshold float64) (ComparisonEntry, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonEntry{}, err
	}

	sample := sampler.Truncate(raw, threshold)
	grid, err := evaluator.Evaluate(sample.Values, threshold)
	if err != nil {
		return ComparisonEntry{}, fmt.Errorf("threshold %g: %w", threshold, err)
	}

	supportZ, err := truncnorm.NormalizationConstant(params, threshold, math.Inf(1))
	if err != nil {
		return ComparisonEntry{}, fmt.Errorf("threshold %g: %w", threshold, err)
	}

	return ComparisonEntry{
		Threshold:  threshold,
		SampleSize: len(sample.Values),
		Grid:       grid,
		SupportZ:   supportZ,
	}, nil
}
