package overlay

import (
	"context"
	"fmt"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/config"
	"github.com/uyouii/truncated-density/histogram"
	"github.com/uyouii/truncated-density/kde"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/sampler"
	"github.com/uyouii/truncated-density/truncnorm"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

const (
	SeriesTruncated     = "truncated density"
	SeriesUnconditional = "unconditional density"
	SeriesKDE           = "kde"
)

type Result struct {
	Chart  *model.OverlayChart
	Sample *model.TruncatedSample
	Grid   *model.DensityGrid
}

// Build draws the sample described by cfg, truncates it and assembles the
// density histogram with the fitted truncated and unconditional curves.
func Build(ctx context.Context, cfg *config.Config) (*Result, error) {
	logger := utils.GetLogger(ctx)

	raw, err := sampler.Draw(cfg.Params(), cfg.SampleSize, cfg.Seed)
	if err != nil {
		logger.Error("draw sample failed", zap.Error(err))
		return nil, err
	}

	sample := sampler.Truncate(raw, cfg.Threshold)
	if len(sample.Values) < 2 {
		return nil, common.NewInvalidInputError("%d of %d draws are >= %v, need at least 2",
			len(sample.Values), len(raw), cfg.Threshold)
	}
	logger.Debug("truncate sample success", zap.String("sample", sample.DebugString()))

	bins, err := histogram.Density(sample.Values, cfg.Bins)
	if err != nil {
		logger.Error("histogram failed", zap.Error(err))
		return nil, err
	}

	evaluator := truncnorm.NewEvaluator(cfg.EvaluatorOptions()...)
	grid, err := evaluator.Evaluate(sample.Values, cfg.Threshold)
	if err != nil {
		logger.Error("evaluate truncated density failed", zap.Error(err))
		return nil, err
	}

	unconditional, err := unconditionalCurve(grid)
	if err != nil {
		return nil, err
	}

	chart := &model.OverlayChart{
		Title:     title(cfg.Params(), cfg.Threshold, len(sample.Values)),
		Threshold: cfg.Threshold,
		Histogram: bins,
		Curves: []model.Series{
			{Name: SeriesTruncated, Points: grid.Points},
			unconditional,
		},
	}

	if cfg.KDE {
		density, err := kde.Estimate(ctx, sample.Values, cfg.Threshold, min(cfg.GridSize, kde.DefaultGridSize),
			cfg.KDEOptions()...)
		if err != nil {
			// the fitted curves are still worth drawing
			logger.Warn("kde skipped", zap.Error(err))
		} else {
			chart.Curves = append(chart.Curves, model.Series{Name: SeriesKDE, Points: density})
		}
	}

	logger.Info("build overlay success",
		zap.Int("sampleCnt", len(sample.Values)),
		zap.String("params", grid.Params.DebugString()),
		zap.Float64("z", grid.Z),
		zap.Float64("integral", grid.Integral()))

	return &Result{
		Chart:  chart,
		Sample: sample,
		Grid:   grid,
	}, nil
}

func unconditionalCurve(grid *model.DensityGrid) (model.Series, error) {
	dist, err := truncnorm.NewDistribution(grid.Params, grid.Bounds)
	if err != nil {
		return model.Series{}, err
	}
	first, last := grid.Points[0].X, grid.Points[grid.Len()-1].X
	return model.Series{
		Name:   SeriesUnconditional,
		Points: dist.UnconditionalGrid(first, last, grid.Len()),
	}, nil
}

func title(params model.NormalParameters, threshold float64, n int) string {
	return fmt.Sprintf("Normal(%g, %g) truncated at %g, n = %d", params.Mean, params.StdDev, threshold, n)
}
