package kde

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

// Estimate returns a kernel density estimate of values on gridSize points,
// never extending below lower. It is the empirical companion to the fitted
// truncated normal curve.
func Estimate(ctx context.Context, values []float64, lower float64, gridSize int,
	opts ...Option) (res []model.Density, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("kde Estimate recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("valueCnt", len(values)))
			res, err = nil, fmt.Errorf("kde estimate panic: %v", r)
		}
	}()

	if len(values) < MinEstimatePointCnt {
		logger.Error("point too little, skip kde", zap.Int("cnt", len(values)))
		return nil, common.NewInvalidInputError("kde needs at least %d points, got %d",
			MinEstimatePointCnt, len(values))
	}

	if gridSize <= 1 {
		gridSize = DefaultGridSize
	}

	k, err := NewKDEUnivariate(values, nil, DefaultBwAdjust, DefaultCut,
		&model.Clip{Lower: lower, Upper: math.Inf(1)}, append(opts, WithGridSize(gridSize))...)
	if err != nil {
		logger.Error("NewKDEUnivariate failed", zap.Error(err))
		return nil, err
	}

	density, bw, err := k.Kdensity()
	if err != nil {
		logger.Error("kde Kdensity failed", zap.Error(err))
		return nil, err
	}

	logger.Debug("kde Estimate success", zap.Float64("bw", bw), zap.Int("gridSize", len(density)))
	return density, nil
}

// Quantiles estimates the given quantiles of values, which must not extend below
// lower. Values are rounded to 3 decimals. A quantile that fails is logged and
// left out.
func Quantiles(ctx context.Context, values []float64, lower float64, ps []float64,
	opts ...Option) (res []*model.QuantileValue, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("kde Quantiles recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("valueCnt", len(values)))
			res, err = nil, fmt.Errorf("kde quantiles panic: %v", r)
		}
	}()

	if len(values) < MinEstimatePointCnt {
		logger.Error("point too little, skip kde quantiles", zap.Int("cnt", len(values)))
		return nil, common.NewInvalidInputError("kde needs at least %d points, got %d",
			MinEstimatePointCnt, len(values))
	}

	k, err := NewKDEUnivariate(values, nil, DefaultBwAdjust, DefaultCut,
		&model.Clip{Lower: lower, Upper: math.Inf(1)}, append(opts, WithGridSize(DefaultGridSize))...)
	if err != nil {
		logger.Error("NewKDEUnivariate failed", zap.Error(err))
		return nil, err
	}

	for _, p := range ps {
		quantile, err := k.Quantile(p)
		if err != nil {
			logger.Error("kde Quantile failed", zap.Error(err), zap.Float64("p", p))
			continue
		}
		quantile.Value = utils.FormatFloat(quantile.Value, 3)
		res = append(res, quantile)
	}

	return res, nil
}
