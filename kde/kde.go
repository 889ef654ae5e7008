package kde

import (
	"math"
	"sort"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// KDEUnivariate is a Gaussian kernel density estimate of one sample.
type KDEUnivariate struct {
	Weights []float64

	gridSize int

	// An adjustment factor for the bw. Bandwidth becomes bw * adjust.
	bwAdjust float64

	// Defines the length of the grid past the lowest and highest values
	// of x so that the kernel goes to zero. The end points are
	// ``max(min(x) - cut * bw, lower)`` and ``min(max(x) + cut * bw, upper)``.
	cut float64

	// Grid never leaves [lower, upper]. A truncated sample has no mass
	// below its threshold, so the estimate is not drawn there.
	lower, upper float64

	bandWidth BandWidth

	// endogenous variable, sorted
	Endog []float64

	density []model.Density
	cdf     []model.Cdf
	grid    []float64
	bw      float64
	fited   bool
	kernel  *GaussianKernel
}

type Option func(*KDEUnivariate)

func WithGridSize(gridSize int) Option {
	return func(k *KDEUnivariate) {
		if gridSize > 1 {
			k.gridSize = gridSize
		}
	}
}

func WithBandWidth(bandWidth BandWidth) Option {
	return func(k *KDEUnivariate) {
		if bandWidth != nil {
			k.bandWidth = bandWidth
		}
	}
}

// NewKDEUnivariate copies endog; the caller's slice is left as is.
// Points outside clip are dropped and the grid stays inside it.
func NewKDEUnivariate(endog []float64, weights []float64,
	bwAdjust float64, cut float64, clip *model.Clip, opts ...Option) (*KDEUnivariate, error) {
	if len(endog) == 0 {
		return nil, common.ErrorInvalidValue
	}

	if len(weights) == 0 {
		weights = InitOnes(len(endog))
	} else if len(weights) != len(endog) {
		return nil, common.ErrorInvalidValue
	}

	endog, weights = sortPaired(endog, weights)

	if bwAdjust <= 0 {
		bwAdjust = DefaultBwAdjust
	}
	if cut == 0 {
		cut = DefaultCut
	}

	if clip != nil {
		endog, weights = Clip(endog, weights, clip)
		if len(endog) == 0 {
			return nil, common.ErrorInvalidValue
		}
	}
	lower, upper := clipBounds(clip)

	kde := &KDEUnivariate{
		Weights:  weights,
		gridSize: utils.IntMax(len(endog), 100),
		bwAdjust: bwAdjust,
		cut:      cut,
		lower:    lower,
		upper:    upper,
		Endog:    endog,
	}
	for _, opt := range opts {
		opt(kde)
	}
	if kde.bandWidth == nil {
		kde.bandWidth = NewNormalReferenceBandWidth(NewGaussianKernel())
	}

	return kde, nil
}

func sortPaired(x, weights []float64) ([]float64, []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	sortedX, sortedW := make([]float64, len(x)), make([]float64, len(x))
	for i, j := range idx {
		sortedX[i], sortedW[i] = x[j], weights[j]
	}
	return sortedX, sortedW
}

func (kde *KDEUnivariate) Kdensity() ([]model.Density, float64, error) {
	if kde.fited {
		return kde.density, kde.bw, nil
	}

	bw := kde.bandWidth.BandWidth(kde.Endog) * kde.bwAdjust
	if !(bw > 0) || math.IsInf(bw, 0) {
		return nil, 0, common.NewInvalidInputError("bandwidth %v is not positive", bw)
	}

	kernel := NewGaussianKernel()
	kernel.SetH(bw)
	kernel.SetWeights(kde.Weights)

	a := math.Max(floats.Min(kde.Endog)-kde.cut*bw, kde.lower)
	b := math.Min(floats.Max(kde.Endog)+kde.cut*bw, kde.upper)
	grid := utils.Linspace(a, b, kde.gridSize)

	res := make([]model.Density, len(grid))
	for i, x := range grid {
		res[i] = model.Density{
			X:     x,
			Value: math.Max(kernel.Density(kde.Endog, x), 0),
		}
	}

	kde.density = res
	kde.bw = bw
	kde.grid = grid
	kde.fited = true
	kde.kernel = kernel

	return res, bw, nil
}

// Cdf integrates the estimate from the start of the grid. With a clipped grid
// the last value is below 1 by the kernel mass that fell outside the clip.
func (kde *KDEUnivariate) Cdf() ([]model.Cdf, error) {
	if !kde.fited {
		if _, _, err := kde.Kdensity(); err != nil {
			return nil, err
		}
	}

	if len(kde.cdf) > 0 {
		return kde.cdf, nil
	}

	f := func(x float64) float64 {
		return kde.kernel.Density(kde.Endog, x)
	}

	res := make([]model.Cdf, 0, len(kde.grid))
	res = append(res, model.Cdf{X: kde.grid[0], Value: 0})

	var cumSum float64
	for i := 1; i < len(kde.grid); i++ {
		cumSum += quad.Fixed(f, kde.grid[i-1], kde.grid[i], cdfQuadNodes, nil, 0)
		res = append(res, model.Cdf{
			X:     kde.grid[i],
			Value: cumSum,
		})
	}

	kde.cdf = res
	return res, nil
}

func (kde *KDEUnivariate) Quantile(p float64) (*model.QuantileValue, error) {
	cdf, err := kde.Cdf()
	if err != nil {
		return nil, err
	}

	if p <= cdf[0].Value {
		return &model.QuantileValue{
			Quantile: p,
			Value:    cdf[0].X,
		}, nil
	}

	if p >= cdf[len(cdf)-1].Value {
		return &model.QuantileValue{
			Quantile: p,
			Value:    cdf[len(cdf)-1].X,
		}, nil
	}

	i := sort.Search(len(cdf), func(i int) bool { return cdf[i].Value > p })
	lowerX, lowerP := cdf[i-1].X, cdf[i-1].Value
	upperX, upperP := cdf[i].X, cdf[i].Value
	return &model.QuantileValue{
		Quantile: p,
		Value:    lowerX + (upperX-lowerX)*(p-lowerP)/(upperP-lowerP),
	}, nil
}
