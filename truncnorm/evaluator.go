package truncnorm

import (
	"fmt"
	"math"
	"strings"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultGridSize = 10000

// Normalization selects the bounds the normalization constant Z is taken over.
type Normalization int

const (
	// NormalizeObservedRange divides by P(min(sample) <= X <= max(sample)),
	// so the grid integrates to 1 over the range it is drawn on.
	NormalizeObservedRange Normalization = iota
	// NormalizeSupport divides by P(X >= threshold), the support of the
	// truncated distribution.
	NormalizeSupport
)

func (n Normalization) String() string {
	switch n {
	case NormalizeObservedRange:
		return "range"
	case NormalizeSupport:
		return "support"
	}
	return fmt.Sprintf("Normalization(%d)", int(n))
}

func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "range":
		return NormalizeObservedRange, nil
	case "support":
		return NormalizeSupport, nil
	}
	return 0, fmt.Errorf("unknown normalization %q: %w", s, common.ErrorInvalidValue)
}

// Evaluator computes the density of a normal distribution conditioned on
// exceeding a threshold. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	gridSize      int
	normalization Normalization
}

type Option func(*Evaluator)

// WithGridSize sets the number of grid points. Values <= 0 keep DefaultGridSize.
func WithGridSize(gridSize int) Option {
	return func(e *Evaluator) {
		if gridSize > 0 {
			e.gridSize = gridSize
		}
	}
}

func WithNormalization(normalization Normalization) Option {
	return func(e *Evaluator) {
		e.normalization = normalization
	}
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		gridSize:      DefaultGridSize,
		normalization: NormalizeObservedRange,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) GridSize() int {
	return e.gridSize
}

func (e *Evaluator) Normalization() Normalization {
	return e.normalization
}

// Evaluate fits a normal distribution to sample and returns its density conditioned
// on the truncation, on a grid spanning [min(sample), max(sample)].
// The sample is expected to hold only values >= threshold; this is not checked.
func Evaluate(sample []float64, threshold float64, gridSize int) (*model.DensityGrid, error) {
	return NewEvaluator(WithGridSize(gridSize)).Evaluate(sample, threshold)
}

func (e *Evaluator) Evaluate(sample []float64, threshold float64) (*model.DensityGrid, error) {
	dist, err := e.Distribution(sample, threshold)
	if err != nil {
		return nil, err
	}

	lo, hi := floats.Min(sample), floats.Max(sample)

	return &model.DensityGrid{
		Points: dist.Grid(lo, hi, e.gridSize),
		Params: dist.Params,
		Bounds: dist.Bounds,
		Z:      dist.Z(),
	}, nil
}

// Distribution returns the fitted conditional distribution Evaluate samples from.
func (e *Evaluator) Distribution(sample []float64, threshold float64) (*Distribution, error) {
	params, err := Estimate(sample)
	if err != nil {
		return nil, err
	}

	var bounds model.Clip
	switch e.normalization {
	case NormalizeSupport:
		if math.IsNaN(threshold) || math.IsInf(threshold, 1) {
			return nil, common.NewInvalidInputError("threshold %v is not usable", threshold)
		}
		bounds = model.Clip{Lower: threshold, Upper: math.Inf(1)}
	default:
		bounds = model.Clip{Lower: floats.Min(sample), Upper: floats.Max(sample)}
	}

	return NewDistribution(params, bounds)
}

// Estimate returns the sample mean and the sample standard deviation (n-1 denominator).
func Estimate(sample []float64) (model.NormalParameters, error) {
	if len(sample) == 0 {
		return model.NormalParameters{}, common.NewInvalidInputError("sample is empty")
	}
	for _, v := range sample {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.NormalParameters{}, common.NewInvalidInputError("sample contains non-finite value %v", v)
		}
	}

	// rounding can leave a tiny positive spread on repeated values
	if floats.Min(sample) == floats.Max(sample) {
		return model.NormalParameters{}, common.NewInvalidInputError(
			"all %d values equal %v, standard deviation is zero", len(sample), sample[0])
	}

	mean, stdDev := stat.MeanStdDev(sample, nil)
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		return model.NormalParameters{}, common.NewInvalidInputError(
			"standard deviation %v of %d values is not positive", stdDev, len(sample))
	}

	return model.NormalParameters{
		Mean:   mean,
		StdDev: stdDev,
	}, nil
}
