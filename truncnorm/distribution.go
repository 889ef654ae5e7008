package truncnorm

import (
	"math"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/utils"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a normal distribution conditioned on Bounds.Lower <= X <= Bounds.Upper.
type Distribution struct {
	Params model.NormalParameters
	Bounds model.Clip

	normal distuv.Normal
	z      float64
}

func NewDistribution(params model.NormalParameters, bounds model.Clip) (*Distribution, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if math.IsNaN(bounds.Lower) || math.IsNaN(bounds.Upper) || !(bounds.Lower < bounds.Upper) {
		return nil, common.NewInvalidInputError("bounds [%v, %v] are empty", bounds.Lower, bounds.Upper)
	}

	normal := distuv.Normal{Mu: params.Mean, Sigma: params.StdDev}
	z := mass(normal, bounds.Lower, bounds.Upper)
	if !(z > 0) {
		return nil, common.NewInvalidInputError("no probability mass in [%v, %v]", bounds.Lower, bounds.Upper)
	}

	return &Distribution{
		Params: params,
		Bounds: bounds,
		normal: normal,
		z:      z,
	}, nil
}

// NormalizationConstant is P(lower <= X <= upper) for X ~ Normal(params).
func NormalizationConstant(params model.NormalParameters, lower, upper float64) (float64, error) {
	if err := checkParams(params); err != nil {
		return 0, err
	}
	if lower > upper {
		return 0, common.NewInvalidInputError("lower bound %v above upper bound %v", lower, upper)
	}
	return mass(distuv.Normal{Mu: params.Mean, Sigma: params.StdDev}, lower, upper), nil
}

// mass differences upper tails above the mean and lower tails below it.
// Tails come from Erfc so they keep relative precision where 1 - CDF rounds to zero.
func mass(normal distuv.Normal, lower, upper float64) float64 {
	if lower > normal.Mu {
		return upperTail(normal, lower) - upperTail(normal, upper)
	}
	return lowerTail(normal, upper) - lowerTail(normal, lower)
}

// upperTail is P(X > x).
func upperTail(normal distuv.Normal, x float64) float64 {
	return 0.5 * math.Erfc((x-normal.Mu)/(normal.Sigma*math.Sqrt2))
}

// lowerTail is P(X < x).
func lowerTail(normal distuv.Normal, x float64) float64 {
	return 0.5 * math.Erfc(-(x-normal.Mu)/(normal.Sigma*math.Sqrt2))
}

func checkParams(params model.NormalParameters) error {
	if math.IsNaN(params.Mean) || math.IsInf(params.Mean, 0) {
		return common.NewInvalidInputError("mean %v is not finite", params.Mean)
	}
	if !(params.StdDev > 0) || math.IsInf(params.StdDev, 0) {
		return common.NewInvalidInputError("standard deviation %v is not positive", params.StdDev)
	}
	return nil
}

func (d *Distribution) Z() float64 {
	return d.z
}

// Prob is the conditional density at x, zero outside the bounds.
func (d *Distribution) Prob(x float64) float64 {
	if x < d.Bounds.Lower || x > d.Bounds.Upper {
		return 0
	}
	return d.normal.Prob(x) / d.z
}

// Unconditional is the density of the untruncated normal at x.
func (d *Distribution) Unconditional(x float64) float64 {
	return d.normal.Prob(x)
}

func (d *Distribution) CDF(x float64) float64 {
	if x <= d.Bounds.Lower {
		return 0
	}
	if x >= d.Bounds.Upper {
		return 1
	}
	return math.Min(mass(d.normal, d.Bounds.Lower, x)/d.z, 1)
}

// Quantile inverts CDF. p outside [0, 1] gives NaN.
func (d *Distribution) Quantile(p float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	if p == 0 {
		return d.Bounds.Lower
	}
	if p == 1 {
		return d.Bounds.Upper
	}
	var x float64
	if d.Bounds.Lower > d.normal.Mu {
		// invert through the upper tail, P(X > x) = P(X > lower) - p*z
		q := upperTail(d.normal, d.Bounds.Lower) - p*d.z
		x = d.normal.Mu - d.normal.Sigma*distuv.UnitNormal.Quantile(clamp01(q))
	} else {
		q := lowerTail(d.normal, d.Bounds.Lower) + p*d.z
		x = d.normal.Mu + d.normal.Sigma*distuv.UnitNormal.Quantile(clamp01(q))
	}
	return math.Max(d.Bounds.Lower, math.Min(x, d.Bounds.Upper))
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(p, 1))
}

func (d *Distribution) QuantileValue(p float64) *model.QuantileValue {
	return &model.QuantileValue{
		Quantile: p,
		Value:    d.Quantile(p),
	}
}

func (d *Distribution) Mean() float64 {
	mu, sigma := d.Params.Mean, d.Params.StdDev
	alpha := (d.Bounds.Lower - mu) / sigma
	beta := (d.Bounds.Upper - mu) / sigma
	return mu + sigma*(unitProb(alpha)-unitProb(beta))/d.z
}

func unitProb(x float64) float64 {
	if math.IsInf(x, 0) {
		return 0
	}
	return distuv.UnitNormal.Prob(x)
}

// Grid evaluates the conditional density on gridSize equally spaced points in [start, stop].
func (d *Distribution) Grid(start, stop float64, gridSize int) []model.Density {
	xs := utils.Linspace(start, stop, gridSize)
	res := make([]model.Density, len(xs))
	for i, x := range xs {
		res[i] = model.Density{
			X:     x,
			Value: d.Prob(x),
		}
	}
	return res
}

// UnconditionalGrid is Grid for the untruncated density, used for comparison overlays.
func (d *Distribution) UnconditionalGrid(start, stop float64, gridSize int) []model.Density {
	xs := utils.Linspace(start, stop, gridSize)
	res := make([]model.Density, len(xs))
	for i, x := range xs {
		res[i] = model.Density{
			X:     x,
			Value: d.normal.Prob(x),
		}
	}
	return res
}
