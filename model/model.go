package model

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
)

type NormalParameters struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
}

func (p NormalParameters) DebugString() string {
	return fmt.Sprintf("mean: %v, stdDev: %v", p.Mean, p.StdDev)
}

// TruncatedSample holds draws that all satisfy Value >= Threshold.
type TruncatedSample struct {
	Threshold float64
	Values    []float64
}

func (s *TruncatedSample) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Values) == 0
}

func (s *TruncatedSample) DebugString() string {
	return fmt.Sprintf("threshold: %v, valueCount: %v", s.Threshold, len(s.Values))
}

// DensityGrid is a conditional density evaluated on equally spaced points.
// Bounds are the limits Z was computed over, which may extend past the grid.
type DensityGrid struct {
	Points []Density
	Params NormalParameters
	Bounds Clip
	Z      float64
}

func (g *DensityGrid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Points)
}

func (g *DensityGrid) Xs() []float64 {
	res := make([]float64, g.Len())
	for i, p := range g.Points {
		res[i] = p.X
	}
	return res
}

func (g *DensityGrid) Values() []float64 {
	res := make([]float64, g.Len())
	for i, p := range g.Points {
		res[i] = p.Value
	}
	return res
}

// Integral is the trapezoid-rule integral of the grid over its own domain.
func (g *DensityGrid) Integral() float64 {
	if g.Len() < 2 {
		return 0
	}
	return integrate.Trapezoidal(g.Xs(), g.Values())
}

type SampleSummary struct {
	Count       int                `json:"count"`
	Mean        float64            `json:"mean"`
	StdDev      float64            `json:"std_dev"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Percentiles map[string]float64 `json:"percentiles,omitempty"`
}
