package model

import "fmt"

type Clip struct {
	Lower float64
	Upper float64
}

type Density struct {
	X     float64
	Value float64
}

type Cdf struct {
	X     float64
	Value float64
}

type QuantileValue struct {
	Value    float64 `json:"v,omitempty"`
	Quantile float64 `json:"q,omitempty"`
}

// HistogramBin covers [Lower, Upper). The last bin of a histogram also holds Upper.
type HistogramBin struct {
	Lower   float64 `json:"l"`
	Upper   float64 `json:"u"`
	Count   int     `json:"c"`
	Density float64 `json:"d"`
}

func (b HistogramBin) Width() float64 {
	return b.Upper - b.Lower
}

type Series struct {
	Name   string
	Points []Density
}

// OverlayChart is everything a renderer needs to draw one density histogram
// with its overlay curves.
type OverlayChart struct {
	Title     string
	Threshold float64
	Histogram []HistogramBin
	Curves    []Series
}

func (c *OverlayChart) DebugString() string {
	names := make([]string, 0, len(c.Curves))
	for _, s := range c.Curves {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("title: %q, bins: %v, curves: %v", c.Title, len(c.Histogram), names)
}
