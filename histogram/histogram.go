package histogram

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultBins = 50

// Density bins values into equal-width bins over [min, max] and scales the
// counts so the bars integrate to 1. The maximum value lands in the last bin.
func Density(values []float64, bins int) ([]model.HistogramBin, error) {
	if len(values) == 0 {
		return nil, common.NewInvalidInputError("cannot bin an empty sample")
	}
	if bins <= 0 {
		return nil, fmt.Errorf("bin count %d: %w", bins, common.ErrorInvalidValue)
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, common.NewInvalidInputError("sample range [%v, %v] is not finite", lo, hi)
	}
	if lo == hi {
		return nil, common.NewInvalidInputError("all values equal %v, bins have no width", lo)
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram bins are half open; nudge the last edge so hi is counted
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(make([]float64, bins), dividers, x, nil)

	width := (hi - lo) / float64(bins)
	n := float64(len(x))

	res := make([]model.HistogramBin, bins)
	for i := range res {
		upper := dividers[i+1]
		if i == bins-1 {
			upper = hi
		}
		res[i] = model.HistogramBin{
			Lower:   dividers[i],
			Upper:   upper,
			Count:   int(counts[i]),
			Density: counts[i] / (n * width),
		}
	}
	return res, nil
}

// Area is the total area of the bars, 1 for the output of Density.
func Area(bins []model.HistogramBin) float64 {
	area := 0.0
	for _, b := range bins {
		area += b.Density * b.Width()
	}
	return area
}
