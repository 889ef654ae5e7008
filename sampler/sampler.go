package sampler

import (
	"fmt"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Draw returns n independent Normal(params) values. The same seed gives the same values.
func Draw(params model.NormalParameters, n int, seed uint64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample size %d: %w", n, common.ErrorInvalidValue)
	}
	if !(params.StdDev > 0) {
		return nil, fmt.Errorf("standard deviation %v: %w", params.StdDev, common.ErrorInvalidValue)
	}

	normal := distuv.Normal{
		Mu:    params.Mean,
		Sigma: params.StdDev,
		Src:   rand.NewSource(seed),
	}

	res := make([]float64, n)
	for i := range res {
		res[i] = normal.Rand()
	}
	return res, nil
}

// Truncate keeps the values >= threshold in their original order.
func Truncate(values []float64, threshold float64) *model.TruncatedSample {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= threshold {
			kept = append(kept, v)
		}
	}
	return &model.TruncatedSample{
		Threshold: threshold,
		Values:    kept,
	}
}

func DrawTruncated(params model.NormalParameters, n int, threshold float64, seed uint64) (*model.TruncatedSample, error) {
	values, err := Draw(params, n, seed)
	if err != nil {
		return nil, err
	}
	sample := Truncate(values, threshold)
	if sample.IsEmpty() {
		return nil, common.NewInvalidInputError("no value of %d draws is >= %v", n, threshold)
	}
	return sample, nil
}
