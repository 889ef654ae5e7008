package kde

import (
	"math"

	"github.com/uyouii/truncated-density/model"
)

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// Clip drops the points (and their weights) outside [clip.Lower, clip.Upper].
func Clip(x []float64, weights []float64, clip *model.Clip) ([]float64, []float64) {
	if len(x) != len(weights) || clip == nil {
		// do nothing
		return x, weights
	}

	resX, resWeight := []float64{}, []float64{}
	for i := range x {
		if x[i] >= clip.Lower && x[i] <= clip.Upper {
			resX = append(resX, x[i])
			resWeight = append(resWeight, weights[i])
		}
	}
	return resX, resWeight
}

func InitOnes(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}

func clipBounds(clip *model.Clip) (float64, float64) {
	if clip == nil {
		return math.Inf(-1), math.Inf(1)
	}
	return clip.Lower, clip.Upper
}
