package sampler

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
)

var SummaryPercentiles = []int{1, 5, 25, 50, 75, 95, 99}

func Describe(values []float64) (*model.SampleSummary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("describe empty sample: %w", common.ErrorInvalidValue)
	}

	s := stats.Sample{Xs: append([]float64(nil), values...)}
	s.Sort()

	lo, hi := s.Bounds()
	summary := &model.SampleSummary{
		Count:       len(s.Xs),
		Mean:        s.Mean(),
		StdDev:      s.StdDev(),
		Min:         lo,
		Max:         hi,
		Percentiles: make(map[string]float64, len(SummaryPercentiles)),
	}
	for _, p := range SummaryPercentiles {
		summary.Percentiles[fmt.Sprintf("p%d", p)] = s.Quantile(float64(p) / 100)
	}
	return summary, nil
}
