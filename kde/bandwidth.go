package kde

import (
	"fmt"
	"math"
	"strings"

	"github.com/uyouii/truncated-density/common"
	"gonum.org/v1/gonum/stat"
)

const (
	BandWidthNormalReference = "normal"
	BandWidthScott           = "scott"
	BandWidthSilverman       = "silverman"
)

type BandWidth interface {
	BandWidth([]float64) float64
}

// NormalReferenceBandWidth is the rule of thumb bandwidth C * min(sd, IQR/1.349) * n^(-1/5),
// with C taken from the kernel.
type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGaussianKernel()
	}
	return &NormalReferenceBandWidth{
		kernel: kernel,
	}
}

func (bw *NormalReferenceBandWidth) BandWidth(x []float64) float64 {
	C := bw.kernel.NormalReferenceConstant()
	A := selectSigma(x)
	n := len(x)
	return C * A * math.Pow(float64(n), -0.2)
}

// ScottBandWidth is 1.059 * min(sd, IQR/1.349) * n^(-1/5).
type ScottBandWidth struct{}

func (ScottBandWidth) BandWidth(x []float64) float64 {
	return 1.059 * selectSigma(x) * math.Pow(float64(len(x)), -0.2)
}

// SilvermanBandWidth is 0.9 * min(sd, IQR/1.349) * n^(-1/5).
type SilvermanBandWidth struct{}

func (SilvermanBandWidth) BandWidth(x []float64) float64 {
	return 0.9 * selectSigma(x) * math.Pow(float64(len(x)), -0.2)
}

// ParseBandWidth maps a rule name to its BandWidth. The empty name is the normal reference rule.
func ParseBandWidth(name string) (BandWidth, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BandWidthNormalReference:
		return NewNormalReferenceBandWidth(nil), nil
	case BandWidthScott:
		return ScottBandWidth{}, nil
	case BandWidthSilverman:
		return SilvermanBandWidth{}, nil
	}
	return nil, fmt.Errorf("unknown bandwidth %q: %w", name, common.ErrorInvalidValue)
}

// selectSigma expects x sorted.
func selectSigma(x []float64) float64 {
	normalize := 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, x, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, x, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(x, nil)

	if iqr > 0 {
		return math.Min(stdDev, iqr)
	}
	return stdDev
}
