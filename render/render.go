package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/uyouii/truncated-density/common"
	"github.com/uyouii/truncated-density/model"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatTXT = "txt"
)

// maxPlotPoints caps the points drawn per curve; a 10000-point grid adds nothing visible.
const maxPlotPoints = 1000

// Renderer draws an overlay chart to w.
type Renderer interface {
	Render(w io.Writer, chart *model.OverlayChart) error
	Extension() string
}

func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatTXT}
}

func IsFormat(format string) bool {
	for _, f := range Formats() {
		if strings.EqualFold(format, f) {
			return true
		}
	}
	return false
}

func New(format string, width, height int) (Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("chart size %dx%d: %w", width, height, common.ErrorInvalidValue)
	}
	switch strings.ToLower(format) {
	case FormatSVG:
		return NewGGRenderer(width, height), nil
	case FormatPNG:
		return NewChartRenderer(width, height), nil
	case FormatTXT:
		return NewTableRenderer(0), nil
	}
	return nil, fmt.Errorf("unknown format %q: %w", format, common.ErrorInvalidValue)
}

func checkChart(chart *model.OverlayChart) error {
	if chart == nil {
		return fmt.Errorf("nil chart: %w", common.ErrorInvalidValue)
	}
	if len(chart.Histogram) == 0 && len(chart.Curves) == 0 {
		return fmt.Errorf("chart %q has nothing to draw: %w", chart.Title, common.ErrorInvalidValue)
	}
	for _, s := range chart.Curves {
		if len(s.Points) < 2 {
			return fmt.Errorf("curve %q has %d points: %w", s.Name, len(s.Points), common.ErrorInvalidValue)
		}
	}
	return nil
}

// thin keeps at most n points, always including both ends.
func thin(points []model.Density, n int) []model.Density {
	if n < 2 || len(points) <= n {
		return points
	}
	res := make([]model.Density, 0, n)
	step := float64(len(points)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		res = append(res, points[int(math.Round(float64(i)*step))])
	}
	return res
}

// histogramSteps traces the bar tops left to right. Each bar ends one ulp before
// the next begins so x stays strictly increasing.
func histogramSteps(bins []model.HistogramBin) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(bins))
	ys := make([]float64, 0, 2*len(bins))
	for i, b := range bins {
		end := b.Upper
		if i < len(bins)-1 {
			end = math.Nextafter(b.Upper, math.Inf(-1))
		}
		xs = append(xs, b.Lower, end)
		ys = append(ys, b.Density, b.Density)
	}
	return xs, ys
}

func maxDensity(chart *model.OverlayChart) float64 {
	res := 0.0
	for _, b := range chart.Histogram {
		res = math.Max(res, b.Density)
	}
	for _, s := range chart.Curves {
		for _, p := range s.Points {
			res = math.Max(res, p.Value)
		}
	}
	return res
}
