package render

import (
	"io"

	"github.com/uyouii/truncated-density/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var curveColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 127, B: 14, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// ChartRenderer draws PNG with go-chart.
type ChartRenderer struct {
	width, height int
}

func NewChartRenderer(width, height int) *ChartRenderer {
	return &ChartRenderer{width: width, height: height}
}

func (r *ChartRenderer) Extension() string {
	return FormatPNG
}

func (r *ChartRenderer) Render(w io.Writer, c *model.OverlayChart) error {
	if err := checkChart(c); err != nil {
		return err
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "x"},
		YAxis:      chart.YAxis{Name: "density", Range: &chart.ContinuousRange{Min: 0, Max: 1.05 * maxDensity(c)}},
		Series:     chartSeries(c),
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

func chartSeries(c *model.OverlayChart) []chart.Series {
	series := []chart.Series{}

	if len(c.Histogram) > 0 {
		xs, ys := histogramSteps(c.Histogram)
		// close the outline on the x axis so the fill sits on y = 0
		xs = append(append([]float64{xs[0]}, xs...), xs[len(xs)-1])
		ys = append(append([]float64{0}, ys...), 0)
		series = append(series, chart.ContinuousSeries{
			Name:    "histogram",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 1,
				FillColor:   drawing.Color{R: 192, G: 192, B: 192, A: 160},
			},
		})
	}

	for i, s := range c.Curves {
		points := thin(s.Points, maxPlotPoints)
		xs, ys := make([]float64, len(points)), make([]float64, len(points))
		for j, p := range points {
			xs[j], ys[j] = p.X, p.Value
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: curveColors[i%len(curveColors)],
				StrokeWidth: 2,
			},
		})
	}
	return series
}
