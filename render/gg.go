package render

import (
	"image/color"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/uyouii/truncated-density/model"
)

// GGRenderer draws SVG with the go-gg grammar of graphics: the histogram is a
// shaded area layer and every curve a line layer colored by series name.
type GGRenderer struct {
	width, height int
}

func NewGGRenderer(width, height int) *GGRenderer {
	return &GGRenderer{width: width, height: height}
}

func (r *GGRenderer) Extension() string {
	return FormatSVG
}

func (r *GGRenderer) Render(w io.Writer, chart *model.OverlayChart) error {
	if err := checkChart(chart); err != nil {
		return err
	}

	plot := gg.NewPlot(histogramTable(chart.Histogram))

	// Always show Y=0.
	plot.SetScale("y", gg.NewLinearScaler().Include(0))

	if len(chart.Histogram) > 0 {
		plot.Add(gg.LayerArea{
			X:     "x",
			Upper: "density",
			Fill:  plot.Const(color.Gray{192}),
		})
	}

	if len(chart.Curves) > 0 {
		plot.SetData(curveTable(chart.Curves))
		plot.Add(gg.LayerLines{
			X:     "x",
			Y:     "density",
			Color: "series",
		})
	}

	plot.Add(gg.AxisLabel("x", "x"), gg.AxisLabel("y", "density"))
	if chart.Title != "" {
		plot.Add(gg.Title(chart.Title))
	}

	return plot.WriteSVG(w, r.width, r.height)
}

func histogramTable(bins []model.HistogramBin) *table.Table {
	xs, ys := histogramSteps(bins)
	return new(table.Builder).
		Add("x", xs).
		Add("density", ys).
		Done()
}

func curveTable(curves []model.Series) *table.Table {
	var xs, ys []float64
	var names []string
	for _, s := range curves {
		for _, p := range thin(s.Points, maxPlotPoints) {
			xs = append(xs, p.X)
			ys = append(ys, p.Value)
			names = append(names, s.Name)
		}
	}
	return new(table.Builder).
		Add("x", xs).
		Add("density", ys).
		Add("series", names).
		Done()
}
