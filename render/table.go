package render

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/uyouii/truncated-density/model"
)

const defaultTableRows = 25

// TableRenderer prints the chart data as plain text tables, one for the
// histogram and one per curve.
type TableRenderer struct {
	rows int
}

func NewTableRenderer(rows int) *TableRenderer {
	if rows < 2 {
		rows = defaultTableRows
	}
	return &TableRenderer{rows: rows}
}

func (r *TableRenderer) Extension() string {
	return FormatTXT
}

func (r *TableRenderer) Render(w io.Writer, chart *model.OverlayChart) error {
	if err := checkChart(chart); err != nil {
		return err
	}

	if chart.Title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", chart.Title); err != nil {
			return err
		}
	}

	if len(chart.Histogram) > 0 {
		if _, err := fmt.Fprintf(w, "\n## histogram (%d bins)\n", len(chart.Histogram)); err != nil {
			return err
		}
		lower, upper := make([]float64, len(chart.Histogram)), make([]float64, len(chart.Histogram))
		counts, density := make([]int, len(chart.Histogram)), make([]float64, len(chart.Histogram))
		for i, b := range chart.Histogram {
			lower[i], upper[i], counts[i], density[i] = b.Lower, b.Upper, b.Count, b.Density
		}
		tab := new(table.Builder).
			Add("lower", lower).
			Add("upper", upper).
			Add("count", counts).
			Add("density", density).
			Done()
		if err := table.Fprint(w, tab, "%.4f", "%.4f", "%d", "%.6f"); err != nil {
			return err
		}
	}

	for _, s := range chart.Curves {
		if _, err := fmt.Fprintf(w, "\n## %s (%d points)\n", s.Name, len(s.Points)); err != nil {
			return err
		}
		if err := WriteDensityTable(w, s.Points, r.rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteDensityTable prints x and density columns, thinned to at most rows lines.
func WriteDensityTable(w io.Writer, points []model.Density, rows int) error {
	points = thin(points, rows)
	xs, ys := make([]float64, len(points)), make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Value
	}
	tab := new(table.Builder).
		Add("x", xs).
		Add("density", ys).
		Done()
	return table.Fprint(w, tab, "%.6f", "%.6f")
}
