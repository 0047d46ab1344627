package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/firedash/internal/analysis"
)

// corrGrid exposes a CorrMatrix as a heat map grid with row 0 on top.
type corrGrid struct{ m analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(len(g.m.Columns) - 1 - r) }

// redScale is a light to dark sequential palette.
type redScale []color.Color

func (p redScale) Colors() []color.Color { return p }

func newRedScale(n int) redScale {
	p := make(redScale, n)
	for i := range p {
		p[i] = shade(float64(i) / float64(n-1))
	}
	return p
}

// CorrelationHeatmap plots the correlation matrix with each value printed
// in its cell.
func CorrelationHeatmap(m analysis.CorrMatrix) (*plot.Plot, error) {
	const title = "Correlation Between Variables"
	n := len(m.Columns)
	if n == 0 || len(m.Values) != n {
		return emptyPlot(title), nil
	}
	g := corrGrid{m: m}
	hm := plotter.NewHeatMap(g, newRedScale(16))
	hm.Min, hm.Max = -1, 1

	p := newPlot(title, "", "")
	p.Add(hm)

	var xyl plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf("%.2f", m.Values[r][c]))
		}
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	yNames := make([]string, n)
	for i, name := range m.Columns {
		yNames[n-1-i] = name
	}
	p.NominalX(m.Columns...)
	p.NominalY(yNames...)
	rotateX(p)
	return p, nil
}
