// Package charts draws dashboard views with gonum/plot.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/dataset"
)

// Size is the output canvas size.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize is 8x5 inches.
func DefaultSize() Size { return Size{Width: 8 * vg.Inch, Height: 5 * vg.Inch} }

// SizeInches converts configured inches, falling back to DefaultSize.
func SizeInches(w, h float64) Size {
	s := DefaultSize()
	if w > 0 {
		s.Width = vg.Length(w) * vg.Inch
	}
	if h > 0 {
		s.Height = vg.Length(h) * vg.Inch
	}
	return s
}

// ErrUnknownChart is returned for a chart name that is not registered.
var ErrUnknownChart = errors.New("unknown chart")

// Builder turns a view into a plot.
type Builder func(v *analysis.View) (*plot.Plot, error)

var builders = map[string]Builder{
	"regions":          func(v *analysis.View) (*plot.Plot, error) { return RegionBars(v.RegionTotals) },
	"districts":        func(v *analysis.View) (*plot.Plot, error) { return TopDistrictBars(v.TopDistricts) },
	"causes":           func(v *analysis.View) (*plot.Plot, error) { return CausePie(v.CauseTotals) },
	"causes-by-region": func(v *analysis.View) (*plot.Plot, error) { return CausesByRegion(v.CausesByRegion) },
	"district-causes":  func(v *analysis.View) (*plot.Plot, error) { return DistrictCauseLines(v.TopDistrictCauses) },
	"subdistricts":     func(v *analysis.View) (*plot.Plot, error) { return TopSubdistrictBars(v.TopSubdistricts) },
	"highest-risk":     func(v *analysis.View) (*plot.Plot, error) { return BreakdownBars(v.HighestRisk) },
	"correlation":      func(v *analysis.View) (*plot.Plot, error) { return CorrelationHeatmap(v.Correlation) },
	"treemap":          func(v *analysis.View) (*plot.Plot, error) { return Treemap(v.Hierarchy) },
}

// Names lists the registered charts in a stable order.
func Names() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Render draws the named chart of v to w. format is "png" or "svg".
func Render(w io.Writer, v *analysis.View, name string, size Size, format string) error {
	b, ok := builders[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
	p, err := b(v)
	if err != nil {
		return fmt.Errorf("build %s chart: %w", name, err)
	}
	return Write(w, p, size, format)
}

// Write encodes p to w.
func Write(w io.Writer, p *plot.Plot, size Size, format string) error {
	if format == "" {
		format = "png"
	}
	wt, err := p.WriterTo(size.Width, size.Height, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// Sequential reds, darkest first.
var reds = []color.Color{
	color.RGBA{R: 103, G: 0, B: 13, A: 255},
	color.RGBA{R: 165, G: 15, B: 21, A: 255},
	color.RGBA{R: 203, G: 24, B: 29, A: 255},
	color.RGBA{R: 239, G: 59, B: 44, A: 255},
	color.RGBA{R: 251, G: 106, B: 74, A: 255},
	color.RGBA{R: 252, G: 146, B: 114, A: 255},
}

var barColor = color.RGBA{R: 203, G: 24, B: 29, A: 255}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func emptyPlot(title string) *plot.Plot {
	p := newPlot(title+" (no data)", "", "")
	p.HideAxes()
	return p
}

func rotateX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// bars draws one series. Horizontal bars list labels bottom to top.
func bars(p *plot.Plot, labels []string, values []float64, horizontal bool) error {
	b, err := plotter.NewBarChart(plotter.Values(values), vg.Points(16))
	if err != nil {
		return err
	}
	b.Color = barColor
	b.LineStyle.Width = vg.Length(0)
	b.Horizontal = horizontal
	p.Add(plotter.NewGrid(), b)
	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
		rotateX(p)
	}
	return nil
}

// RegionBars plots summed frequency per region.
func RegionBars(groups []analysis.GroupTotal) (*plot.Plot, error) {
	const title = "Fires by Region"
	if len(groups) == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "Region", "Fires")
	labels := make([]string, len(groups))
	values := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		values[i] = float64(g.Value)
	}
	if err := bars(p, labels, values, false); err != nil {
		return nil, err
	}
	return p, nil
}

// TopDistrictBars plots ranked districts, largest at the top.
func TopDistrictBars(groups []analysis.GroupTotal) (*plot.Plot, error) {
	const title = "Districts with the Most Fires"
	if len(groups) == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "Fires", "")
	n := len(groups)
	labels := make([]string, n)
	values := make([]float64, n)
	for i, g := range groups {
		labels[n-1-i] = g.Key
		values[n-1-i] = float64(g.Value)
	}
	if err := bars(p, labels, values, true); err != nil {
		return nil, err
	}
	return p, nil
}

// TopSubdistrictBars plots the highest-frequency rows, largest at the top.
func TopSubdistrictBars(rows []dataset.Record) (*plot.Plot, error) {
	const title = "Highest-Risk Sub-districts"
	if len(rows) == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "Fires", "")
	n := len(rows)
	labels := make([]string, n)
	values := make([]float64, n)
	for i, r := range rows {
		labels[n-1-i] = r.Subdistrict
		values[n-1-i] = float64(r.Frequency)
	}
	if err := bars(p, labels, values, true); err != nil {
		return nil, err
	}
	return p, nil
}

// BreakdownBars plots the six causes of one location.
func BreakdownBars(b *analysis.Breakdown) (*plot.Plot, error) {
	const title = "Cause Breakdown"
	if b == nil {
		return emptyPlot(title), nil
	}
	p := newPlot(title+": "+b.Name, "Cause", "Fires")
	labels := make([]string, 0, len(dataset.Causes))
	values := make([]float64, 0, len(dataset.Causes))
	for _, c := range dataset.Causes {
		labels = append(labels, c.Label())
		values = append(values, float64(b.Causes.Get(c)))
	}
	if err := bars(p, labels, values, false); err != nil {
		return nil, err
	}
	return p, nil
}
