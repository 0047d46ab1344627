package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/dataset"
)

func causeColor(c dataset.Cause) color.Color { return reds[int(c)%len(reds)] }

// swatch is a solid legend entry.
type swatch struct{ c color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.c, rectPoints(c.Rectangle))
}

func rectPoints(r vg.Rectangle) []vg.Point {
	return []vg.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Max.X, Y: r.Min.Y},
	}
}

// pie draws wedges clockwise from twelve o'clock.
type pie struct {
	shares []analysis.CauseShare
}

func (pc pie) Plot(c draw.Canvas, plt *plot.Plot) {
	total := 0
	for _, s := range pc.shares {
		total += s.Count
	}
	if total <= 0 {
		return
	}
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	r := w
	if h < r {
		r = h
	}
	r = r / 2 * 0.85
	center := vg.Point{X: c.Min.X + w*0.4, Y: c.Min.Y + h/2}

	sty := plt.Title.TextStyle
	sty.Font.Size = vg.Points(9)
	sty.Color = color.White
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	at := func(angle float64, radius vg.Length) vg.Point {
		return vg.Point{
			X: center.X + radius*vg.Length(math.Cos(angle)),
			Y: center.Y + radius*vg.Length(math.Sin(angle)),
		}
	}

	start := math.Pi / 2
	for _, s := range pc.shares {
		if s.Count <= 0 {
			continue
		}
		sweep := -2 * math.Pi * float64(s.Count) / float64(total)
		steps := int(math.Ceil(math.Abs(sweep) / (math.Pi / 90)))
		pts := make([]vg.Point, 0, steps+2)
		pts = append(pts, center)
		for i := 0; i <= steps; i++ {
			pts = append(pts, at(start+sweep*float64(i)/float64(steps), r))
		}
		c.FillPolygon(causeColor(s.Cause), pts)
		if math.Abs(sweep) > 0.2 {
			c.FillText(sty, at(start+sweep/2, r*0.65), fmt.Sprintf("%.1f%%", s.Percent))
		}
		start += sweep
	}
}

// CausePie plots the share of each cause.
func CausePie(shares []analysis.CauseShare) (*plot.Plot, error) {
	const title = "Fire Causes"
	total := 0
	for _, s := range shares {
		total += s.Count
	}
	if total == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "", "")
	p.HideAxes()
	p.Add(pie{shares: shares})
	for _, s := range shares {
		p.Legend.Add(s.Label, swatch{c: causeColor(s.Cause)})
	}
	p.Legend.Top = true
	return p, nil
}

// CausesByRegion plots one bar per cause for every group.
func CausesByRegion(groups []analysis.GroupCauses) (*plot.Plot, error) {
	const title = "Fire Causes by Region"
	if len(groups) == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "Region", "Fires")
	p.Add(plotter.NewGrid())
	width := vg.Points(9)
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
	}
	mid := float64(len(dataset.Causes)-1) / 2
	for i, c := range dataset.Causes {
		vals := make(plotter.Values, len(groups))
		for j, g := range groups {
			vals[j] = float64(g.Causes.Get(c))
		}
		b, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return nil, fmt.Errorf("bars for %s: %w", c.Key(), err)
		}
		b.Color = causeColor(c)
		b.LineStyle.Width = vg.Length(0)
		b.Offset = vg.Length(float64(i)-mid) * width
		p.Add(b)
		p.Legend.Add(c.Label(), b)
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	return p, nil
}

// DistrictCauseLines plots each cause across the ranked districts.
func DistrictCauseLines(groups []analysis.GroupCauses) (*plot.Plot, error) {
	const title = "Fire Causes in the Top Districts"
	if len(groups) == 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "District", "Fires")
	p.Add(plotter.NewGrid())
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
	}
	for _, c := range dataset.Causes {
		xys := make(plotter.XYs, len(groups))
		for j, g := range groups {
			xys[j].X = float64(j)
			xys[j].Y = float64(g.Causes.Get(c))
		}
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", c.Key(), err)
		}
		l.Color = causeColor(c)
		l.Width = vg.Points(1.5)
		s.GlyphStyle.Color = causeColor(c)
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(l, s)
		p.Legend.Add(c.Label(), l, s)
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	rotateX(p)
	return p, nil
}
