package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/firedash/internal/analysis"
)

// treemap lays out a hierarchy with alternating slice-and-dice splits.
// Leaf cells are shaded by value relative to the largest leaf.
type treemap struct {
	root analysis.Node
}

func maxLeaf(n analysis.Node) int {
	if len(n.Children) == 0 {
		return n.Value
	}
	m := 0
	for _, k := range n.Children {
		if v := maxLeaf(k); v > m {
			m = v
		}
	}
	return m
}

// shade interpolates from the lightest to the darkest red.
func shade(frac float64) color.Color {
	lo := reds[len(reds)-1].(color.RGBA)
	hi := reds[0].(color.RGBA)
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*frac) }
	return color.RGBA{R: mix(lo.R, hi.R), G: mix(lo.G, hi.G), B: mix(lo.B, hi.B), A: 255}
}

func (t treemap) Plot(c draw.Canvas, plt *plot.Plot) {
	if t.root.Value <= 0 {
		return
	}
	peak := float64(maxLeaf(t.root))
	border := draw.LineStyle{Color: color.White, Width: vg.Points(0.75)}
	sty := plt.Title.TextStyle
	sty.Font.Size = vg.Points(7)
	sty.Color = color.White
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	var layout func(n analysis.Node, r vg.Rectangle, depth int)
	layout = func(n analysis.Node, r vg.Rectangle, depth int) {
		if len(n.Children) == 0 {
			frac := 0.0
			if peak > 0 {
				frac = float64(n.Value) / peak
			}
			pts := rectPoints(r)
			c.FillPolygon(shade(frac), pts)
			c.StrokeLines(border, append(pts, pts[0]))
			w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
			if w > vg.Points(40) && h > vg.Points(10) {
				mid := vg.Point{X: r.Min.X + w/2, Y: r.Min.Y + h/2}
				c.FillText(sty, mid, n.Name)
			}
			return
		}
		w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
		offset := 0.0
		for _, k := range n.Children {
			if k.Value <= 0 || n.Value <= 0 {
				continue
			}
			frac := float64(k.Value) / float64(n.Value)
			kr := r
			if depth%2 == 0 {
				kr.Min.X = r.Min.X + w*vg.Length(offset)
				kr.Max.X = kr.Min.X + w*vg.Length(frac)
			} else {
				kr.Max.Y = r.Max.Y - h*vg.Length(offset)
				kr.Min.Y = kr.Max.Y - h*vg.Length(frac)
			}
			offset += frac
			layout(k, kr, depth+1)
		}
	}
	layout(t.root, c.Rectangle, 0)
}

// Treemap plots the region > district > sub-district frequency tree.
func Treemap(root analysis.Node) (*plot.Plot, error) {
	const title = "Fire Distribution by Region, District and Sub-district"
	if root.Value <= 0 {
		return emptyPlot(title), nil
	}
	p := newPlot(title, "", "")
	p.HideAxes()
	p.Add(treemap{root: root})
	return p, nil
}
