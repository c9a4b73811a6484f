package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ppiankov/gapdash/internal/chart"
)

// gonum/plot has no pie plotter, so slices are drawn as arcs on the canvas.

type slice struct {
	label string
	value float64
	share float64
}

type pie struct {
	slices []slice
	style  text.Style
	// radius as a fraction of the smaller canvas side
	scale float64
}

func newPie(points []chart.Point, style text.Style) *pie {
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	p := &pie{style: style, scale: 0.42}
	p.style.XAlign = text.XCenter
	p.style.YAlign = text.YCenter
	for _, pt := range points {
		s := slice{label: pt.Label, value: pt.Value}
		if total > 0 && pt.Value > 0 {
			s.share = pt.Value / total
		}
		p.slices = append(p.slices, s)
	}
	return p
}

// Plot implements plot.Plotter. Slices start at twelve o'clock and run clockwise.
func (p *pie) Plot(c draw.Canvas, _ *plot.Plot) {
	size := c.Size()
	r := vg.Length(math.Min(float64(size.X), float64(size.Y)) * p.scale)
	center := c.Center()

	angle := math.Pi / 2
	for i, s := range p.slices {
		if s.share <= 0 {
			continue
		}
		sweep := -2 * math.Pi * s.share

		var path vg.Path
		path.Move(center)
		path.Arc(center, r, angle, sweep)
		path.Close()
		c.SetColor(plotutil.Color(i))
		c.Fill(path)
		c.SetColor(color.White)
		c.SetLineWidth(vg.Points(1))
		c.Stroke(path)

		mid := angle + sweep/2
		at := vg.Point{
			X: center.X + vg.Length(math.Cos(mid))*r*0.65,
			Y: center.Y + vg.Length(math.Sin(mid))*r*0.65,
		}
		c.FillText(p.style, at, fmt.Sprintf("%.1f%%", s.share*100))

		angle += sweep
	}
}

// DataRange implements plot.DataRanger; the pie ignores data coordinates.
func (p *pie) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, 0, 1
}

type sliceThumb struct {
	i int
}

// Thumbnail implements plot.Thumbnailer
func (t sliceThumb) Thumbnail(c *draw.Canvas) {
	c.SetColor(plotutil.Color(t.i))
	c.Fill(c.Rectangle.Path())
}
