package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ppiankov/gapdash/internal/chart"
)

const (
	maxBubbleRadius = 24
	minBubbleRadius = 2
	// above this many points scatter labels only add noise
	maxScatterLabels = 40
)

func writeImage(w io.Writer, spec *chart.Spec, format string, opts Options) error {
	p, err := newPlot(spec)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func newPlot(spec *chart.Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case chart.KindLine:
		err = addLines(p, spec)
	case chart.KindScatter:
		err = addBubbles(p, spec)
	case chart.KindBar:
		err = addBars(p, spec)
	case chart.KindPie:
		addPie(p, spec)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s plot: %w", spec.Kind, err)
	}
	return p, nil
}

func addLines(p *plot.Plot, spec *chart.Spec) error {
	p.Add(plotter.NewGrid())
	for i, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	return nil
}

func addBubbles(p *plot.Plot, spec *chart.Spec) error {
	p.Add(plotter.NewGrid())
	if spec.Len() == 0 {
		return nil
	}

	var xys plotter.XYs
	var names []string
	var sizes []float64
	maxSize := 0.0
	for _, s := range spec.Series {
		for _, pt := range s.Points {
			xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
			names = append(names, pt.Label)
			sizes = append(sizes, pt.Size)
			maxSize = math.Max(maxSize, pt.Size)
		}
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  plotutil.Color(0),
			Radius: bubbleRadius(sizes[i], maxSize),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	if len(names) <= maxScatterLabels {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return nil
}

// bubbleRadius scales marker area, not radius, with the size value
func bubbleRadius(v, max float64) vg.Length {
	if max <= 0 || v <= 0 || math.IsNaN(v) {
		return vg.Points(minBubbleRadius)
	}
	r := math.Sqrt(v/max) * maxBubbleRadius
	return vg.Points(math.Max(r, minBubbleRadius))
}

func addBars(p *plot.Plot, spec *chart.Spec) error {
	if spec.Len() == 0 {
		return nil
	}
	var values plotter.Values
	var names []string
	for _, s := range spec.Series {
		for _, pt := range s.Points {
			values = append(values, pt.Value)
			names = append(names, pt.Label)
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(names...)
	p.Add(plotter.NewGrid())
	return nil
}

func addPie(p *plot.Plot, spec *chart.Spec) {
	p.HideAxes()
	if len(spec.Series) == 0 {
		return
	}
	pie := newPie(spec.Series[0].Points, p.Legend.TextStyle)
	p.Add(pie)
	for i, s := range pie.slices {
		p.Legend.Add(s.label, sliceThumb{i: i})
	}
	p.Legend.Top = true
}
