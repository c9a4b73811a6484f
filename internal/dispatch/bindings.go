package dispatch

import (
	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/view"
)

// DefaultBindings wires the four dashboard graphs to the chart builder
func DefaultBindings(b *chart.Builder) []Binding {
	return []Binding{
		{
			Output: view.OutputLine,
			Inputs: []string{view.InputCountries, view.InputMetric},
			Handler: func(sel view.Selection) (*chart.Spec, error) {
				metric, err := sel.One(view.InputMetric)
				if err != nil {
					return nil, err
				}
				return b.Line(sel.Many(view.InputCountries), metric)
			},
		},
		{
			Output: view.OutputBubble,
			Inputs: []string{view.InputScatterX, view.InputScatterY, view.InputYear, view.InputSize},
			Handler: func(sel view.Selection) (*chart.Spec, error) {
				x, err := sel.One(view.InputScatterX)
				if err != nil {
					return nil, err
				}
				y, err := sel.One(view.InputScatterY)
				if err != nil {
					return nil, err
				}
				size, err := sel.One(view.InputSize)
				if err != nil {
					return nil, err
				}
				year, err := sel.Int(view.InputYear)
				if err != nil {
					return nil, err
				}
				return b.Bubble(x, y, size, year)
			},
		},
		{
			Output: view.OutputTop,
			Inputs: []string{view.InputYear},
			Handler: func(sel view.Selection) (*chart.Spec, error) {
				year, err := sel.Int(view.InputYear)
				if err != nil {
					return nil, err
				}
				return b.TopPopulation(year)
			},
		},
		{
			Output: view.OutputContinent,
			Inputs: []string{view.InputYear},
			Handler: func(sel view.Selection) (*chart.Spec, error) {
				year, err := sel.Int(view.InputYear)
				if err != nil {
					return nil, err
				}
				return b.ContinentPopulation(year)
			},
		},
	}
}
