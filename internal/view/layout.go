package view

import (
	"strconv"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/dataset"
)

// Widget ids shared by the view model and the dispatch table
const (
	InputCountries = "dropdown-selection"
	InputMetric    = "dropdown-y-selection"
	InputScatterX  = "scatter-x"
	InputScatterY  = "scatter-y"
	InputSize      = "size-selector"
	InputYear      = "year-selector"

	OutputLine      = "graph-content"
	OutputBubble    = "bubble-graph"
	OutputTop       = "top15-graph"
	OutputContinent = "continent-pop-graph"
)

// NodeKind is the widget type of a Node
type NodeKind string

const (
	NodeHeading  NodeKind = "heading"
	NodeDropdown NodeKind = "dropdown"
	NodeGraph    NodeKind = "graph"
)

// Option is one dropdown entry
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Node is one element of the page, in display order
type Node struct {
	Kind    NodeKind `json:"kind" yaml:"kind"`
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
	Level   int      `json:"level,omitempty" yaml:"level,omitempty"`
	Align   string   `json:"align,omitempty" yaml:"align,omitempty"`
	Multi   bool     `json:"multi,omitempty" yaml:"multi,omitempty"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Default []string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Layout is the static description of the dashboard page
type Layout struct {
	Title string `json:"title" yaml:"title"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Build describes the dashboard page for a set of options
func Build(opts dataset.Options, labels chart.Labels, title string) *Layout {
	metrics := optionList(opts.NumericColumns)
	nonYear := optionList(opts.NonYearColumns)

	years := make([]Option, len(opts.Years))
	for i, y := range opts.Years {
		s := strconv.Itoa(y)
		years[i] = Option{Label: s, Value: s}
	}

	var defaultYear []string
	if len(years) > 0 {
		defaultYear = []string{years[0].Value}
	}

	return &Layout{
		Title: title,
		Nodes: []Node{
			{Kind: NodeHeading, Text: title, Level: 1, Align: "center"},
			{Kind: NodeHeading, Text: labels.ChooseCountry, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputCountries, Multi: true, Options: optionList(opts.Countries), Default: defaultCountries(opts.Countries)},
			{Kind: NodeHeading, Text: labels.ChooseMetric, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputMetric, Options: metrics, Default: preferred(opts.NumericColumns, dataset.ColPopulation)},
			{Kind: NodeHeading, Text: labels.LineHeading, Level: 4, Align: "center"},
			{Kind: NodeGraph, ID: OutputLine},
			{Kind: NodeHeading, Text: labels.ChooseX, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputScatterX, Options: nonYear, Default: preferred(opts.NonYearColumns, dataset.ColPopulation)},
			{Kind: NodeHeading, Text: labels.ChooseY, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputScatterY, Options: nonYear, Default: preferred(opts.NonYearColumns, dataset.ColPopulation)},
			{Kind: NodeHeading, Text: labels.ChooseSize, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputSize, Options: nonYear, Default: preferred(opts.NonYearColumns, dataset.ColPopulation)},
			{Kind: NodeHeading, Text: labels.ChooseYear, Level: 4, Align: "right"},
			{Kind: NodeDropdown, ID: InputYear, Options: years, Default: defaultYear},
			{Kind: NodeGraph, ID: OutputBubble},
			{Kind: NodeGraph, ID: OutputTop},
			{Kind: NodeGraph, ID: OutputContinent},
		},
	}
}

// Node returns the node with the given id
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID != "" && n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Graphs returns the graph node ids in display order
func (l *Layout) Graphs() []string {
	var ids []string
	for _, n := range l.Nodes {
		if n.Kind == NodeGraph {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Defaults returns the initial selection of every dropdown
func (l *Layout) Defaults() Selection {
	sel := make(Selection)
	for _, n := range l.Nodes {
		if n.Kind == NodeDropdown {
			sel[n.ID] = append([]string(nil), n.Default...)
		}
	}
	return sel
}

// HasOption reports whether value is offered by the dropdown
func (n Node) HasOption(value string) bool {
	for _, o := range n.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionList(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Label: v, Value: v}
	}
	return out
}

// defaultCountries starts on Canada when the dataset has it
func defaultCountries(countries []string) []string {
	return preferred(countries, "Canada")
}

func preferred(values []string, want string) []string {
	for _, v := range values {
		if v == want {
			return []string{want}
		}
	}
	if len(values) > 0 {
		return []string{values[0]}
	}
	return nil
}
