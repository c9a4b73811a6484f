package chart

// Kind is the chart type of a Spec
type Kind string

const (
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
)

// Spec is a renderer-agnostic chart description.
// Field names refer to dataset columns; Labels maps them to display text.
type Spec struct {
	Kind        Kind              `json:"kind"`
	Title       string            `json:"title,omitempty"`
	Encoding    Encoding          `json:"encoding"`
	XLabel      string            `json:"xLabel,omitempty"`
	YLabel      string            `json:"yLabel,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Orientation string            `json:"orientation,omitempty"` // "h" for horizontal bars
	Series      []Series          `json:"series"`
}

// Encoding names the column bound to each visual channel
type Encoding struct {
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
}

// Series is one trace of a chart
type Series struct {
	Name   string  `json:"name,omitempty"`
	Points []Point `json:"points"`
}

// Point is one dataset row projected onto the chart channels.
// Line and scatter use X/Y (and Size), bar and pie use Label/Value.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// Len returns the total number of points across series
func (s *Spec) Len() int {
	n := 0
	for _, ser := range s.Series {
		n += len(ser.Points)
	}
	return n
}

// Label returns the display label for a field, falling back to the field name
func (s *Spec) Label(field string) string {
	if l, ok := s.Labels[field]; ok && l != "" {
		return l
	}
	return field
}
