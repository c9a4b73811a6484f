package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/view"
)

var (
	// ErrInvalidBinding is returned by NewTable when the wiring does not match the layout
	ErrInvalidBinding = errors.New("invalid binding")
	// ErrInvalidSelection is returned when a widget value is outside its option set
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrUnknownInput is returned when an event names a widget that drives nothing
	ErrUnknownInput = errors.New("unknown input")
	// ErrUnknownOutput is returned when a graph id has no binding
	ErrUnknownOutput = errors.New("unknown output")
)

// HandlerFunc computes one chart from the current selection
type HandlerFunc func(sel view.Selection) (*chart.Spec, error)

// Binding wires the inputs of one graph to its handler
type Binding struct {
	Output  string
	Inputs  []string
	Handler HandlerFunc
}

// Update is the result of running one binding
type Update struct {
	Output string      `json:"output"`
	Spec   *chart.Spec `json:"spec"`
}

// Table is the fixed map from widget events to handlers
type Table struct {
	layout   *view.Layout
	bindings []Binding
	byInput  map[string][]int
	byOutput map[string]int
}

// NewTable checks every binding against the layout: outputs must be graph
// nodes bound once, inputs must be dropdown nodes.
func NewTable(layout *view.Layout, bindings ...Binding) (*Table, error) {
	t := &Table{
		layout:   layout,
		bindings: bindings,
		byInput:  make(map[string][]int),
		byOutput: make(map[string]int),
	}

	for i, b := range bindings {
		if b.Handler == nil {
			return nil, fmt.Errorf("%w: %s has no handler", ErrInvalidBinding, b.Output)
		}
		node, ok := layout.Node(b.Output)
		if !ok || node.Kind != view.NodeGraph {
			return nil, fmt.Errorf("%w: output %q is not a graph", ErrInvalidBinding, b.Output)
		}
		if _, dup := t.byOutput[b.Output]; dup {
			return nil, fmt.Errorf("%w: output %q bound twice", ErrInvalidBinding, b.Output)
		}
		t.byOutput[b.Output] = i

		if len(b.Inputs) == 0 {
			return nil, fmt.Errorf("%w: output %q has no inputs", ErrInvalidBinding, b.Output)
		}
		for _, in := range b.Inputs {
			node, ok := layout.Node(in)
			if !ok || node.Kind != view.NodeDropdown {
				return nil, fmt.Errorf("%w: input %q of %q is not a dropdown", ErrInvalidBinding, in, b.Output)
			}
			t.byInput[in] = append(t.byInput[in], i)
		}
	}

	for _, id := range layout.Graphs() {
		if _, ok := t.byOutput[id]; !ok {
			return nil, fmt.Errorf("%w: graph %q has no handler", ErrInvalidBinding, id)
		}
	}

	return t, nil
}

// Layout returns the view model the table was validated against
func (t *Table) Layout() *view.Layout { return t.layout }

// Outputs returns the bound graph ids in binding order
func (t *Table) Outputs() []string {
	out := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.Output
	}
	return out
}

// Affected returns the outputs that depend on an input
func (t *Table) Affected(input string) []string {
	var out []string
	for _, i := range t.byInput[input] {
		out = append(out, t.bindings[i].Output)
	}
	return out
}

// Validate checks the given widgets of sel against their dropdown options.
// Multi-select widgets may be empty; single-select widgets need one value.
func (t *Table) Validate(sel view.Selection, inputs ...string) error {
	for _, id := range inputs {
		node, ok := t.layout.Node(id)
		if !ok || node.Kind != view.NodeDropdown {
			return fmt.Errorf("%w: %q", ErrUnknownInput, id)
		}
		values := sel[id]
		if !node.Multi && len(values) != 1 {
			return fmt.Errorf("%w: %s needs exactly one value, got %d", ErrInvalidSelection, id, len(values))
		}
		for _, v := range values {
			if !node.HasOption(v) {
				return fmt.Errorf("%w: %s does not offer %q", ErrInvalidSelection, id, v)
			}
		}
	}
	return nil
}

// Dispatch runs the handlers whose inputs include changed, in binding order
func (t *Table) Dispatch(sel view.Selection, changed string) ([]Update, error) {
	idx, ok := t.byInput[changed]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, changed)
	}
	updates := make([]Update, 0, len(idx))
	for _, i := range idx {
		u, err := t.run(t.bindings[i], sel)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// Render runs the handler of a single output
func (t *Table) Render(sel view.Selection, output string) (*chart.Spec, error) {
	i, ok := t.byOutput[output]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutput, output)
	}
	u, err := t.run(t.bindings[i], sel)
	if err != nil {
		return nil, err
	}
	return u.Spec, nil
}

// RenderAll runs every handler, as on first page load
func (t *Table) RenderAll(sel view.Selection) ([]Update, error) {
	updates := make([]Update, 0, len(t.bindings))
	for _, b := range t.bindings {
		u, err := t.run(b, sel)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func (t *Table) run(b Binding, sel view.Selection) (Update, error) {
	if err := t.Validate(sel, b.Inputs...); err != nil {
		handlerCalls.WithLabelValues(b.Output, "rejected").Inc()
		return Update{}, err
	}

	start := time.Now()
	spec, err := b.Handler(sel)
	handlerDuration.WithLabelValues(b.Output).Observe(time.Since(start).Seconds())
	if err != nil {
		handlerCalls.WithLabelValues(b.Output, "error").Inc()
		return Update{}, fmt.Errorf("%s: %w", b.Output, err)
	}
	handlerCalls.WithLabelValues(b.Output, "ok").Inc()
	return Update{Output: b.Output, Spec: spec}, nil
}
