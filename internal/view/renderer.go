package view

import (
	"io"

	"github.com/ppiankov/gapdash/internal/chart"
)

// Page is everything a renderer needs to draw the dashboard once
type Page struct {
	Layout    *Layout
	Selection Selection
	Charts    map[string]*chart.Spec
	Errors    map[string]string
}

// Renderer turns a Page into a platform-specific artifact
type Renderer interface {
	Render(w io.Writer, page Page) error
}
