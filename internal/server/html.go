package server

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/ppiankov/gapdash/internal/view"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
select { min-width: 16em; }
.graph img { max-width: 100%; }
.error { color: #b00020; }
</style>
</head>
<body>
<form method="get" action="/">
{{range .Nodes}}
{{- if eq .Kind "heading"}}
{{- if eq .Level 1}}<h1 style="text-align: {{.Align}}">{{.Text}}</h1>
{{- else}}<h4 style="text-align: {{.Align}}">{{.Text}}</h4>{{end}}
{{- else if eq .Kind "dropdown"}}
{{- if .Multi}}
<input type="hidden" name="{{.ID}}" value="">
{{- end}}
<select id="{{.ID}}" name="{{.ID}}"{{if .Multi}} multiple size="6"{{end}} onchange="this.form.submit()">
{{- range .Options}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{- else if eq .Kind "graph"}}
<div class="graph" id="{{.ID}}">
{{- if .Error}}<p class="error">{{.Error}}</p>
{{- else}}<img src="{{.Src}}" alt="{{.Alt}}">
<a href="{{.Export}}">xlsx</a>{{end}}
</div>
{{- end}}
{{end}}
<noscript><button type="submit">OK</button></noscript>
</form>
</body>
</html>
`

// HTMLRenderer draws the dashboard as a server-rendered HTML form.
// Charts are <img> elements pointing back at /charts.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the page template
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

type pageData struct {
	Title string
	Nodes []nodeData
}

type nodeData struct {
	Kind    view.NodeKind
	ID      string
	Text    string
	Level   int
	Align   string
	Multi   bool
	Options []optionData
	Src     template.URL
	Export  template.URL
	Alt     string
	Error   string
}

type optionData struct {
	Label    string
	Value    string
	Selected bool
}

// Render implements view.Renderer
func (r *HTMLRenderer) Render(w io.Writer, page view.Page) error {
	query := page.Selection.Query().Encode()

	data := pageData{Title: page.Layout.Title}
	for _, n := range page.Layout.Nodes {
		nd := nodeData{
			Kind:  n.Kind,
			ID:    n.ID,
			Text:  n.Text,
			Level: n.Level,
			Align: n.Align,
			Multi: n.Multi,
		}
		switch n.Kind {
		case view.NodeDropdown:
			chosen := make(map[string]bool)
			for _, v := range page.Selection[n.ID] {
				chosen[v] = true
			}
			for _, o := range n.Options {
				nd.Options = append(nd.Options, optionData{Label: o.Label, Value: o.Value, Selected: chosen[o.Value]})
			}
		case view.NodeGraph:
			if msg, failed := page.Errors[n.ID]; failed {
				nd.Error = msg
				break
			}
			nd.Src = chartURL(n.ID, "svg", query)
			nd.Export = chartURL(n.ID, "xlsx", query)
			if spec := page.Charts[n.ID]; spec != nil {
				nd.Alt = spec.Title
			}
		}
		data.Nodes = append(data.Nodes, nd)
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

func chartURL(output, format, query string) template.URL {
	u := url.URL{Path: "/charts/" + output + "." + format, RawQuery: query}
	return template.URL(u.String()) //nolint:gosec // built from escaped parts
}
