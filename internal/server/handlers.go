package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/gapdash/internal/app"
	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/dataset"
	"github.com/ppiankov/gapdash/internal/dispatch"
	"github.com/ppiankov/gapdash/internal/model"
	"github.com/ppiankov/gapdash/internal/render"
	"github.com/ppiankov/gapdash/internal/view"
	"github.com/ppiankov/gapdash/internal/worker"
)

// maxDispatchBody bounds POST /api/dispatch payloads
const maxDispatchBody = 1 << 20

// Handler serves the dashboard endpoints
type Handler struct {
	app     *app.App
	page    view.Renderer
	limiter *worker.Limiter
	log     logrus.FieldLogger
}

// NewHandler creates a Handler with the HTML page renderer.
// limiter throttles websocket messages per client and may be nil.
func NewHandler(a *app.App, limiter *worker.Limiter, log logrus.FieldLogger) *Handler {
	return &Handler{app: a, page: NewHTMLRenderer(), limiter: limiter, log: log}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type layoutResponse struct {
	Layout   *view.Layout   `json:"layout"`
	Defaults view.Selection `json:"defaults"`
	Outputs  []string       `json:"outputs"`
}

type optionsResponse struct {
	Options dataset.Options    `json:"options"`
	Dataset *model.DatasetInfo `json:"dataset,omitempty"`
}

type dispatchRequest struct {
	Selection map[string][]string `json:"selection"`
	Changed   string              `json:"changed,omitempty"`
}

type dispatchResponse struct {
	Selection view.Selection    `json:"selection"`
	Updates   []dispatch.Update `json:"updates"`
}

// selection overlays request values on the layout defaults
func (h *Handler) selection(values map[string][]string) view.Selection {
	return h.app.Layout.Defaults().Merge(values)
}

// HandlePage renders the dashboard as HTML for the selection in the query
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	page := h.app.Page(h.selection(r.URL.Query()))

	var buf bytes.Buffer
	if err := h.page.Render(&buf, page); err != nil {
		h.log.WithError(err).Error("render page")
		writeError(w, http.StatusInternalServerError, "internal", "render page failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleChart renders /charts/{output}.{format}
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	dot := strings.LastIndex(file, ".")
	if dot <= 0 {
		writeError(w, http.StatusNotFound, "not_found", "expected /charts/{output}.{format}")
		return
	}
	output, format := file[:dot], file[dot+1:]

	contentType, err := render.ContentType(format)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	spec, err := h.app.Table.Render(h.selection(r.URL.Query()), output)
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, spec, format, h.app.RenderOptions()); err != nil {
		h.log.WithError(err).WithField("output", output).Error("render chart")
		writeError(w, http.StatusInternalServerError, "internal", "render chart failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if format == render.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="`+output+`.xlsx"`)
	}
	_, _ = w.Write(buf.Bytes())
}

// HandleLayout returns the view model and its default selection
func (h *Handler) HandleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:   h.app.Layout,
		Defaults: h.app.Layout.Defaults(),
		Outputs:  h.app.Table.Outputs(),
	})
}

// HandleOptions returns the derived option sets
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{Options: h.app.Options, Dataset: h.app.Info})
}

// HandleDispatch runs the handlers affected by one changed widget, or every
// handler when changed is empty
func (h *Handler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDispatchBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "decode request: "+err.Error())
		return
	}

	sel := h.selection(req.Selection)

	var updates []dispatch.Update
	var err error
	if req.Changed == "" {
		updates, err = h.app.Table.RenderAll(sel)
	} else {
		updates, err = h.app.Table.Dispatch(sel, req.Changed)
	}
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dispatchResponse{Selection: sel, Updates: updates})
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "rows": h.app.Dataset.Len()}
	if h.limiter != nil {
		resp["clients"] = h.limiter.Clients()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeDispatchError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= 500 {
		h.log.WithError(err).Error("chart handler failed")
	}
	writeError(w, status, code, err.Error())
}

// classify maps dispatch errors to an HTTP status and an error code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, dispatch.ErrInvalidSelection), errors.Is(err, chart.ErrUnknownColumn):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, dispatch.ErrUnknownInput), errors.Is(err, dispatch.ErrUnknownOutput):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
