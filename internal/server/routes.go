package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/gapdash/internal/app"
	"github.com/ppiankov/gapdash/internal/worker"
)

// NewMux wires every dashboard route behind the middleware chain.
// limiter may be nil to disable rate limiting.
func NewMux(a *app.App, limiter *worker.Limiter, log logrus.FieldLogger) http.Handler {
	h := NewHandler(a, limiter, log)
	mux := http.NewServeMux()

	handle := func(pattern, route string, fn http.HandlerFunc) {
		mux.Handle(pattern, instrument(route, fn))
	}

	handle("GET /{$}", "page", h.HandlePage)
	handle("GET /charts/{file}", "chart", h.HandleChart)
	handle("GET /api/layout", "layout", h.HandleLayout)
	handle("GET /api/options", "options", h.HandleOptions)
	handle("POST /api/dispatch", "dispatch", h.HandleDispatch)
	handle("GET /ws", "ws", h.HandleWS)
	handle("GET /healthz", "healthz", h.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = RateLimit(limiter)(handler)
	handler = CORS(handler)
	handler = Logging(log)(handler)
	return handler
}
