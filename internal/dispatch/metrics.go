package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	handlerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gapdash_handler_calls_total",
		Help: "Chart handler invocations by output and status (ok, error, rejected)",
	}, []string{"output", "status"})

	handlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gapdash_handler_duration_seconds",
		Help:    "Time spent computing one chart spec",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"output"})
)
