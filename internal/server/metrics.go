package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gapdash_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gapdash_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gapdash_http_rate_limited_total",
		Help: "Requests rejected with 429",
	})

	wsSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gapdash_ws_sessions",
		Help: "Open websocket sessions",
	})

	wsMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gapdash_ws_messages_total",
		Help: "Inbound websocket messages by type",
	}, []string{"type"})
)
