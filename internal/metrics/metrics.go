// Package metrics exposes Prometheus counters for tool invocations and
// vendor calls. Served at /metrics when a listen address is configured.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mtxToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_calls_total",
			Help: "Tool invocations by name and outcome",
		},
		[]string{"tool", "outcome"}, // outcome: ok|error
	)

	mtxVendorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartapi_requests_total",
			Help: "SmartAPI calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	mtxVendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartapi_request_duration_seconds",
			Help:    "SmartAPI call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	mtxLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartapi_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(mtxToolCalls, mtxVendorCalls, mtxVendorLatency, mtxLogins)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ToolCall records one tool invocation.
func ToolCall(tool string, err error) {
	mtxToolCalls.WithLabelValues(tool, outcome(err)).Inc()
}

// VendorCall records one SmartAPI call with its duration.
func VendorCall(op string, d time.Duration, err error) {
	mtxVendorCalls.WithLabelValues(op, outcome(err)).Inc()
	mtxVendorLatency.WithLabelValues(op).Observe(d.Seconds())
}

// Login records one login attempt.
func Login(err error) {
	mtxLogins.WithLabelValues(outcome(err)).Inc()
}

// Serve blocks on an HTTP listener exposing /metrics.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
