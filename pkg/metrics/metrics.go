package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mackerel_mcp_tool_calls_total",
			Help: "Total number of tool calls by outcome (ok or error kind)",
		},
		[]string{"tool", "outcome"},
	)

	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mackerel_mcp_tool_duration_seconds",
			Help:    "Time spent handling tool calls, including the upstream request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mackerel_mcp_upstream_requests_total",
			Help: "Total number of requests sent to the Mackerel API by status class",
		},
		[]string{"method", "status"},
	)
)

// RecordToolCall records a finished tool call. An empty outcome counts as "ok".
func RecordToolCall(tool, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}

	ToolCalls.WithLabelValues(tool, outcome).Inc()
	ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordUpstream records a request to the Mackerel API. Status 0 means no response was received.
func RecordUpstream(method string, status int) {
	UpstreamRequests.WithLabelValues(method, StatusClass(status)).Inc()
}

// StatusClass maps an HTTP status to "2xx", "4xx", ... or "error" for transport failures.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}

	return strconv.Itoa(status/100) + "xx"
}
