package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagent_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "qagent_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	CompletionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "qagent_completion_latency_seconds",
			Help: "Completion service call latency in seconds",
		},
		[]string{"provider"},
	)

	RoutingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagent_routing_decisions_total",
			Help: "Router classification outcomes by capability",
		},
		[]string{"capability", "mode"},
	)

	FallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagent_fallback_responses_total",
			Help: "Templated fallback responses served by capability",
		},
		[]string{"capability"},
	)

	MemoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagent_memory_operations_total",
			Help: "Conversation store operations",
		},
		[]string{"op"},
	)
)
