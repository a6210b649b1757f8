package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobmesh"

var (
	Registry = prometheus.NewRegistry()

	TrackedNodes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_nodes",
			Help:      "Number of remote nodes currently tracked by the local node.",
		},
		[]string{"type"},
	)

	NodeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_events_total",
			Help:      "Total number of published node membership events.",
		},
		[]string{"topic"},
	)

	NodeEventFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_event_failures_total",
			Help:      "Total number of node membership events that failed to be delivered.",
		},
		[]string{"topic"},
	)

	RequeuedJobs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requeued_jobs_total",
			Help:      "Total number of jobs put back to pending after their worker disappeared.",
		},
	)
)

func init() {
	Registry.MustRegister(
		TrackedNodes,
		NodeEvents,
		NodeEventFailures,
		RequeuedJobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MetricsHandler exposes the registry. Mount it with r.Handle("/metrics", telemetry.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
