// Package metrics exposes prometheus counters for feedback activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	ReactionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Name:      "reactions_total",
		Help:      "Reaction increments accepted, by reaction kind.",
	}, []string{"kind"})

	CommentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Name:      "comments_total",
		Help:      "Comment submissions, by result: saved, dropped (storage refused the write) or rejected.",
	}, []string{"result"})

	// StorageFailures counts failures the store swallowed on purpose.
	StorageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Name:      "storage_failures_total",
		Help:      "Storage reads and writes that failed and were degraded silently.",
	}, []string{"op"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "code"})
)

func init() {
	Registry.MustRegister(ReactionsTotal, CommentsTotal, StorageFailures, HTTPRequests)
}

// Handler serves the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
