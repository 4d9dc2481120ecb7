// Package metrics provides Prometheus instrumentation for the moderation
// dashboard: counters for page fetches and action submissions, gauges for
// the current queue sizes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PagesFetched counts successful review-queue page fetches per queue.
	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_pages_fetched_total",
		Help: "Successful review queue page fetches",
	}, []string{"queue"})

	// FetchErrors counts failed review-queue page fetches per queue.
	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_fetch_errors_total",
		Help: "Failed review queue page fetches",
	}, []string{"queue"})

	// ActionsTotal counts moderation action submissions, labeled by action
	// ("mark_reviewed", "delete_message") and outcome ("ok", "error").
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_actions_total",
		Help: "Moderation action submissions",
	}, []string{"action", "outcome"})

	// QueueSize tracks the number of locally held items per queue.
	QueueSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "modboard_queue_size",
		Help: "Items currently held per review queue",
	}, []string{"queue"})

	// ScrollFetches counts scroll-triggered fetch attempts, labeled by
	// result ("fired", "dropped").
	ScrollFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "modboard_scroll_fetches_total",
		Help: "Scroll-triggered fetch attempts",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		PagesFetched,
		FetchErrors,
		ActionsTotal,
		QueueSize,
		ScrollFetches,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
