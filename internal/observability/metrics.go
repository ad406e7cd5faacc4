// Package observability holds Prometheus metrics and OpenTelemetry tracing
// setup for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostViews counts single-post reads, which drive the view counter.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of single-post fetches",
	})

	// CommentsAdded counts comments appended to posts.
	CommentsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_added_total",
		Help: "Total number of comments appended to posts",
	})

	// PostMutations counts create/update/delete operations by kind.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_post_mutations_total",
		Help: "Total number of post mutations by operation",
	}, []string{"operation"})

	// RequestErrors counts requests rejected with a typed application error.
	RequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_request_errors_total",
		Help: "Total number of typed application errors by code",
	}, []string{"code"})
)
