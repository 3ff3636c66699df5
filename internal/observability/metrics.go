package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts posts created since process start.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts comments created since process start.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_comments_created_total",
		Help: "Total number of comments created",
	})

	// LikeEvents counts like and unlike operations.
	LikeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_like_events_total",
		Help: "Total number of like and unlike operations",
	}, []string{"action"})

	// FollowEvents counts follow and unfollow operations.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_events_total",
		Help: "Total number of follow and unfollow operations",
	}, []string{"action"})

	// AuthEvents counts authentication outcomes by kind.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_auth_events_total",
		Help: "Total number of authentication events",
	}, []string{"kind", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
