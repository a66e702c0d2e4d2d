package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LikesToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_toggled_total",
			Help: "Total number of like toggles by target and resulting state",
		},
		[]string{"target", "state"},
	)

	SubscriptionsToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_toggled_total",
			Help: "Total number of subscription toggles by resulting state",
		},
		[]string{"state"},
	)

	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	CommentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Total number of comments created",
		},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of registered users",
		},
	)

	RevokedTokensPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revoked_tokens_purged_total",
			Help: "Total number of expired revocation entries dropped from memory",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of outgoing emails by result",
		},
		[]string{"success"},
	)
)

// State labels a toggle result.
func State(on bool, onLabel, offLabel string) string {
	if on {
		return onLabel
	}
	return offLabel
}
