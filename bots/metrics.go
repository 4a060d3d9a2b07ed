package bots

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tavern/bots")

var itemsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tavern_items_skipped_total",
	Help: "Number of accepted items skipped because their message could not be composed",
}, []string{"bot"})

var threadsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tavern_threads_sent_total",
	Help: "Number of reply threads published",
}, []string{"bot", "kind"})

var notificationsDismissed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tavern_notifications_dismissed_total",
	Help: "Number of notifications dismissed after being handled",
}, []string{"bot"})

var reblogsSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_reblogs_total",
	Help: "Number of statuses reblogged",
})
