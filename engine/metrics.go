package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tavern/engine")

var pagesFetched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_pages_fetched_total",
	Help: "Number of feed pages fetched",
})

var itemsYielded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_items_yielded_total",
	Help: "Number of feed items yielded by bounded pagers",
})

var staleCutoffs = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_stale_cutoffs_total",
	Help: "Number of times a pager stopped on an item older than its staleness cutoff",
})

var stageRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tavern_stage_rejections_total",
	Help: "Number of items dropped by each pipeline stage",
}, []string{"stage"})

var postsPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_posts_published_total",
	Help: "Number of statuses created by thread publishing",
})

var compositionErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tavern_composition_errors_total",
	Help: "Number of messages which could not be split within the character budget",
})
