package bots

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tavern-social/tavern/engine"
	"github.com/tavern-social/tavern/mastodon"

	"go.opentelemetry.io/otel/attribute"
)

type ReblogerConfig struct {
	// Statuses older than this are not considered at all.
	FavoritedDuration time.Duration

	// Statuses older than this count towards the average, but are not reblogged.
	RebloggedDuration time.Duration

	// Maximum timeline pages fetched per run.
	FetchRequests int

	// Maximum reblogs per run.
	ReblogRequests int

	// Only look at the local timeline.
	Local bool

	// Log the selection without reblogging.
	DryRun bool
}

func (c *ReblogerConfig) Validate() error {
	if c.FetchRequests < 0 {
		return fmt.Errorf("%w: fetch-requests can not be negative", ErrInvalidConfig)
	}
	if c.ReblogRequests < 0 {
		return fmt.Errorf("%w: reblog-requests can not be negative", ErrInvalidConfig)
	}
	if c.FavoritedDuration < 0 || c.RebloggedDuration < 0 {
		return fmt.Errorf("%w: durations can not be negative", ErrInvalidConfig)
	}
	return nil
}

// Reblogs the most favourited recent statuses of the public timeline, at most one per account.
type Rebloger struct {
	Client *mastodon.APIClient
	Config ReblogerConfig
	Logger *slog.Logger
}

func NewRebloger(client *mastodon.APIClient, config ReblogerConfig, logger *slog.Logger) *Rebloger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rebloger{
		Client: client,
		Config: config,
		Logger: logger.With("bot", "serveuse"),
	}
}

func (r *Rebloger) Run(ctx context.Context) (*Report, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "Rebloger.Run")
	defer span.End()

	report := newReport("serveuse")
	defer report.finish()

	// the timeline is not in strict chronological order, so there is no staleness cutoff; the window is applied by the selection
	feed := engine.NewBoundedPager(r.Client.PublicTimelinePager(r.Config.Local), statusTime, engine.PagerOptions{
		MaxPages: r.Config.FetchRequests,
	})
	statuses, err := engine.Collect(ctx, feed)
	report.Pages = feed.Pages()
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	policy := &engine.SelectionPolicy{
		FavoritedSince:   report.Started.Add(-r.Config.FavoritedDuration),
		RebloggableSince: report.Started.Add(-r.Config.RebloggedDuration),
		MaxSelected:      r.Config.ReblogRequests,
	}
	sel := policy.Select(statuses)
	report.Accepted = len(sel.Selected)

	r.Logger.Info("timeline fetched", "pages", report.Pages, "statuses", len(statuses))
	r.Logger.Info("favorited statuses", "count", len(sel.Favorited), "average", sel.Average)
	r.Logger.Info("rebloggable statuses", "count", len(sel.Rebloggable), "selected", len(sel.Selected))
	span.SetAttributes(
		attribute.Int("statuses", len(statuses)),
		attribute.Int("rebloggable", len(sel.Rebloggable)),
		attribute.Bool("dry_run", r.Config.DryRun),
	)

	for _, s := range sel.Selected {
		logger := r.Logger.With("status", s.ID, "acct", s.Account.Acct, "favourites", s.FavouritesCount, "url", s.URL)
		if r.Config.DryRun {
			logger.Info("would reblog status")
			continue
		}
		if err := r.Client.Reblog(ctx, s.ID); err != nil {
			span.RecordError(err)
			return report, err
		}
		reblogsSent.Inc()
		report.Reblogs++
		logger.Info("reblogged status")
	}
	return report, nil
}
