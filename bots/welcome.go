package bots

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tavern-social/tavern/engine"
	"github.com/tavern-social/tavern/mastodon"

	"go.opentelemetry.io/otel/attribute"
)

type WelcomerConfig struct {
	Message  string
	MaxChars int

	// Follow notifications older than this, relative to the start of the run, end the feed.
	IgnoreAfter time.Duration

	// Maximum notification pages fetched per run.
	FetchRequests int

	// Dismiss follow notifications once welcomed.
	Dismiss bool
}

func (c *WelcomerConfig) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("%w: welcome message can not be empty", ErrInvalidConfig)
	}
	if err := positive("max-chars", c.MaxChars); err != nil {
		return err
	}
	if c.FetchRequests < 0 {
		return fmt.Errorf("%w: fetch-requests can not be negative", ErrInvalidConfig)
	}
	if c.IgnoreAfter < 0 {
		return fmt.Errorf("%w: ignore-after can not be negative", ErrInvalidConfig)
	}
	return nil
}

// Sends a direct welcome message to new followers from the bot's own instance.
type Welcomer struct {
	Client *mastodon.APIClient
	Config WelcomerConfig
	Logger *slog.Logger
}

func NewWelcomer(client *mastodon.APIClient, config WelcomerConfig, logger *slog.Logger) *Welcomer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Welcomer{
		Client: client,
		Config: config,
		Logger: logger.With("bot", "familier"),
	}
}

func (w *Welcomer) Run(ctx context.Context) (*Report, error) {
	if err := w.Config.Validate(); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "Welcomer.Run")
	defer span.End()

	report := newReport("familier")
	defer report.finish()

	pipeline := engine.NewPipeline(w.Logger,
		engine.Sync("is-follow", func(n mastodon.Notification) bool {
			return n.Type == mastodon.NotificationFollow
		}),
		engine.Sync("local-account", func(n mastodon.Notification) bool {
			return n.Account.IsLocal()
		}),
	)

	feed := notificationFeed(w.Client, w.Config.FetchRequests, report.Started.Add(-w.Config.IgnoreAfter),
		mastodon.NotificationFavourite,
		mastodon.NotificationMention,
		mastodon.NotificationPoll,
		mastodon.NotificationReblog,
	)

	err := engine.ForEach(ctx, pipeline.Filter(feed), func(ctx context.Context, n mastodon.Notification) error {
		report.Accepted++
		if err := w.welcome(ctx, report, n); err != nil {
			return err
		}
		if w.Config.Dismiss {
			return dismiss(ctx, w.Client, w.Logger, "familier", report, n)
		}
		return nil
	})
	report.Pages = feed.Pages()
	span.SetAttributes(attribute.Int("pages", report.Pages), attribute.Int("posts", report.Posts))
	if err != nil {
		span.RecordError(err)
		return report, err
	}
	return report, nil
}

func (w *Welcomer) welcome(ctx context.Context, report *Report, n mastodon.Notification) error {
	logger := w.Logger.With("notification", n.ID, "acct", n.Account.Acct)

	plan, err := engine.Compose(
		w.Config.Message,
		w.Config.MaxChars,
		engine.StaticFraming("@"+n.Account.Acct+"\n\n", ""),
		engine.Attrs{Visibility: mastodon.VisibilityDirect},
		nil,
	)
	if err != nil {
		if skipComposition(logger, "familier", report, err) {
			return nil
		}
		return err
	}
	if plan.Len() == 0 {
		logger.Warn("empty welcome message, nothing sent")
		return nil
	}

	published, err := engine.Publish(ctx, w.Client, plan)
	report.Posts += len(published)
	if err != nil {
		return fmt.Errorf("welcoming %s: %w", n.Account.Acct, err)
	}
	threadsSent.WithLabelValues("familier", "welcome").Inc()
	logger.Info("welcome message sent", "statuses", len(published))
	return nil
}
