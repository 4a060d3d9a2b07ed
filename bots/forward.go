package bots

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tavern-social/tavern/engine"
	"github.com/tavern-social/tavern/mastodon"
	"github.com/tavern-social/tavern/util/htmltext"

	"go.opentelemetry.io/otel/attribute"
)

type ForwarderConfig struct {
	// Accounts (by acct) mentioned at the end of every forward. Mentions from them are ignored.
	ForwardTo []string

	// Additional accounts whose mentions are ignored.
	IgnoreFrom []string

	ForwardMessage string

	// Prepended to the sanitized mention text in the copy thread.
	CopyMessage string

	CharactersPerStatus int

	// Maximum notification pages fetched per run.
	FetchUntilCount int

	// Notifications older than this, relative to the start of the run, end the feed.
	FetchUntilDuration time.Duration

	// Dismiss mention notifications once forwarded.
	Dismiss bool
}

func (c *ForwarderConfig) Validate() error {
	if len(c.ForwardTo) == 0 {
		return fmt.Errorf("%w: at least one forward-to account is required", ErrInvalidConfig)
	}
	if err := positive("characters-per-status", c.CharactersPerStatus); err != nil {
		return err
	}
	if c.FetchUntilCount < 0 {
		return fmt.Errorf("%w: fetch-until-count can not be negative", ErrInvalidConfig)
	}
	if c.FetchUntilDuration < 0 {
		return fmt.Errorf("%w: fetch-until-duration can not be negative", ErrInvalidConfig)
	}
	return nil
}

// Forwards mentions of the bot account to a fixed list of accounts, as a reply thread under the mention. Direct mentions also get a copy thread carrying their text, so recipients can read it.
type Forwarder struct {
	Client *mastodon.APIClient
	Config ForwarderConfig
	Logger *slog.Logger
}

func NewForwarder(client *mastodon.APIClient, config ForwarderConfig, logger *slog.Logger) *Forwarder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Forwarder{
		Client: client,
		Config: config,
		Logger: logger.With("bot", "barmaid"),
	}
}

func (f *Forwarder) Run(ctx context.Context) (*Report, error) {
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "Forwarder.Run")
	defer span.End()

	report := newReport("barmaid")
	defer report.finish()

	self, err := f.Client.VerifyCredentials(ctx)
	if err != nil {
		return report, fmt.Errorf("verifying bot credentials: %w", err)
	}
	f.Logger.Info("running as", "acct", self.Acct, "id", self.ID)

	ignored := make(map[string]bool)
	for _, acct := range f.Config.IgnoreFrom {
		ignored[acct] = true
	}
	for _, acct := range f.Config.ForwardTo {
		ignored[acct] = true
	}

	guard := &engine.ConversationGuard{Ancestors: f.Client, Self: *self}
	pipeline := engine.NewPipeline(f.Logger,
		engine.Sync("is-mention", func(n mastodon.Notification) bool {
			return n.Type == mastodon.NotificationMention
		}),
		engine.Sync("has-status", func(n mastodon.Notification) bool {
			return n.Status != nil
		}),
		engine.Sync("not-ignored", func(n mastodon.Notification) bool {
			return !ignored[n.Status.Account.Acct]
		}),
		guard.NotificationStage(),
	)

	feed := notificationFeed(f.Client, f.Config.FetchUntilCount, report.Started.Add(-f.Config.FetchUntilDuration),
		mastodon.NotificationFavourite,
		mastodon.NotificationFollow,
		mastodon.NotificationPoll,
		mastodon.NotificationReblog,
	)

	err = engine.ForEach(ctx, pipeline.Filter(feed), func(ctx context.Context, n mastodon.Notification) error {
		report.Accepted++
		if err := f.forward(ctx, report, n); err != nil {
			return err
		}
		if f.Config.Dismiss {
			return dismiss(ctx, f.Client, f.Logger, "barmaid", report, n)
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

// Handles a single accepted mention. Both threads are composed before anything is published, so a message which does not fit skips the mention entirely.
func (f *Forwarder) forward(ctx context.Context, report *Report, n mastodon.Notification) error {
	mention := n.Status
	logger := f.Logger.With("notification", n.ID, "status", mention.ID, "acct", mention.Account.Acct)

	fwd, err := engine.Compose(
		f.Config.ForwardMessage,
		f.Config.CharactersPerStatus,
		engine.StaticFraming("@"+mention.Account.Acct+"\n\n", "\n\ncc "+mentionList(f.Config.ForwardTo)),
		engine.Attrs{Visibility: mention.Visibility},
		mention,
	)
	if err != nil {
		if skipComposition(logger, "barmaid", report, err, "thread", "forward") {
			return nil
		}
		return err
	}

	var cp *engine.ThreadPlan
	if mention.Visibility == mastodon.VisibilityDirect {
		text := f.Config.CopyMessage + htmltext.DefuseMentions(htmltext.Sanitize(mention.Content))
		// seeded on the mention for now, re-pointed at the last forward post once published
		cp, err = engine.Compose(
			text,
			f.Config.CharactersPerStatus,
			engine.StaticFraming(mentionList(f.Config.ForwardTo)+"\n\n", ""),
			engine.Attrs{Visibility: mention.Visibility, SpoilerText: mention.SpoilerText},
			mention,
		)
		if err != nil {
			if skipComposition(logger, "barmaid", report, err, "thread", "copy") {
				return nil
			}
			return err
		}
	}

	published, err := engine.Publish(ctx, f.Client, fwd)
	report.Posts += len(published)
	if err != nil {
		return fmt.Errorf("forwarding mention %s: %w", mention.ID, err)
	}
	threadsSent.WithLabelValues("barmaid", "forward").Inc()
	logger.Info("mention forwarded", "statuses", len(published))

	if cp == nil || cp.Len() == 0 {
		return nil
	}
	cp.Posts[0].InReplyToID = engine.Last(published, mention).ID
	copied, err := engine.Publish(ctx, f.Client, cp)
	report.Posts += len(copied)
	if err != nil {
		return fmt.Errorf("copying mention %s: %w", mention.ID, err)
	}
	threadsSent.WithLabelValues("barmaid", "copy").Inc()
	logger.Info("mention copied", "statuses", len(copied))
	return nil
}
