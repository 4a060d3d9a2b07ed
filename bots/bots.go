// Package bots implements the tavern workflows on top of the engine: mention
// forwarding (barmaid), follower welcome (familier), and reblogging of
// appreciated statuses (serveuse).
package bots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tavern-social/tavern/engine"
	"github.com/tavern-social/tavern/mastodon"
)

var ErrInvalidConfig = errors.New("invalid bot configuration")

func notificationTime(n mastodon.Notification) time.Time {
	return n.CreatedAt
}

func statusTime(s mastodon.Status) time.Time {
	return s.CreatedAt
}

// Bounded, staleness-limited feed over the account's notifications.
func notificationFeed(c *mastodon.APIClient, maxPages int, staleBefore time.Time, exclude ...mastodon.NotificationType) *engine.BoundedPager[mastodon.Notification] {
	return engine.NewBoundedPager(c.NotificationsPager(exclude...), notificationTime, engine.PagerOptions{
		MaxPages:    maxPages,
		StaleBefore: staleBefore,
	})
}

func mentionList(accts []string) string {
	out := make([]string, len(accts))
	for i, a := range accts {
		out[i] = "@" + a
	}
	return strings.Join(out, " ")
}

// Reports whether err is a composition failure, logging it as a skipped item if so.
func skipComposition(logger *slog.Logger, bot string, report *Report, err error, args ...any) bool {
	var cerr *engine.CompositionError
	if !errors.As(err, &cerr) {
		return false
	}
	logger.Warn("skipping item, message does not fit in status budget", append(args, "budget", cerr.Budget, "framing", cerr.Overhead, "err", err)...)
	itemsSkipped.WithLabelValues(bot).Inc()
	report.Skipped++
	return true
}

func dismiss(ctx context.Context, c *mastodon.APIClient, logger *slog.Logger, bot string, report *Report, n mastodon.Notification) error {
	if err := c.DismissNotification(ctx, n.ID); err != nil {
		return err
	}
	logger.Info("dismissed notification", "notification", n.ID, "type", n.Type, "acct", n.Account.Acct)
	notificationsDismissed.WithLabelValues(bot).Inc()
	report.Dismissed++
	return nil
}

func positive(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive (got %d)", ErrInvalidConfig, name, v)
	}
	return nil
}
