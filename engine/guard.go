package engine

import (
	"context"

	"github.com/tavern-social/tavern/mastodon"
)

type AncestorSource interface {
	StatusAncestors(ctx context.Context, statusID string) ([]mastodon.Status, error)
}

// Rejects statuses in threads the bot already took part in.
//
// Participation is detected by account ID, not handle: the ancestor chain is fetched from the bot's own instance, where IDs are stable and unique.
type ConversationGuard struct {
	Ancestors AncestorSource
	Self      mastodon.Account
}

// Returns false if any ancestor of the status was authored by Self. Does one network call per invocation.
func (g *ConversationGuard) Check(ctx context.Context, status *mastodon.Status) (bool, error) {
	ancestors, err := g.Ancestors.StatusAncestors(ctx, status.ID)
	if err != nil {
		return false, err
	}
	for _, a := range ancestors {
		if a.Account.ID == g.Self.ID {
			return false, nil
		}
	}
	return true, nil
}

// Pipeline stage applying the guard to a notification's status. Notifications without a status are rejected without any request.
func (g *ConversationGuard) NotificationStage() Stage[mastodon.Notification] {
	return Async("conversation-guard", func(ctx context.Context, n mastodon.Notification) (bool, error) {
		if n.Status == nil {
			return false, nil
		}
		return g.Check(ctx, n.Status)
	})
}
