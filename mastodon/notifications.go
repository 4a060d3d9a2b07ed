package mastodon

import (
	"context"
	"fmt"
	"net/url"
)

// Maximum page size for notifications and timelines.
const MaxPageSize = 40

func (c *APIClient) DismissNotification(ctx context.Context, id string) error {
	if err := c.Post(ctx, "/api/v1/notifications/"+url.PathEscape(id)+"/dismiss", nil, nil); err != nil {
		return fmt.Errorf("dismissing notification %s: %w", id, err)
	}
	return nil
}

// Returns a pager over the authenticated account's notifications, newest first. Notification types in exclude are filtered out by the server.
func (c *APIClient) NotificationsPager(exclude ...NotificationType) *Pager[Notification] {
	params := map[string]any{
		"limit": MaxPageSize,
	}
	if len(exclude) > 0 {
		params["exclude_types"] = exclude
	}
	return &Pager[Notification]{
		client: c,
		path:   "/api/v1/notifications",
		params: params,
	}
}
