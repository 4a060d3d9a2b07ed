package mastodon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func statusPath(id, action string) string {
	p := "/api/v1/statuses/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

// Fetches the ancestors of a status (the posts it replies to, up to the thread root).
func (c *APIClient) StatusAncestors(ctx context.Context, statusID string) ([]Status, error) {
	var out Context
	if err := c.Get(ctx, statusPath(statusID, "context"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching context of status %s: %w", statusID, err)
	}
	return out.Ancestors, nil
}

func (c *APIClient) CreateStatus(ctx context.Context, req *PostRequest) (*Status, error) {
	var hdr http.Header
	if req.IdempotencyKey != "" {
		hdr = http.Header{}
		hdr.Set("Idempotency-Key", req.IdempotencyKey)
	}
	var out Status
	if err := c.PostWithHeaders(ctx, "/api/v1/statuses", req, hdr, &out); err != nil {
		return nil, fmt.Errorf("creating status: %w", err)
	}
	return &out, nil
}

func (c *APIClient) Reblog(ctx context.Context, statusID string) error {
	if err := c.Post(ctx, statusPath(statusID, "reblog"), nil, nil); err != nil {
		return fmt.Errorf("reblogging status %s: %w", statusID, err)
	}
	return nil
}
