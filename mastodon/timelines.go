package mastodon

// Returns a pager over the public timeline, newest first. With local set, only statuses from the instance itself are included.
func (c *APIClient) PublicTimelinePager(local bool) *Pager[Status] {
	params := map[string]any{
		"limit": MaxPageSize,
	}
	if local {
		params["local"] = true
	}
	return &Pager[Status]{
		client: c,
		path:   "/api/v1/timelines/public",
		params: params,
	}
}
