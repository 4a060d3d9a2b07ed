package mastodon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tomnomnom/linkheader"
)

// Cursor-based pager over a paginated list endpoint.
//
// Follows the 'rel="next"' URL of the 'Link' response header, which Mastodon uses for older items (max_id). Not safe for concurrent use.
type Pager[T any] struct {
	client *APIClient
	path   string
	params map[string]any

	maxID string
	done  bool
	pages int
}

// Fetches the next page. more is false once the server reports no further pages; later calls return no items without any request.
func (p *Pager[T]) FetchPage(ctx context.Context) ([]T, bool, error) {
	if p.done {
		return nil, false, nil
	}

	params := make(map[string]any, len(p.params)+1)
	for k, v := range p.params {
		params[k] = v
	}
	if p.maxID != "" {
		params["max_id"] = p.maxID
	}

	var items []T
	hdr, err := p.client.get(ctx, p.path, params, &items)
	if err != nil {
		return nil, false, fmt.Errorf("fetching %s (page %d): %w", p.path, p.pages+1, err)
	}
	p.pages++

	next := nextMaxID(hdr.Get("Link"))
	if next == "" || len(items) == 0 {
		p.done = true
	}
	p.maxID = next
	return items, !p.done, nil
}

// Number of pages fetched so far.
func (p *Pager[T]) Pages() int {
	return p.pages
}

func nextMaxID(header string) string {
	if header == "" {
		return ""
	}
	for _, link := range linkheader.Parse(header).FilterByRel("next") {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if id := u.Query().Get("max_id"); id != "" {
			return id
		}
	}
	return ""
}
