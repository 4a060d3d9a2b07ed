package engine

import (
	"time"

	"github.com/tavern-social/tavern/mastodon"
)

// Batch selection of reblog candidates.
//
// A status qualifies if it was favourited at least once, is recent enough, is not already reblogged, and has at least the average favourite count of the recent favourited statuses. Only the oldest qualifying status of each account is kept.
type SelectionPolicy struct {
	// Statuses created before this are ignored entirely, including for the average.
	FavoritedSince time.Time

	// Statuses created before this count towards the average but are never selected.
	RebloggableSince time.Time

	// Upper bound on selected statuses. Zero or negative selects nothing.
	MaxSelected int
}

type Selection struct {
	Favorited []mastodon.Status

	// Mean favourite count over Favorited; zero when Favorited is empty.
	Average float64

	// Candidates, oldest first, one per account.
	Rebloggable []mastodon.Status

	// Prefix of Rebloggable, at most MaxSelected long. To be reblogged in this order.
	Selected []mastodon.Status
}

// Computes the selection for a batch fetched newest-first. Only looks at the batch itself.
func (p *SelectionPolicy) Select(statuses []mastodon.Status) *Selection {
	sel := &Selection{}

	total := 0
	for _, s := range statuses {
		if s.FavouritesCount > 0 && !s.CreatedAt.Before(p.FavoritedSince) {
			sel.Favorited = append(sel.Favorited, s)
			total += s.FavouritesCount
		}
	}
	if len(sel.Favorited) == 0 {
		return sel
	}
	sel.Average = float64(total) / float64(len(sel.Favorited))

	// walk backwards: the batch is newest-first, and the oldest status per account wins
	seen := make(map[string]bool)
	for i := len(sel.Favorited) - 1; i >= 0; i-- {
		s := sel.Favorited[i]
		if s.Reblogged || float64(s.FavouritesCount) < sel.Average || s.CreatedAt.Before(p.RebloggableSince) {
			continue
		}
		if seen[s.Account.ID] {
			continue
		}
		seen[s.Account.ID] = true
		sel.Rebloggable = append(sel.Rebloggable, s)
	}

	if p.MaxSelected > 0 {
		n := min(p.MaxSelected, len(sel.Rebloggable))
		sel.Selected = sel.Rebloggable[:n:n]
	}
	return sel
}
