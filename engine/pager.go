package engine

import (
	"context"
	"time"
)

// Cursor-based source of pages. Each call returns the next page; more is false when the source has nothing after this page.
type PageSource[T any] interface {
	FetchPage(ctx context.Context) (items []T, more bool, err error)
}

type PagerOptions struct {
	// Hard ceiling on FetchPage calls. Zero or negative means no fetch at all.
	MaxPages int

	// Items created before this time end the sequence. The zero value disables the cutoff.
	StaleBefore time.Time
}

// Lazy, finite [Iterator] over a [PageSource].
//
// Pages are pulled one at a time, only when the previous page is exhausted. The sequence ends at the first of: MaxPages fetched and consumed, the source reporting no more pages, or an item older than StaleBefore. The stale item is not yielded, and no page is fetched after it.
//
// The cutoff assumes the source is newest-first. Items out of order past the cutoff are dropped along with everything after them.
type BoundedPager[T any] struct {
	src       PageSource[T]
	createdAt func(T) time.Time
	opts      PagerOptions

	buf   []T
	pages int
	more  bool
	done  bool
	err   error
}

func NewBoundedPager[T any](src PageSource[T], createdAt func(T) time.Time, opts PagerOptions) *BoundedPager[T] {
	return &BoundedPager[T]{
		src:       src,
		createdAt: createdAt,
		opts:      opts,
		more:      true,
	}
}

func (p *BoundedPager[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if p.err != nil {
			return zero, false, p.err
		}
		if p.done {
			return zero, false, nil
		}

		if len(p.buf) > 0 {
			item := p.buf[0]
			p.buf = p.buf[1:]
			if !p.opts.StaleBefore.IsZero() && p.createdAt(item).Before(p.opts.StaleBefore) {
				staleCutoffs.Inc()
				p.done = true
				p.buf = nil
				return zero, false, nil
			}
			itemsYielded.Inc()
			return item, true, nil
		}

		if !p.more || p.pages >= p.opts.MaxPages {
			p.done = true
			continue
		}

		items, more, err := p.src.FetchPage(ctx)
		p.pages++
		pagesFetched.Inc()
		if err != nil {
			p.err = err
			continue
		}
		p.more = more
		p.buf = items
	}
}

// Number of FetchPage calls made so far, including failed ones.
func (p *BoundedPager[T]) Pages() int {
	return p.pages
}
