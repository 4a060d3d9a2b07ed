package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID        int
	CreatedAt time.Time
}

func itemTime(i item) time.Time { return i.CreatedAt }

// in-memory PageSource which records how many pages were requested
type fakeSource struct {
	pages   [][]item
	fetched int
	err     error
}

func (f *fakeSource) FetchPage(ctx context.Context) ([]item, bool, error) {
	f.fetched++
	if f.err != nil {
		return nil, false, f.err
	}
	if f.fetched > len(f.pages) {
		return nil, false, nil
	}
	return f.pages[f.fetched-1], f.fetched < len(f.pages), nil
}

func ids(items []item) []int {
	out := make([]int, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

// three pages of two items each, one minute apart, newest first
func testPages(now time.Time) [][]item {
	var pages [][]item
	n := 0
	for p := 0; p < 3; p++ {
		var page []item
		for i := 0; i < 2; i++ {
			page = append(page, item{ID: n, CreatedAt: now.Add(-time.Duration(n) * time.Minute)})
			n++
		}
		pages = append(pages, page)
	}
	return pages
}

func TestBoundedPagerFlatten(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	now := time.Now()

	src := &fakeSource{pages: testPages(now)}
	p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 10})
	out, err := Collect[item](ctx, p)
	require.NoError(err)
	assert.Equal([]int{0, 1, 2, 3, 4, 5}, ids(out))
	// source reported no more pages after the third
	assert.Equal(3, src.fetched)
	assert.Equal(3, p.Pages())
}

func TestBoundedPagerPageCeiling(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	now := time.Now()

	for _, limit := range []int{-1, 0, 1, 2} {
		src := &fakeSource{pages: testPages(now)}
		p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: limit})
		out, err := Collect[item](ctx, p)
		assert.NoError(err)
		want := limit
		if want < 0 {
			want = 0
		}
		assert.Equal(want, src.fetched)
		assert.Len(out, 2*want)

		// exhausted pager stays exhausted
		_, ok, err := p.Next(ctx)
		assert.NoError(err)
		assert.False(ok)
		assert.Equal(want, src.fetched)
	}
}

func TestBoundedPagerStaleness(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	now := time.Now()

	{
		// cutoff falls inside the second page: nothing from the third page is fetched
		src := &fakeSource{pages: testPages(now)}
		p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 10, StaleBefore: now.Add(-150 * time.Second)})
		out, err := Collect[item](ctx, p)
		require.NoError(err)
		assert.Equal([]int{0, 1, 2}, ids(out))
		assert.Equal(2, src.fetched)
		for _, i := range out {
			assert.False(i.CreatedAt.Before(now.Add(-150 * time.Second)))
		}
	}

	{
		// cutoff at the last item of a page: the next page is still never requested
		src := &fakeSource{pages: testPages(now)}
		p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 10, StaleBefore: now.Add(-30 * time.Second)})
		out, err := Collect[item](ctx, p)
		require.NoError(err)
		assert.Equal([]int{0}, ids(out))
		assert.Equal(1, src.fetched)
	}

	{
		// later items newer than the cutoff are not yielded after a stale one
		pages := [][]item{{
			{ID: 1, CreatedAt: now},
			{ID: 2, CreatedAt: now.Add(-time.Hour)},
			{ID: 3, CreatedAt: now},
		}, {
			{ID: 4, CreatedAt: now},
		}}
		src := &fakeSource{pages: pages}
		p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 10, StaleBefore: now.Add(-time.Minute)})
		out, err := Collect[item](ctx, p)
		require.NoError(err)
		assert.Equal([]int{1}, ids(out))
		assert.Equal(1, src.fetched)
	}
}

func TestBoundedPagerExampleScenario(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	now := time.Now()

	src := &fakeSource{pages: [][]item{{
		{ID: 1, CreatedAt: now},
		{ID: 2, CreatedAt: now.Add(-time.Second)},
	}, {
		{ID: 3, CreatedAt: now.Add(-2 * time.Second)},
	}}}
	p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 1, StaleBefore: now.Add(-100 * time.Second)})
	out, err := Collect[item](ctx, p)
	assert.NoError(err)
	assert.Equal([]int{1, 2}, ids(out))
	assert.Equal(1, src.fetched)
}

func TestBoundedPagerEmptyPages(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	now := time.Now()

	src := &fakeSource{pages: [][]item{{}, {{ID: 7, CreatedAt: now}}, {}}}
	p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 2})
	out, err := Collect[item](ctx, p)
	assert.NoError(err)
	assert.Equal([]int{7}, ids(out))
	assert.Equal(2, src.fetched)
}

func TestBoundedPagerError(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	boom := errors.New("connection reset")
	src := &fakeSource{err: boom}
	p := NewBoundedPager[item](src, itemTime, PagerOptions{MaxPages: 5})

	_, ok, err := p.Next(ctx)
	assert.False(ok)
	assert.ErrorIs(err, boom)

	// the error is sticky and no further fetch happens
	_, _, err = p.Next(ctx)
	assert.ErrorIs(err, boom)
	assert.Equal(1, src.fetched)
}
