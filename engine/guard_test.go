package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/tavern-social/tavern/mastodon"

	"github.com/stretchr/testify/assert"
)

type fakeAncestors struct {
	threads map[string][]mastodon.Status
	calls   int
	err     error
}

func (f *fakeAncestors) StatusAncestors(ctx context.Context, statusID string) ([]mastodon.Status, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.threads[statusID], nil
}

func TestConversationGuard(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	self := mastodon.Account{ID: "1", Acct: "barmaid"}
	src := &fakeAncestors{threads: map[string][]mastodon.Status{
		"fresh": {
			{ID: "a", Account: mastodon.Account{ID: "2", Acct: "alice"}},
		},
		"answered": {
			{ID: "a", Account: mastodon.Account{ID: "2", Acct: "alice"}},
			{ID: "b", Account: mastodon.Account{ID: "1", Acct: "barmaid"}},
		},
		// same handle, but an account on another instance: only the ID counts
		"lookalike": {
			{ID: "c", Account: mastodon.Account{ID: "99", Acct: "barmaid"}},
		},
	}}
	g := &ConversationGuard{Ancestors: src, Self: self}

	for id, want := range map[string]bool{"fresh": true, "answered": false, "lookalike": true, "root": true} {
		ok, err := g.Check(ctx, &mastodon.Status{ID: id})
		assert.NoError(err)
		assert.Equal(want, ok, id)
	}

	{
		stage := g.NotificationStage()
		calls := src.calls
		ok, err := stage.Check(ctx, mastodon.Notification{ID: "n1", Type: mastodon.NotificationMention})
		assert.NoError(err)
		assert.False(ok)
		assert.Equal(calls, src.calls)

		ok, err = stage.Check(ctx, mastodon.Notification{ID: "n2", Status: &mastodon.Status{ID: "answered"}})
		assert.NoError(err)
		assert.False(ok)
		assert.Equal(calls+1, src.calls)
	}

	{
		boom := errors.New("timeout")
		g := &ConversationGuard{Ancestors: &fakeAncestors{err: boom}, Self: self}
		_, err := g.Check(ctx, &mastodon.Status{ID: "x"})
		assert.ErrorIs(err, boom)
	}
}
