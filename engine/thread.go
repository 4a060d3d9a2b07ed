package engine

import (
	"context"

	"github.com/tavern-social/tavern/mastodon"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Text wrapped around each chunk of a thread. Prefix and suffix lengths are assumed constant across chunks; [Compose] budgets from chunk 0 and rejects plans where a later post comes out longer.
type Framing interface {
	Prefix(i int) string
	Suffix(i int) string
}

type staticFraming struct {
	prefix string
	suffix string
}

func (f staticFraming) Prefix(int) string { return f.prefix }
func (f staticFraming) Suffix(int) string { return f.suffix }

// Same prefix and suffix on every post.
func StaticFraming(prefix, suffix string) Framing {
	return staticFraming{prefix: prefix, suffix: suffix}
}

// Status attributes copied on to every post of a thread.
type Attrs struct {
	Visibility  mastodon.Visibility
	SpoilerText string
}

type ThreadPlan struct {
	// Unframed text of each post. Joined, they give back the composed message.
	Chunks []string

	// Post requests, in publish order. Only the first has InReplyToID set (to the seed, if any); [Publish] chains the rest to the post created just before.
	Posts []mastodon.PostRequest
}

func (tp *ThreadPlan) Len() int {
	return len(tp.Posts)
}

// Splits message in to the fewest posts of at most budget characters each, once framed.
//
// With a seed, the first post replies to it. Returns a [*CompositionError] if the framing leaves no room for content; no request is made in that case, because composing happens before publishing. An empty message gives an empty plan.
func Compose(message string, budget int, framing Framing, attrs Attrs, seed *mastodon.Status) (*ThreadPlan, error) {
	overhead := TextLength(framing.Prefix(0)) + TextLength(framing.Suffix(0))
	if budget-overhead <= 0 {
		compositionErrors.Inc()
		return nil, &CompositionError{Budget: budget, Overhead: overhead, Post: -1}
	}

	chunks := SplitText(message, budget-overhead)
	plan := &ThreadPlan{
		Chunks: chunks,
		Posts:  make([]mastodon.PostRequest, 0, len(chunks)),
	}
	for i, chunk := range chunks {
		text := framing.Prefix(i) + chunk + framing.Suffix(i)
		if TextLength(text) > budget {
			compositionErrors.Inc()
			return nil, &CompositionError{
				Budget:   budget,
				Overhead: TextLength(framing.Prefix(i)) + TextLength(framing.Suffix(i)),
				Post:     i,
			}
		}
		req := mastodon.PostRequest{
			Text:           text,
			Visibility:     attrs.Visibility,
			SpoilerText:    attrs.SpoilerText,
			IdempotencyKey: uuid.NewString(),
		}
		if i == 0 && seed != nil {
			req.InReplyToID = seed.ID
		}
		plan.Posts = append(plan.Posts, req)
	}
	return plan, nil
}

type StatusPoster interface {
	CreateStatus(ctx context.Context, req *mastodon.PostRequest) (*mastodon.Status, error)
}

// Creates the posts of a plan one after the other. Each post after the first replies to the post created before it, so a post is only sent once the previous one returned its ID.
//
// On failure, returns the statuses created so far along with a [*PublishError]. Nothing is rolled back.
func Publish(ctx context.Context, poster StatusPoster, plan *ThreadPlan) ([]mastodon.Status, error) {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()
	span.SetAttributes(attribute.Int("posts", plan.Len()))

	published := make([]mastodon.Status, 0, plan.Len())
	for i := range plan.Posts {
		req := plan.Posts[i]
		if i > 0 {
			req.InReplyToID = published[i-1].ID
		}
		st, err := poster.CreateStatus(ctx, &req)
		if err != nil {
			span.RecordError(err)
			return published, &PublishError{Published: len(published), Total: plan.Len(), Err: err}
		}
		postsPublished.Inc()
		published = append(published, *st)
	}
	return published, nil
}

// Returns the last status of a published thread, or fallback when nothing was published.
func Last(published []mastodon.Status, fallback *mastodon.Status) *mastodon.Status {
	if len(published) == 0 {
		return fallback
	}
	return &published[len(published)-1]
}
