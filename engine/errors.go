package engine

import (
	"errors"
	"fmt"
)

var ErrBudgetTooSmall = errors.New("character budget leaves no room for content")

// Returned by [Compose] when framing does not leave room for content within the per-post budget. Raised before any post is sent.
type CompositionError struct {
	Budget   int
	Overhead int

	// Index of the offending post, or -1 when detected before splitting.
	Post int
}

func (e *CompositionError) Error() string {
	if e.Post >= 0 {
		return fmt.Sprintf("post %d exceeds budget of %d characters (framing: %d): %s", e.Post, e.Budget, e.Overhead, ErrBudgetTooSmall)
	}
	return fmt.Sprintf("budget of %d characters with framing of %d: %s", e.Budget, e.Overhead, ErrBudgetTooSmall)
}

func (e *CompositionError) Unwrap() error {
	return ErrBudgetTooSmall
}

// Returned by [Publish] when a post of the thread could not be created. Posts created before the failure stay published.
type PublishError struct {
	Published int
	Total     int
	Err       error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("thread publish failed after %d of %d posts: %s", e.Published, e.Total, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
