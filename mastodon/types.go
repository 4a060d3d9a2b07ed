package mastodon

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationMention   NotificationType = "mention"
	NotificationFollow    NotificationType = "follow"
	NotificationFavourite NotificationType = "favourite"
	NotificationPoll      NotificationType = "poll"
	NotificationReblog    NotificationType = "reblog"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
	VisibilityDirect   Visibility = "direct"
)

// Account as returned inside statuses, notifications, and by verify_credentials.
//
// Acct is the handle: "user" for accounts on the same instance, "user@domain" for remote ones. ID is only meaningful on the instance the client is talking to.
type Account struct {
	ID       string `json:"id"`
	Acct     string `json:"acct"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Returns true for accounts hosted on the same instance as the client.
func (a Account) IsLocal() bool {
	return !strings.Contains(a.Acct, "@")
}

type Status struct {
	ID              string     `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	Account         Account    `json:"account"`
	Content         string     `json:"content"`
	Visibility      Visibility `json:"visibility"`
	SpoilerText     string     `json:"spoiler_text"`
	InReplyToID     *string    `json:"in_reply_to_id,omitempty"`
	FavouritesCount int        `json:"favourites_count"`
	ReblogsCount    int        `json:"reblogs_count"`
	Reblogged       bool       `json:"reblogged"`
	URL             string     `json:"url,omitempty"`
}

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Account   Account          `json:"account"`
	Status    *Status          `json:"status,omitempty"`
}

// Response of the status context endpoint.
type Context struct {
	Ancestors   []Status `json:"ancestors"`
	Descendants []Status `json:"descendants"`
}

// Parameters for creating a status.
type PostRequest struct {
	Text        string     `json:"status"`
	Visibility  Visibility `json:"visibility,omitempty"`
	InReplyToID string     `json:"in_reply_to_id,omitempty"`
	SpoilerText string     `json:"spoiler_text,omitempty"`

	// Sent as the 'Idempotency-Key' header, not in the body. Mastodon deduplicates status creation with the same key for an hour.
	IdempotencyKey string `json:"-"`
}
