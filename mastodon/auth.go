package mastodon

import (
	"net/http"
)

// Interface for auth implementations which can be used with [APIClient].
type AuthMethod interface {
	DoWithAuth(c *http.Client, req *http.Request) (*http.Response, error)
}

// [AuthMethod] for OAuth access tokens, as issued to bot applications in the Mastodon developer settings.
type BearerAuth struct {
	AccessToken string
}

func (a *BearerAuth) DoWithAuth(c *http.Client, req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+a.AccessToken)
	return c.Do(req)
}

// Creates an [APIClient] for the given instance host, authenticated with an access token.
func NewBearerClient(host, accessToken string) *APIClient {
	c := NewAPIClient(host)
	c.Auth = &BearerAuth{AccessToken: accessToken}
	return c
}
