package mastodon

import (
	"context"
	"fmt"
)

// Returns the account the client is authenticated as.
func (c *APIClient) VerifyCredentials(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.Get(ctx, "/api/v1/accounts/verify_credentials", nil, &acct); err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}
	return &acct, nil
}
