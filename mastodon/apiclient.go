package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// General purpose client for Mastodon REST API endpoints.
type APIClient struct {
	// Inner HTTP client. May be customized after the overall [APIClient] struct is created; for example to set a default request timeout.
	Client *http.Client

	// Host URL prefix: scheme, hostname, and port. This field is required.
	Host string

	// Optional auth client "middleware".
	Auth AuthMethod

	// Optional HTTP headers which will be included in all requests. Only a single value per key is included; request-level headers will override any client-level defaults.
	Headers http.Header

	// Optional limiter which every request waits on before being sent.
	Limiter *rate.Limiter
}

// Creates a simple APIClient for the provided host.
//
// Uses [http.DefaultClient], and sets a default User-Agent.
func NewAPIClient(host string) *APIClient {
	return &APIClient{
		Client: http.DefaultClient,
		Host:   strings.TrimSuffix(host, "/"),
		Headers: map[string][]string{
			"User-Agent": []string{"tavern"},
		},
	}
}

// High-level helper for simple JSON GET API calls.
//
// This method automatically parses non-successful responses to [APIError].
func (c *APIClient) Get(ctx context.Context, path string, params map[string]any, out any) error {
	_, err := c.get(ctx, path, params, out)
	return err
}

// Same as [APIClient.Get], but also returns the response headers (eg, for 'Link' pagination).
func (c *APIClient) get(ctx context.Context, path string, params map[string]any, out any) (http.Header, error) {
	req := NewAPIRequest(http.MethodGet, path, nil)
	req.Headers.Set("Accept", "application/json")

	if params != nil {
		qp, err := ParseParams(params)
		if err != nil {
			return nil, err
		}
		req.QueryParams = qp
	}
	return c.doJSON(ctx, req, out)
}

// High-level helper for simple JSON-to-JSON POST API calls, with no query params. A nil body sends an empty request body.
//
// This method automatically parses non-successful responses to [APIError].
func (c *APIClient) Post(ctx context.Context, path string, body any, out any) error {
	return c.PostWithHeaders(ctx, path, body, nil, out)
}

// Same as [APIClient.Post], with extra request-level headers (eg, 'Idempotency-Key').
func (c *APIClient) PostWithHeaders(ctx context.Context, path string, body any, hdr http.Header, out any) error {
	var req *APIRequest
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req = NewAPIRequest(http.MethodPost, path, bytes.NewReader(bodyJSON))
		req.Headers.Set("Content-Type", "application/json")
	} else {
		req = NewAPIRequest(http.MethodPost, path, nil)
	}
	req.Headers.Set("Accept", "application/json")
	for k := range hdr {
		req.Headers.Set(k, hdr.Get(k))
	}

	_, err := c.doJSON(ctx, req, out)
	return err
}

func (c *APIClient) doJSON(ctx context.Context, req *APIRequest, out any) (http.Header, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil, readAPIError(resp)
	}

	if out == nil {
		// drain body before returning
		io.ReadAll(resp.Body)
		return resp.Header, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed decoding JSON response body: %w", err)
	}
	return resp.Header, nil
}

// Full-featured method for API requests. Does not parse error responses.
func (c *APIClient) Do(ctx context.Context, req *APIRequest) (*http.Response, error) {

	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for request rate limit: %w", err)
		}
	}

	httpReq, err := req.HTTPRequest(ctx, c.Host, c.Headers)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	if c.Auth != nil {
		resp, err = c.Auth.DoWithAuth(c.Client, httpReq)
	} else {
		resp, err = c.Client.Do(httpReq)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}
