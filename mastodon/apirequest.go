package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type APIRequest struct {
	// HTTP method as a string (eg "GET") (required)
	Method string

	// API path relative to the instance host, eg "/api/v1/notifications" (required)
	Path string

	// Optional request body (may be nil). If this is provided, then 'Content-Type' header should be specified
	Body io.Reader

	// Optional function to return new reader for request body; used for retries. Body still needs to be defined, even if this function is provided.
	GetBody func() (io.ReadCloser, error)

	// Optional query parameters (field may be nil). These will be encoded as provided.
	QueryParams url.Values

	// Optional HTTP headers (field may be nil). Only the first value will be included for each header key ("Set" behavior).
	Headers http.Header
}

// Initializes a new request struct. Initializes Headers and QueryParams so they can be manipulated immediately.
//
// If body is provided (it can be nil), will try to turn it in to the most retry-able form.
func NewAPIRequest(method string, path string, body io.Reader) *APIRequest {
	req := APIRequest{
		Method:      method,
		Path:        path,
		Headers:     map[string][]string{},
		QueryParams: map[string][]string{},
	}

	// http.NewRequestWithContext already handles GetBody() for bytes.Reader and strings.Reader; only add io.Seeker support here
	if body != nil {
		switch v := body.(type) {
		case io.Seeker:
			req.Body = io.NopCloser(body)
			req.GetBody = func() (io.ReadCloser, error) {
				v.Seek(0, 0)
				return io.NopCloser(body), nil
			}
		default:
			req.Body = body
		}
	}
	return &req
}

// Creates an [http.Request] for this API request.
//
// `host` parameter should be a URL prefix: schema, hostname, port (required)
//
// `clientHeaders`, if provided, is treated as client-level defaults. Request-level headers take priority. (optional; may be nil)
func (r *APIRequest) HTTPRequest(ctx context.Context, host string, clientHeaders http.Header) (*http.Request, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("empty hostname in host URL")
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("empty scheme in host URL")
	}
	if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
		return nil, fmt.Errorf("invalid request path: %q", r.Path)
	}
	u.Path = r.Path
	u.RawQuery = ""
	if len(r.QueryParams) > 0 {
		u.RawQuery = r.QueryParams.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u.String(), r.Body)
	if err != nil {
		return nil, err
	}

	if r.GetBody != nil {
		httpReq.GetBody = r.GetBody
	}

	for k := range clientHeaders {
		httpReq.Header.Set(k, clientHeaders.Get(k))
	}
	for k := range r.Headers {
		httpReq.Header.Set(k, r.Headers.Get(k))
	}

	return httpReq, nil
}
