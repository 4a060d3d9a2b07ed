package robusthttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// LeveledSlog adapts a slog.Logger to the retryablehttp.LeveledLogger interface.
type LeveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l LeveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

// attempt-level chatter from retryablehttp is only useful when debugging
func (l LeveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

type clientConfig struct {
	retry   *retryablehttp.Client
	timeout time.Duration
}

type Option func(*clientConfig)

// WithMaxRetries sets the maximum number of retries for the HTTP client. Zero
// disables retries.
func WithMaxRetries(maxRetries int) Option {
	return func(cfg *clientConfig) {
		cfg.retry.RetryMax = max(maxRetries, 0)
	}
}

// WithRetryWait sets the bounds of the backoff between retries.
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.retry.RetryWaitMin = waitMin
		cfg.retry.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the overall timeout of a request, retries included.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithLogger sets a custom logger for the HTTP client.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.retry.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger})
	}
}

// WithTransport replaces the pooled, traced default transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(cfg *clientConfig) {
		cfg.retry.HTTPClient.Transport = transport
	}
}

// Generates an HTTP client for talking to a Mastodon instance. The returned
// client has the stdlib http.Client interface, but has Hashicorp retryablehttp
// logic internally.
//
// Retries are off unless WithMaxRetries is given: the bots run from cron and a
// failed run is simply tried again on the next tick. When enabled, the client
// retries on connection errors and 5xx status (except 501), and logs
// intermediate failures with WARN level.
func NewClient(options ...Option) *http.Client {
	logger := LeveledSlog{inner: slog.Default().With("subsystem", "RobustHTTPClient")}
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = otelhttp.NewTransport(cleanhttp.DefaultPooledTransport())
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(logger)
	retryClient.CheckRetry = DefaultRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	cfg := &clientConfig{
		retry:   retryClient,
		timeout: 30 * time.Second,
	}
	for _, option := range options {
		option(cfg)
	}

	client := retryClient.StandardClient()
	client.Timeout = cfg.timeout
	return client
}

// DefaultRetryPolicy is a custom wrapper around retryablehttp.DefaultRetryPolicy.
// It treats `429 Too Many Requests` as non-retryable: Mastodon rate limit
// windows are minutes long, far past any sensible backoff.
func DefaultRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
