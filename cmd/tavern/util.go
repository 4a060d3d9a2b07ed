package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tavern-social/tavern/bots"
	"github.com/tavern-social/tavern/mastodon"
	"github.com/tavern-social/tavern/pkg/robusthttp"
	"github.com/tavern-social/tavern/util/svcutil"

	"github.com/carlmjohnson/versioninfo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sosodev/duration"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

type bot interface {
	Run(ctx context.Context) (*bots.Report, error)
}

// Parses an ISO 8601 duration, like "PT6H" or "P56D".
func parseISODuration(s string) (time.Duration, error) {
	d, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
	}
	return d.ToTimeDuration(), nil
}

func durationFlag(cctx *cli.Context, name string) (time.Duration, error) {
	d, err := parseISODuration(cctx.String(name))
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// Mastodon instance and access token: positional arguments first, then the global flags (and their env vars).
func instanceArgs(cctx *cli.Context) (domain, token string, err error) {
	domain = cctx.Args().Get(0)
	if domain == "" {
		domain = cctx.String("domain")
	}
	token = cctx.Args().Get(1)
	if token == "" {
		token = cctx.String("token")
	}
	if domain == "" {
		return "", "", fmt.Errorf("instance domain is required")
	}
	if token == "" {
		return "", "", fmt.Errorf("access token is required")
	}
	return domain, token, nil
}

// Positional argument after domain and token, required.
func messageArg(cctx *cli.Context, idx int, name string) (string, error) {
	if cctx.Args().Len() <= idx {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return cctx.Args().Get(idx), nil
}

func instanceHost(domain string) string {
	if strings.HasPrefix(domain, "https://") || strings.HasPrefix(domain, "http://") {
		return strings.TrimSuffix(domain, "/")
	}
	return "https://" + strings.TrimSuffix(domain, "/")
}

func configClient(cctx *cli.Context, logger *slog.Logger, domain, token string) *mastodon.APIClient {
	c := mastodon.NewBearerClient(instanceHost(domain), token)
	c.Client = robusthttp.NewClient(
		robusthttp.WithMaxRetries(cctx.Int("http-retries")),
		robusthttp.WithTimeout(cctx.Duration("http-timeout")),
		robusthttp.WithLogger(logger.With("subsystem", "RobustHTTPClient")),
	)
	c.Headers.Set("User-Agent", "tavern/"+versioninfo.Short())
	if limit := cctx.Float64("api-rate-limit"); limit > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(limit), 1)
	}
	return c
}

// Runs a single pass of a bot, then reports on it.
func runBot(cctx *cli.Context, logger *slog.Logger, name string, b bot) error {
	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := setupTracing(ctx, name)
	if err != nil {
		return err
	}
	defer shutdown()

	logger = logger.With("bot", name)
	report, runErr := b.Run(ctx)
	if report != nil {
		logger.Info("done", "duration", report.Duration.String(), "pages", report.Pages, "accepted", report.Accepted, "posts", report.Posts, "reblogs", report.Reblogs)
	}

	if u := cctx.String("metrics-push-url"); u != "" {
		if err := pushMetrics(ctx, u, name); err != nil {
			logger.Warn("failed to push metrics", "url", u, "err", err)
		}
	}
	if u := cctx.String("slack-webhook-url"); u != "" && report != nil && runErr == nil {
		if err := bots.NewSlackNotifier(u).NotifyReport(ctx, report); err != nil {
			logger.Warn("failed to send slack summary", "err", err)
		}
	}
	return runErr
}

func pushMetrics(ctx context.Context, url, name string) error {
	return push.New(url, "tavern").
		Gatherer(prometheus.DefaultGatherer).
		Grouping("bot", name).
		Client(robusthttp.NewClient(robusthttp.WithTimeout(10 * time.Second))).
		PushContext(ctx)
}

func configLogger(cctx *cli.Context) *slog.Logger {
	return svcutil.ConfigLogger(cctx, os.Stdout)
}
