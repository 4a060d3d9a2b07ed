// tavern: a set of Mastodon bots for running a community instance.
//
// Each subcommand does a single bounded pass over the account's notifications
// or the public timeline and exits; they are meant to be run from cron.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "tavern",
		Usage:   "Mastodon bots for community instances",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "domain",
			Usage:   "domain (or URL) of the Mastodon instance, if not given as argument",
			EnvVars: []string{"TAVERN_DOMAIN"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "access token of the bot account, if not given as argument",
			EnvVars: []string{"TAVERN_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "info",
			EnvVars: []string{"TAVERN_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.DurationFlag{
			Name:    "http-timeout",
			Usage:   "timeout of each API request, retries included",
			Value:   30 * time.Second,
			EnvVars: []string{"TAVERN_HTTP_TIMEOUT"},
		},
		&cli.IntFlag{
			Name:    "http-retries",
			Usage:   "retries of API requests failing with connection errors or 5xx status",
			Value:   0,
			EnvVars: []string{"TAVERN_HTTP_RETRIES"},
		},
		&cli.Float64Flag{
			Name:    "api-rate-limit",
			Usage:   "max API requests per second (0 for no limit)",
			Value:   0,
			EnvVars: []string{"TAVERN_API_RATE_LIMIT"},
		},
		&cli.StringFlag{
			Name:    "metrics-push-url",
			Usage:   "prometheus push gateway to send run metrics to",
			EnvVars: []string{"TAVERN_METRICS_PUSH_URL"},
		},
		&cli.StringFlag{
			Name: "slack-webhook-url",
			// eg: https://hooks.slack.com/services/X1234
			Usage:   "full URL of slack webhook, to post run summaries",
			EnvVars: []string{"SLACK_WEBHOOK_URL"},
		},
	}

	app.Commands = []*cli.Command{
		barmaidCmd,
		familierCmd,
		serveuseCmd,
	}

	return app.Run(args)
}
