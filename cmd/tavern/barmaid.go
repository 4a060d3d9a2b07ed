package main

import (
	"github.com/tavern-social/tavern/bots"

	"github.com/urfave/cli/v2"
)

var barmaidCmd = &cli.Command{
	Name:      "barmaid",
	Usage:     "forward mentions to other users",
	ArgsUsage: `<domain> <token> <forward-message> <copy-message>`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "forward-to",
			Usage:    "users to mention (by acct). They are also ignored",
			Required: true,
			EnvVars:  []string{"BARMAID_FORWARD_TO"},
		},
		&cli.StringSliceFlag{
			Name:    "ignore-from",
			Usage:   "users to ignore (by acct)",
			EnvVars: []string{"BARMAID_IGNORE_FROM"},
		},
		&cli.IntFlag{
			Name:  "characters-per-status",
			Usage: "limit characters per status. Defaults to 500 like Mastodon",
			Value: 500,
		},
		&cli.IntFlag{
			Name:  "fetch-until-count",
			Usage: "maximum requests when retrieving notifications (40 notifications are fetched per request)",
			Value: 30,
		},
		&cli.StringFlag{
			Name:  "fetch-until-duration",
			Usage: "ISO 8601 duration after which notifications are considered stale",
			Value: "PT6H",
		},
		&cli.BoolFlag{
			Name:  "dismiss",
			Usage: "dismiss mention notifications once forwarded",
		},
	},
	Action: runBarmaid,
}

func runBarmaid(cctx *cli.Context) error {
	logger := configLogger(cctx)

	domain, token, err := instanceArgs(cctx)
	if err != nil {
		return err
	}
	forwardMessage, err := messageArg(cctx, 2, "forward-message")
	if err != nil {
		return err
	}
	copyMessage, err := messageArg(cctx, 3, "copy-message")
	if err != nil {
		return err
	}
	fetchUntil, err := durationFlag(cctx, "fetch-until-duration")
	if err != nil {
		return err
	}

	config := bots.ForwarderConfig{
		ForwardTo:           cctx.StringSlice("forward-to"),
		IgnoreFrom:          cctx.StringSlice("ignore-from"),
		ForwardMessage:      forwardMessage,
		CopyMessage:         copyMessage,
		CharactersPerStatus: cctx.Int("characters-per-status"),
		FetchUntilCount:     cctx.Int("fetch-until-count"),
		FetchUntilDuration:  fetchUntil,
		Dismiss:             cctx.Bool("dismiss"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	client := configClient(cctx, logger, domain, token)
	return runBot(cctx, logger, "barmaid", bots.NewForwarder(client, config, logger))
}
