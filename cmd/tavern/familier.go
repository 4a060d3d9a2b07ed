package main

import (
	"github.com/tavern-social/tavern/bots"

	"github.com/urfave/cli/v2"
)

var familierCmd = &cli.Command{
	Name:      "familier",
	Usage:     "welcome new users",
	ArgsUsage: `<domain> <token> <message>`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "max-chars",
			Usage: "limit characters per status",
			Value: 500,
		},
		&cli.StringFlag{
			Name:  "ignore-after",
			Usage: "ISO 8601 duration after which follows are not welcomed",
			Value: "PT1H",
		},
		&cli.IntFlag{
			Name:  "fetch-requests",
			Usage: "fetch requests (40 notifications are fetched per request)",
			Value: 30,
		},
		&cli.BoolFlag{
			Name:  "dismiss",
			Usage: "dismiss follow notifications once welcomed",
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx)

		domain, token, err := instanceArgs(cctx)
		if err != nil {
			return err
		}
		message, err := messageArg(cctx, 2, "message")
		if err != nil {
			return err
		}
		ignoreAfter, err := durationFlag(cctx, "ignore-after")
		if err != nil {
			return err
		}

		config := bots.WelcomerConfig{
			Message:       message,
			MaxChars:      cctx.Int("max-chars"),
			IgnoreAfter:   ignoreAfter,
			FetchRequests: cctx.Int("fetch-requests"),
			Dismiss:       cctx.Bool("dismiss"),
		}
		if err := config.Validate(); err != nil {
			return err
		}

		client := configClient(cctx, logger, domain, token)
		return runBot(cctx, logger, "familier", bots.NewWelcomer(client, config, logger))
	},
}
