package main

import (
	"github.com/tavern-social/tavern/bots"

	"github.com/urfave/cli/v2"
)

var serveuseCmd = &cli.Command{
	Name:      "serveuse",
	Usage:     "reblog the most appreciated recent statuses",
	ArgsUsage: `<domain> <token>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "favorited-duration",
			Usage: "ISO 8601 duration; older statuses are not considered",
			Value: "P56D",
		},
		&cli.StringFlag{
			Name:  "reblogged-duration",
			Usage: "ISO 8601 duration; older statuses count for the average but are not reblogged",
			Value: "P1D",
		},
		&cli.IntFlag{
			Name:  "fetch-requests",
			Usage: "fetch requests (40 statuses are fetched per request)",
			Value: 250,
		},
		&cli.IntFlag{
			Name:  "reblog-requests",
			Usage: "maximum reblogs per run",
			Value: 3,
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "only consider the local timeline",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "log the selection without reblogging",
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx)

		domain, token, err := instanceArgs(cctx)
		if err != nil {
			return err
		}
		favorited, err := durationFlag(cctx, "favorited-duration")
		if err != nil {
			return err
		}
		reblogged, err := durationFlag(cctx, "reblogged-duration")
		if err != nil {
			return err
		}

		config := bots.ReblogerConfig{
			FavoritedDuration: favorited,
			RebloggedDuration: reblogged,
			FetchRequests:     cctx.Int("fetch-requests"),
			ReblogRequests:    cctx.Int("reblog-requests"),
			Local:             cctx.Bool("local"),
			DryRun:            cctx.Bool("dry-run"),
		}
		if err := config.Validate(); err != nil {
			return err
		}

		client := configClient(cctx, logger, domain, token)
		return runBot(cctx, logger, "serveuse", bots.NewRebloger(client, config, logger))
	},
}
