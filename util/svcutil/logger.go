package svcutil

import (
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"
)

// ParseLevel maps a --log-level value to a slog level. Unknown values fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ConfigLogger builds the JSON logger for a run from the "log-level" flag and
// installs it as the slog default.
func ConfigLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(cctx.String("log-level")),
	}))
	slog.SetDefault(logger)
	return logger
}
