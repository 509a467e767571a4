package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output, keeping the
// engine and API suites quiet.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
