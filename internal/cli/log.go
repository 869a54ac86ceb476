// Package cli implements the depth command-line interface.
//
// The root command fetches a crate's dependency tree from crates.io and
// prints it; subcommands manage the response cache and serve trees over
// HTTP. The CLI is built using cobra and logs with charmbracelet/log.
//
// # Commands
//
//   - depth -c <crate> [-l levels] [-o]: print a dependency tree
//   - depth --manifest Cargo.toml: one tree per [dependencies] entry
//   - cache clear|path: manage the file cache
//   - serve: HTTP endpoints for trees, DOT and JSON
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces each registry request and cache lookup. Loggers are passed through
// context.Context and carry the run id.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Fetched 42 packages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
