// Package cli implements the flametower command-line interface.
//
// The CLI is built with cobra. Static outputs go through the shared
// [pipeline.Runner]; the view command runs the same layout inside a
// bubbletea program that drives the animation renderers frame by frame.
//
// # Commands
//
//   - view: Explore a call tree interactively in the terminal
//   - render: Write SVG, PNG, JSON or DOT files
//   - stats: Summarise a call tree
//   - generate: Write a random call tree as JSON
//   - convert: Turn folded stacks into graph JSON
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces pipeline and frame events. Loggers are passed through
// context.Context. The viewer owns the terminal, so it logs to --log-file
// or not at all.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
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

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote 3 files (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
