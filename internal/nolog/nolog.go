// Package nolog provides the silent logger used whenever a component
// is given a nil *slog.Logger.
package nolog

import "context"
import "log/slog"

type handler struct{}

func (handler) Enabled(context.Context, slog.Level) bool  { return false }
func (handler) Handle(context.Context, slog.Record) error { return nil }
func (handler) WithAttrs([]slog.Attr) slog.Handler        { return handler{} }
func (handler) WithGroup(string) slog.Handler             { return handler{} }

var silent = slog.New(handler{})

// Returns a logger that discards everything. Enabled() is always
// false, so callers skip message formatting entirely.
func Logger() *slog.Logger { return silent }

// Returns the given logger, or the silent one if nil.
func Or(logger *slog.Logger) *slog.Logger {
	if logger == nil { return silent }
	return logger
}
