package imgdata

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for imgdata.
// By default, imgdata produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by imgdata:
//   - [slog.LevelDebug]: conversion paths, scaling and clipping decisions
//   - [slog.LevelWarn]: lossy substitutions (best-fit formats)
//   - [slog.LevelError]: pitch mismatches between the catalog and a codec
//
// Converters created without [WithLogger] read the package logger on every
// call, so SetLogger affects them immediately. Records carry a "component"
// attribute naming the part of imgdata that emitted them.
//
// Example:
//
//	imgdata.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by imgdata.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// withComponent tags the records of l with the emitting component and attrs.
// A logger that discards everything is returned unchanged.
func withComponent(l *slog.Logger, component string, attrs ...any) *slog.Logger {
	if !l.Enabled(context.Background(), slog.LevelError) {
		return l
	}
	return l.With(append([]any{slog.String("component", component)}, attrs...)...)
}
