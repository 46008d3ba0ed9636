package rescue

import (
	"context"
	"os"
)

// UncaughtHandler is invoked when a raised code escapes every protected
// region. It receives the diagnostic captured at the raise site. Handlers
// are expected not to return; one that does falls through to the default
// report-and-exit path.
type UncaughtHandler func(Diagnostic)

const uncaughtKey = contextKey("rescue:uncaught")

// WithUncaughtHandler returns a context whose raises route escaped codes to
// h instead of the default abort. The handler applies to any Raise made
// with the returned context or one derived from it, which scopes it to the
// goroutines that are handed that context; there is no process-wide slot.
func WithUncaughtHandler(ctx context.Context, h UncaughtHandler) context.Context {
	return context.WithValue(ctx, uncaughtKey, h)
}

// GetUncaughtHandler returns the handler installed on ctx, if any.
func GetUncaughtHandler(ctx context.Context) (UncaughtHandler, bool) {
	if h, ok := ctx.Value(uncaughtKey).(UncaughtHandler); ok && h != nil {
		return h, true
	}
	return nil, false
}

// exitProcess is replaced in tests.
var exitProcess = os.Exit

// uncaught is the terminal path for a code with no enclosing region: run
// the installed handler if any, then report and exit. It never returns
// normally.
func uncaught(ctx context.Context, d Diagnostic) {
	if h, ok := GetUncaughtHandler(ctx); ok {
		h(d)
	}
	logger.Error().
		Int("code", d.Code).
		Str("file", d.File).
		Str("function", d.Function).
		Int("line", d.Line).
		Msg("uncaught exception")
	exitProcess(1)
}
