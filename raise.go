package rescue

import (
	"context"
	"fmt"
	"runtime"
)

// Diagnostic records the site of a Raise call. It is captured eagerly when
// the code is raised and travels with it through any number of enclosing
// regions, so an uncaught report always names the original raise site.
type Diagnostic struct {
	Code     int
	File     string
	Function string
	Line     int
}

// String returns a one-line description of the raise site.
func (d Diagnostic) String() string {
	return fmt.Sprintf("code %d raised at %s:%d (%s)", d.Code, d.File, d.Line, d.Function)
}

// raiseSignal is the value used for the non-local transfer from a Raise
// call to the innermost Run on the goroutine. Any other panic value is
// foreign and passes through regions untouched.
type raiseSignal struct {
	code int
	diag Diagnostic
}

// Raise signals the error code and transfers control to the innermost
// protected region active on the calling goroutine. The code must be
// non-zero; Raise panics with a usage error otherwise.
//
// When ctx carries no active region, the uncaught path runs instead: the
// handler installed with WithUncaughtHandler if any, then a structured
// report and process exit with a non-zero status. An uncaught code never
// passes silently.
func Raise(ctx context.Context, code int) {
	if code == 0 {
		panic("rescue: Raise called with reserved code 0")
	}
	sig := raiseSignal{code: code, diag: callerDiagnostic(code, 2)}
	if topFrame(ctx) == nil {
		uncaught(ctx, sig.diag)
	}
	panic(sig)
}

// callerDiagnostic captures the raise site skip frames above this call.
func callerDiagnostic(code, skip int) Diagnostic {
	d := Diagnostic{Code: code}
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return d
	}
	d.File = file
	d.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		d.Function = fn.Name()
	}
	return d
}
