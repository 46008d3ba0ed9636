package rescue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodeError wraps a raised code as a conventional Go error, for call sites
// that want to leave raise-and-handle control flow and rejoin error-return
// convention.
type CodeError struct {
	Diag Diagnostic
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	if e.Diag.File == "" {
		return fmt.Sprintf("rescue: code %d", e.Diag.Code)
	}
	return fmt.Sprintf("rescue: code %d (raised at %s:%d)", e.Diag.Code, e.Diag.File, e.Diag.Line)
}

// Code returns the raised code.
func (e *CodeError) Code() int {
	return e.Diag.Code
}

// Attempt runs body inside a protected region that catches every code and
// returns it as a *CodeError instead of propagating further. A nil return
// means the body completed without raising. Early exits and foreign panics
// are not intercepted.
func Attempt(ctx context.Context, body func(context.Context)) error {
	var caught error
	Do(ctx, body, CatchAll(func(_ context.Context, code int) {
		caught = &CodeError{Diag: Diagnostic{Code: code}}
	}))
	return caught
}

// AttemptAll runs each body in its own protected region, in order, and
// aggregates every escaped code into a single error. A failing body does
// not stop the ones after it. Returns nil when every body completes.
func AttemptAll(ctx context.Context, bodies ...func(context.Context)) error {
	var result *multierror.Error
	for _, body := range bodies {
		if err := Attempt(ctx, body); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// AsCode extracts the raised code from an error produced by Attempt,
// unwrapping as needed.
func AsCode(err error) (int, bool) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Diag.Code, true
	}
	return 0, false
}
