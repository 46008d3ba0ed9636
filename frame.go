package rescue

import "context"

// Frame lifecycle bits. Raised and consumed together enforce first-match
// semantics; finallyDone enforces the single-fire guarantee of the guard.
const (
	stateRaised      uint8 = 1 << iota // the body raised and the code reached this frame
	stateConsumed                      // a clause in this frame consumed the code
	stateFinallyDone                   // the finally guard already ran
)

// frame is the per-entry record of a protected region. One frame exists for
// the dynamic extent of a single Run call, owned by that call and never
// heap-shared: the chain of outer links mirrors the nesting of active
// regions on the goroutine's call stack.
type frame struct {
	pending  int        // non-zero while an unconsumed code is held by this frame
	state    uint8      // lifecycle bits above
	rethrows uint8      // codes that passed through this frame unconsumed
	diag     Diagnostic // raise-site record for the pending code
	outer    *frame     // next enclosing frame, nil at the outermost region
}

type contextKey string

const frameKey = contextKey("rescue:frame")

// withFrame returns a context carrying f as the innermost active frame.
func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, frameKey, f)
}

// topFrame returns the innermost active frame, or nil when ctx is outside
// any protected region.
func topFrame(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey).(*frame)
	return f
}
