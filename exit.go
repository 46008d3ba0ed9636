package rescue

import "context"

// Exit identifies how a protected region was left.
type Exit int

const (
	// ExitNormal means the body ran to completion, or a raised code was
	// consumed by this region's handler chain.
	ExitNormal Exit = iota
	// ExitBreak means the body called Break: the caller should break out of
	// the loop enclosing the region.
	ExitBreak
	// ExitContinue means the body called Continue: the caller should
	// continue the loop enclosing the region.
	ExitContinue
	// ExitReturn means the body called Return: the caller should return
	// from the function enclosing the region.
	ExitReturn
)

// String returns the name of the exit kind.
func (e Exit) String() string {
	switch e {
	case ExitNormal:
		return "normal"
	case ExitBreak:
		return "break"
	case ExitContinue:
		return "continue"
	case ExitReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Outcome reports how a single Run concluded. Exit distinguishes normal
// completion from the early-exit requests; Caught is the code consumed by
// this region's handler chain, or 0 when none was.
type Outcome struct {
	Exit   Exit
	Caught int
}

// exitSignal carries an early-exit request to the innermost Run.
type exitSignal struct {
	kind Exit
}

// Break leaves the innermost protected region and asks its caller to break
// the enclosing loop. The region's finally guard still runs; unlike the
// raw-jump design this engine replaces, early exits cannot skip cleanup.
// Calling Break outside a protected region is a usage error.
func Break(ctx context.Context) {
	earlyExit(ctx, ExitBreak)
}

// Continue leaves the innermost protected region and asks its caller to
// continue the enclosing loop. The finally guard still runs.
func Continue(ctx context.Context) {
	earlyExit(ctx, ExitContinue)
}

// Return leaves the innermost protected region and asks its caller to
// return from the enclosing function. The finally guard still runs.
func Return(ctx context.Context) {
	earlyExit(ctx, ExitReturn)
}

func earlyExit(ctx context.Context, kind Exit) {
	if topFrame(ctx) == nil {
		panic("rescue: " + kind.String() + " exit outside any protected region")
	}
	panic(exitSignal{kind: kind})
}
