package rescue

import "context"

// clause is one entry in a region's handler chain.
type clause struct {
	match func(code int) bool
	body  func(ctx context.Context, code int)
}

// Run executes body inside the protected region. The body receives a
// derived context that marks this region as the innermost one; Raise calls
// made with that context (at any call depth) resume here.
//
// The returned Outcome reports how the region was left. An unconsumed code
// does not appear in the Outcome: it has already propagated to the next
// enclosing region, or taken the uncaught path, before Run returns.
func (r *Region) Run(ctx context.Context, body func(context.Context)) (out Outcome) {
	f := &frame{outer: topFrame(ctx)}

	defer func() {
		rec := recover()
		// The guard and the rethrow of a still-pending code must happen on
		// every path out, including a raise escaping a clause body below
		// and foreign panics. Note the clause bodies and the guard receive
		// the outer ctx: a raise from either targets the next enclosing
		// region, never this frame again.
		defer r.retire(ctx, f)

		switch sig := rec.(type) {
		case nil:
			// Body completed normally.
		case exitSignal:
			out.Exit = sig.kind
		case raiseSignal:
			f.pending = sig.code
			f.diag = sig.diag
			f.state |= stateRaised
			r.evaluate(ctx, f)
			if f.state&stateConsumed != 0 {
				out.Caught = sig.code
			}
		default:
			// Not ours. Rethrow after the guard runs.
			panic(rec)
		}
	}()

	body(withFrame(ctx, f))
	return
}

// evaluate walks the handler chain in registration order. Each predicate is
// evaluated at most once; the first match consumes the code. The pending
// code is cleared before the clause body runs, so a raise inside the body
// starts propagation at the next enclosing region.
func (r *Region) evaluate(ctx context.Context, f *frame) {
	if f.state&stateRaised == 0 || f.state&stateConsumed != 0 {
		return
	}
	for _, c := range r.clauses {
		if !c.match(f.pending) {
			continue
		}
		f.state |= stateConsumed
		code := f.pending
		f.pending = 0
		if c.body != nil {
			c.body(ctx, code)
		}
		return
	}
}

// retire runs the finally guard and then pops the frame. A code still
// pending after the guard is raised again toward the next enclosing region,
// or takes the uncaught path when this was the outermost frame.
func (r *Region) retire(ctx context.Context, f *frame) {
	r.runFinally(ctx, f)
	if f.pending == 0 {
		return
	}
	f.rethrows++
	sig := raiseSignal{code: f.pending, diag: f.diag}
	f.pending = 0
	if f.outer == nil {
		uncaught(ctx, sig.diag)
	}
	logger.Debug().
		Int("code", sig.code).
		Uint8("rethrows", f.rethrows).
		Msg("unconsumed code propagating to enclosing region")
	panic(sig)
}

// runFinally executes the guard at most once per frame. A raise inside the
// guard while a code is pending replaces that code; the original diagnostic
// is lost, which is deliberate but worth a warning.
func (r *Region) runFinally(ctx context.Context, f *frame) {
	if f.state&stateFinallyDone != 0 {
		return
	}
	f.state |= stateFinallyDone
	if r.finally == nil {
		return
	}
	if f.pending != 0 {
		defer func() {
			if rec := recover(); rec != nil {
				if sig, ok := rec.(raiseSignal); ok {
					logger.Warn().
						Int("pending_code", f.pending).
						Int("new_code", sig.code).
						Msg("finally guard raised over a pending code; original diagnostic lost")
					f.pending = 0
				}
				panic(rec)
			}
		}()
	}
	r.finally(ctx)
}
