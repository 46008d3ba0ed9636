// Package rescue provides structured try/catch/finally style propagation of
// integer error codes, for code that prefers raise-and-handle control flow
// over threading error returns through every call.
//
// A protected region is described by a Region: an ordered chain of catch
// clauses plus an optional finally guard. Running a region executes a body
// function; anywhere inside that body (including arbitrarily deep in its
// call chain) Raise transfers control to the innermost active region on the
// same goroutine. The first clause whose predicate matches the raised code
// consumes it; the finally guard runs exactly once on every path out of the
// region; an unconsumed code propagates to the next enclosing region, or to
// the uncaught path when none remains.
//
//	out := rescue.Do(ctx, func(ctx context.Context) {
//	    mightFail(ctx) // calls rescue.Raise(ctx, code) on failure
//	},
//	    rescue.Catch(ErrParse, func(ctx context.Context, code int) {
//	        // handle
//	    }),
//	    rescue.Finally(func(ctx context.Context) {
//	        // cleanup, always runs
//	    }),
//	)
//
// Codes are application-defined non-zero integers. Zero is reserved to mean
// "no pending code" and raising it is a usage error.
//
// Regions are confined to the goroutine that runs them. The region context
// may be passed freely for cancellation and values, but calling Raise with
// it from another goroutine is undefined behavior: the transfer cannot cross
// goroutine stacks.
package rescue

import "context"

// Region describes a protected region: an ordered handler chain and an
// optional finally guard. A Region is immutable once built and may be run
// any number of times, concurrently if desired; all mutable state lives in
// the per-run frame.
type Region struct {
	clauses []clause
	finally func(context.Context)
}

// Option configures a Region under construction.
type Option func(*Region)

// New builds a Region. Clause order follows option order: on a raise, the
// first clause whose predicate matches consumes the code and later clauses
// are skipped, giving if/else-if semantics.
func New(opts ...Option) *Region {
	r := &Region{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Do builds a Region from opts and runs body inside it. It is shorthand for
// New(opts...).Run(ctx, body).
func Do(ctx context.Context, body func(context.Context), opts ...Option) Outcome {
	return New(opts...).Run(ctx, body)
}

// Catch adds a clause that matches exactly the given code. Code 0 is
// reserved and can never be raised, so registering a clause for it is a
// usage error.
func Catch(code int, body func(ctx context.Context, code int)) Option {
	if code == 0 {
		panic("rescue: Catch registered for reserved code 0")
	}
	return func(r *Region) {
		r.clauses = append(r.clauses, clause{
			match: func(c int) bool { return c == code },
			body:  body,
		})
	}
}

// CatchIf adds a clause whose match is decided by pred. The predicate is
// evaluated at most once per raise, and only if no earlier clause matched.
func CatchIf(pred func(code int) bool, body func(ctx context.Context, code int)) Option {
	if pred == nil {
		panic("rescue: CatchIf requires a predicate")
	}
	return func(r *Region) {
		r.clauses = append(r.clauses, clause{match: pred, body: body})
	}
}

// CatchAll adds a clause that matches any code. Place it last; clauses after
// it are unreachable.
func CatchAll(body func(ctx context.Context, code int)) Option {
	return func(r *Region) {
		r.clauses = append(r.clauses, clause{
			match: func(int) bool { return true },
			body:  body,
		})
	}
}

// Finally sets the region's finally guard. The guard runs exactly once per
// Run, on every path out of the region: normal completion, handled code,
// unhandled code, early exit, or a foreign panic passing through. At most
// one guard is allowed per region.
func Finally(body func(context.Context)) Option {
	return func(r *Region) {
		if r.finally != nil {
			panic("rescue: region already has a finally guard")
		}
		r.finally = body
	}
}
