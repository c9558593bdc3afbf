package effect

import (
	"context"

	"github.com/on-the-ground/effectflow_go/effect/internal/handle"
	"github.com/on-the-ground/effectflow_go/effect/trace"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

type kind string

const (
	kindSuccess kind = "success"
	kindFailure kind = "failure"
)

// Effect is a deferred, traced computation that yields a result.Result[T]
// when run. The thunk has no observable side effect until Run forces it,
// and running the same Effect twice re-executes the thunk; there is no
// memoization. Effects are values: transformations return new Effects and
// never mutate the receiver.
type Effect[T any] struct {
	kind  kind
	trace trace.Context
	thunk func(context.Context) *handle.Handle
}

// Right lifts a value into a success-tagged effect.
func Right[T any](value T, opts ...trace.Option) Effect[T] {
	return fromFunc[T](kindSuccess, trace.New(opts...), func(context.Context) any {
		return result.Success(value)
	})
}

// Pure is an alias for Right.
func Pure[T any](value T, opts ...trace.Option) Effect[T] {
	return Right(value, opts...)
}

// Left lifts an error into a failure-tagged effect.
func Left[T any](err error, opts ...trace.Option) Effect[T] {
	return fromFunc[T](kindFailure, trace.New(opts...), func(context.Context) any {
		return result.Failure[T](err)
	})
}

// Try lifts a fallible function. The function runs on its own goroutine
// once the effect is forced; a panic inside it is captured by the engine
// as a PanicError failure instead of propagating.
func Try[T any](fn func(context.Context) (T, error), opts ...trace.Option) Effect[T] {
	return fromFunc[T](kindSuccess, trace.New(opts...), func(ctx context.Context) any {
		return result.From(fn(ctx))
	})
}

// FromThunk builds an effect from a raw payload producer. The engine
// coerces the payload on await: a result.Result[T] passes through, any
// other payload resolves to an ErrInvalidResult failure. Prefer Try unless
// you are bridging foreign branch implementations.
func FromThunk[T any](fn func(context.Context) any, opts ...trace.Option) Effect[T] {
	return fromFunc[T](kindSuccess, trace.New(opts...), fn)
}

func fromFunc[T any](k kind, tr trace.Context, fn func(context.Context) any) Effect[T] {
	return Effect[T]{
		kind:  k,
		trace: tr,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, fn)
		},
	}
}

// Trace returns the effect's tracing metadata.
func (e Effect[T]) Trace() trace.Context { return e.trace }

// WithTrace derives an effect carrying tr instead of the current context.
func (e Effect[T]) WithTrace(tr trace.Context) Effect[T] {
	e.trace = tr
	return e
}

// Map derives an effect that applies fn to the success value. Failures
// pass through untouched. Like every transformation, nothing executes
// until the derived effect is run.
func Map[T, U any](e Effect[T], fn func(T) U) Effect[U] {
	return Effect[U]{
		kind:  e.kind,
		trace: e.trace,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, func(ctx context.Context) any {
				res := Run(ctx, e)
				if v, ok := res.Value(); ok {
					return result.Success(fn(v))
				}
				return result.Failure[U](res.Err())
			})
		},
	}
}

// FlatMap derives an effect that feeds the success value into fn and runs
// the effect fn returns. Failures short-circuit without invoking fn.
func FlatMap[T, U any](e Effect[T], fn func(T) Effect[U]) Effect[U] {
	return Effect[U]{
		kind:  e.kind,
		trace: e.trace,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, func(ctx context.Context) any {
				res := Run(ctx, e)
				v, ok := res.Value()
				if !ok {
					return result.Failure[U](res.Err())
				}
				return Run(ctx, fn(v))
			})
		},
	}
}
