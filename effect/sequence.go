package effect

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effectflow_go/effect/internal/handle"
	"github.com/on-the-ground/effectflow_go/effect/trace"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

// Sequence composes effects into one ordered, fail-fast effect. When the
// composite runs, element 0 executes first; each later element executes
// only after every earlier one succeeded, and values are collected in
// input order. On the first failure the composite resolves to that failure
// and no later element's thunk is ever forced.
func Sequence[T any](effs []Effect[T]) Effect[[]T] {
	return sequence("sequence", effs)
}

// Traverse maps every input element through fn and sequences the
// resulting effects, fail-fast and in order.
func Traverse[A, T any](in []A, fn func(A) Effect[T]) Effect[[]T] {
	return sequence("traverse", apply(in, fn))
}

func sequence[T any](label string, effs []Effect[T]) Effect[[]T] {
	composite := trace.MergeAll(label, tracesOf(effs)...)
	// the aggregate's own budget comes from run-level resolution; a single
	// branch's timeout override must not cap the whole composition
	composite.Timeout = 0

	return Effect[[]T]{
		kind:  kindSuccess,
		trace: composite,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, func(ctx context.Context) any {
				values := make([]T, 0, len(effs))
				for i, e := range effs {
					branch := e.WithTrace(
						e.Trace().DefaultSpanName(branchLabel(label, i)),
					)
					res := Run(ctx, branch)
					v, ok := res.Value()
					if !ok {
						return result.Failure[[]T](res.Err())
					}
					values = append(values, v)
				}
				return result.Success(values)
			})
		},
	}
}

// branchLabel names an array-element branch, e.g. "sequence[3]".
func branchLabel(base string, index int) string {
	return fmt.Sprintf("%s[%d]", base, index)
}

func tracesOf[T any](effs []Effect[T]) []trace.Context {
	traces := make([]trace.Context, len(effs))
	for i, e := range effs {
		traces[i] = e.Trace()
	}
	return traces
}

func apply[A, T any](in []A, fn func(A) Effect[T]) []Effect[T] {
	effs := make([]Effect[T], len(in))
	for i, a := range in {
		effs[i] = fn(a)
	}
	return effs
}
