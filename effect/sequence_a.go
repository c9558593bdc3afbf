package effect

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/on-the-ground/effectflow_go/effect/internal/handle"
	"github.com/on-the-ground/effectflow_go/effect/internal/orderedbuffer"
	"github.com/on-the-ground/effectflow_go/effect/trace"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

// SequenceA composes effects into one parallel, error-accumulating effect.
// When the composite runs, every element's thunk is forced eagerly: each
// spawns its own concurrent handle before any is awaited, regardless of
// whether earlier elements have already failed. With zero failures the
// composite resolves to the values in input order; otherwise it resolves
// to a failure aggregating every failing element's error in input order
// (recover the list with multierr.Errors). Never a partial success.
func SequenceA[T any](effs []Effect[T]) Effect[[]T] {
	return sequenceA("sequence_a", effs)
}

// TraverseA maps every input element through fn and runs the resulting
// effects in parallel, accumulating all failures.
func TraverseA[A, T any](in []A, fn func(A) Effect[T]) Effect[[]T] {
	return sequenceA("traverse_a", apply(in, fn))
}

// indexed tags a branch outcome with its source index so that results can
// be re-ordered after nondeterministic completion.
type indexed[T any] struct {
	idx int
	res result.Result[T]
}

func sequenceA[T any](label string, effs []Effect[T]) Effect[[]T] {
	composite := trace.MergeAll(label, tracesOf(effs)...)
	// the aggregate's own budget comes from run-level resolution; a single
	// branch's timeout override must not cap its siblings
	composite.Timeout = 0

	return Effect[[]T]{
		kind:  kindSuccess,
		trace: composite,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, func(ctx context.Context) any {
				rt := mustRuntimeFrom(ctx)

				type branch struct {
					eff     Effect[T]
					tr      trace.Context
					timeout time.Duration
					h       *handle.Handle
					started time.Time
				}

				// true fan-out: every branch is spawned before any is awaited
				branches := make([]branch, len(effs))
				for i, e := range effs {
					tr := e.Trace().DefaultSpanName(branchLabel(label, i))
					e = e.WithTrace(tr)
					timeout := resolveTimeout(0, tr.Timeout, rt.Config.DefaultTimeout)
					h, started := force(ctx, rt, e, tr, timeout)
					branches[i] = branch{eff: e, tr: tr, timeout: timeout, h: h, started: started}
				}

				// each branch is awaited independently with its own timeout;
				// a branch timing out never cancels its siblings
				outCh := make(chan indexed[T], len(branches))
				for i := range branches {
					go func(i int, b branch) {
						outCh <- indexed[T]{
							idx: i,
							res: settle[T](ctx, rt, b.eff, b.tr, b.h, b.started, b.timeout),
						}
					}(i, branches[i])
				}

				buf := orderedbuffer.New(len(branches), func(a, b indexed[T]) int {
					return a.idx - b.idx
				})
				for range branches {
					select {
					case <-ctx.Done():
						return result.Failure[[]T](ctx.Err())
					case item := <-outCh:
						buf.Insert(ctx, item)
					}
				}
				buf.Seal(ctx)

				values := make([]T, 0, len(branches))
				var errs []error
				for item := range buf.Source() {
					if v, ok := item.res.Value(); ok {
						values = append(values, v)
						continue
					}
					errs = append(errs, item.res.Err())
				}
				if len(errs) > 0 {
					return result.Failure[[]T](multierr.Combine(errs...))
				}
				return result.Success(values)
			})
		},
	}
}
