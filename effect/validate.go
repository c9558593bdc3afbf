package effect

import (
	"context"

	"github.com/on-the-ground/effectflow_go/effect/internal/handle"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

// Validator produces one validation effect for an input value. A passing
// validator resolves to a success; the success value itself is discarded
// by Validate, so validators are free to return the input unchanged.
type Validator[T any] func(T) Effect[T]

// Validate runs every validator against the same immutable input in
// parallel, accumulating all failures in validator order. On success the
// original, unmodified value is returned, never a validator's
// transformed output.
func Validate[T any](value T, validators ...Validator[T]) Effect[T] {
	effs := make([]Effect[T], len(validators))
	for i, v := range validators {
		effs[i] = v(value)
	}
	agg := sequenceA("validate", effs)

	return Effect[T]{
		kind:  kindSuccess,
		trace: agg.trace,
		thunk: func(ctx context.Context) *handle.Handle {
			return handle.Spawn(ctx, func(ctx context.Context) any {
				res := Run(ctx, agg)
				if !res.Succeeded() {
					return result.Failure[T](res.Err())
				}
				// structure-preserving: hand back the caller's value
				return result.Success(value)
			})
		},
	}
}
