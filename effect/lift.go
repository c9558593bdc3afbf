package effect

import (
	"github.com/on-the-ground/effectflow_go/effect/trace"
	"github.com/on-the-ground/effectflow_go/shared/option"
	"github.com/on-the-ground/effectflow_go/shared/result"
)

// FromResult lifts an already-materialized result back into a deferred
// effect. Running the lifted effect yields an equivalent result, so
// FromResult(Run(e)) round-trips.
func FromResult[T any](res result.Result[T], opts ...trace.Option) Effect[T] {
	if v, ok := res.Value(); ok {
		return Right(v, opts...)
	}
	return Left[T](res.Err(), opts...)
}

// FromPair lifts Go's native value-or-error pair: a non-nil error yields a
// failure-tagged effect.
func FromPair[T any](value T, err error, opts ...trace.Option) Effect[T] {
	if err != nil {
		return Left[T](err, opts...)
	}
	return Right(value, opts...)
}

// FromOption lifts an optional value, failing with onAbsent when empty.
func FromOption[T any](o option.Option[T], onAbsent error, opts ...trace.Option) Effect[T] {
	if v, ok := o.Get(); ok {
		return Right(v, opts...)
	}
	return Left[T](onAbsent, opts...)
}

// FromPredicate lifts value when pred holds, otherwise fails with
// onFalse(value). Useful as a Validator building block.
func FromPredicate[T any](value T, pred func(T) bool, onFalse func(T) error, opts ...trace.Option) Effect[T] {
	if pred(value) {
		return Right(value, opts...)
	}
	return Left[T](onFalse(value), opts...)
}
