package helper

import (
	"fmt"
)

// TypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if type assertion fails.
func TypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: %T", res)
	}

	return val, nil
}

// TypedOrFalse asserts a raw payload to the expected type T.
// The second return is false when the payload holds anything else.
func TypedOrFalse[T any](raw any) (res T, ok bool) {
	res, ok = raw.(T)
	return
}

// MustTypedValueOf is the panic-on-failure variant of TypedValueOf.
// Use when failure should be fatal (e.g., when the runtime is guaranteed to exist).
func MustTypedValueOf[T any](getFn func() (any, error)) T {
	res, err := TypedValueOf[T](getFn)
	if err != nil {
		panic(err)
	}
	return res
}
