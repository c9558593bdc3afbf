package result

// Result is the terminal outcome of running an effect: either a Success
// carrying a value or a Failure carrying an error. The zero value is a
// Failure with a nil error; prefer the constructors.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps a materialized value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure wraps a terminal error.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From converts a conventional (value, error) pair, treating a non-nil
// error as Failure regardless of the value.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// Succeeded reports whether the result is a Success.
func (r Result[T]) Succeeded() bool { return r.ok }

// Value returns the success value. ok is false for failures.
func (r Result[T]) Value() (value T, ok bool) {
	return r.value, r.ok
}

// Err returns the failure error, nil for successes.
func (r Result[T]) Err() error { return r.err }

// Unpack converts back into the conventional (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// MustGet returns the success value or panics with the failure error.
// This is the only operation that turns a Failure into a raised fault,
// and only on explicit request.
func (r Result[T]) MustGet() T {
	if !r.ok {
		panic(r.err)
	}
	return r.value
}
