package option

// Option is a Present/Absent container for an optional value.
// The zero value is Absent.
type Option[T any] struct {
	value   T
	present bool
}

// Present wraps a value.
func Present[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// Absent returns the empty option.
func Absent[T any]() Option[T] {
	return Option[T]{}
}

// Of converts a (value, ok) pair, the shape returned by map lookups
// and type assertions.
func Of[T any](value T, ok bool) Option[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(value)
}

// IsPresent reports whether a value is held.
func (o Option[T]) IsPresent() bool { return o.present }

// Get returns the held value. ok is false when absent.
func (o Option[T]) Get() (value T, ok bool) {
	return o.value, o.present
}

// OrElse returns the held value, or fallback when absent.
func (o Option[T]) OrElse(fallback T) T {
	if !o.present {
		return fallback
	}
	return o.value
}
