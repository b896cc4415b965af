package values

import "fmt"

// Result is the outcome of a coercion: either a success holding a
// value of type T, or a failure holding an error. Failures are plain
// returned values; no coercion in this package panics for data-shape
// problems.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a success result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failure result wrapping err.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("failure with no error")
	}
	return Result[T]{err: err}
}

// Failf returns a failure result with a formatted message.
// %w works as in fmt.Errorf.
func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{err: fmt.Errorf(format, args...)}
}

// IsErr reports whether r is a failure.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Err returns the failure error, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the success value or the failure error.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// GetOrElse returns the success value, or def on failure.
func (r Result[T]) GetOrElse(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// MustGet returns the success value and panics on failure. It is meant
// for tests and program constants, not for handling wire data.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// MapResult transforms a success payload and propagates a failure
// unchanged.
func MapResult[I, O any](r Result[I], f func(I) O) Result[O] {
	if r.err != nil {
		return Fail[O](r.err)
	}
	return Ok(f(r.value))
}

// FlatMapResult chains a result-producing transform, propagating a
// failure unchanged.
func FlatMapResult[I, O any](r Result[I], f func(I) Result[O]) Result[O] {
	if r.err != nil {
		return Fail[O](r.err)
	}
	return f(r.value)
}
