// Package result provides an explicit success/failure container used in place
// of ad-hoc error returns inside the accounts model. A Result is either a
// Success carrying a value or a Failure carrying an *apperr.Error, never both,
// and no combinator silently drops a failure.
package result

import (
	"github.com/jumpaku/accountd/internal/apperr"
)

// Void is the value type for operations that succeed without a payload.
type Void struct{}

// Result holds either a value or an application error. The zero value is a
// Success carrying T's zero value; construct with Success or Failure to be
// explicit.
type Result[T any] struct {
	value T
	err   *apperr.Error
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Failure[T any](err *apperr.Error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }
func (r Result[T]) IsFailure() bool { return r.err != nil }

// Value returns the success value; it is T's zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure error, nil on success.
func (r Result[T]) Err() *apperr.Error { return r.err }

// OrDefault returns the success value, or def on failure.
func (r Result[T]) OrDefault(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// OrPanic returns the success value or panics with the failure error.
// Only for process edges (main, test setup); never inside the model.
func (r Result[T]) OrPanic() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// Recover turns a failure into a success using f; successes pass through.
func (r Result[T]) Recover(f func(*apperr.Error) T) Result[T] {
	if r.err == nil {
		return r
	}
	return Success(f(r.err))
}

// FlatRecover turns a failure into another Result; successes pass through.
func (r Result[T]) FlatRecover(f func(*apperr.Error) Result[T]) Result[T] {
	if r.err == nil {
		return r
	}
	return f(r.err)
}

// MapErr rewrites the failure error; successes pass through.
func (r Result[T]) MapErr(f func(*apperr.Error) *apperr.Error) Result[T] {
	if r.err == nil {
		return r
	}
	return Failure[T](f(r.err))
}

// OnSuccess invokes f with the value when successful and returns r unchanged.
func (r Result[T]) OnSuccess(f func(T)) Result[T] {
	if r.err == nil {
		f(r.value)
	}
	return r
}

// OnFailure invokes f with the error when failed and returns r unchanged.
func (r Result[T]) OnFailure(f func(*apperr.Error)) Result[T] {
	if r.err != nil {
		f(r.err)
	}
	return r
}

// Map applies f to the success value. Methods cannot introduce type
// parameters, so Map and FlatMap are package functions.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(f(r.value))
}

// FlatMap chains r into f, short-circuiting on failure.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return f(r.value)
}

// And yields b if a succeeded, else a's failure.
func And[T, U any](a Result[T], b Result[U]) Result[U] {
	if a.err != nil {
		return Failure[U](a.err)
	}
	return b
}

// Or yields the first success of a and b, or b's failure when both failed.
func Or[T any](a, b Result[T]) Result[T] {
	if a.err == nil {
		return a
	}
	return b
}

// Of lifts a conventional (value, error) pair into a Result, tagging untagged
// errors as UnexpectedError via apperr.From.
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](apperr.From(err))
	}
	return Success(value)
}
