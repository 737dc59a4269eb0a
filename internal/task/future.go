// Package task provides a minimal future type for fire-and-forget calls whose
// result may still be awaited.
package task

import (
	"context"
	"errors"
	"fmt"
)

// Runner starts fn on some goroutine. *conc.WaitGroup satisfies it.
type Runner interface {
	Go(fn func())
}

type goRunner struct{}

func (goRunner) Go(fn func()) { go fn() }

// ErrPanicked is wrapped by the error of a future whose function panicked.
var ErrPanicked = errors.New("task panicked")

// Future is the eventual result of an asynchronous operation.
// It settles exactly once.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on r and returns a future for its result. A nil runner starts a
// plain goroutine.
func Go[T any](ctx context.Context, r Runner, fn func(ctx context.Context) (T, error)) *Future[T] {
	if r == nil {
		r = goRunner{}
	}

	f := &Future[T]{done: make(chan struct{})}
	r.Go(func() {
		defer close(f.done)
		defer func() {
			if rec := recover(); rec != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanicked, rec)
			}
		}()
		f.value, f.err = fn(ctx)
	})

	return f
}

// Resolved returns an already settled future holding v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: v}
	close(f.done)
	return f
}

// Failed returns an already settled future holding err.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done. Giving up on the wait
// does not cancel the underlying operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the future settles.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Then returns a future that settles with fn applied to f's outcome once f
// has settled.
func Then[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	next := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(next.done)
		v, err := f.Wait()
		next.value, next.err = fn(v, err)
	}()
	return next
}
