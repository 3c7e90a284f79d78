// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"context"
	"sync"

	"github.com/gogama/ajax/failure"
	"github.com/gogama/ajax/request"
)

// A Promise is the deferred result of a request execution. It settles
// exactly once, either to a value or to a failure.Tag.
//
// A Promise is safe for concurrent use by multiple goroutines. Any
// number of goroutines may wait on it.
type Promise[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
	exec  *request.Execution
	abort func()
}

func newPromise[T any](abort func()) *Promise[T] {
	return &Promise[T]{
		done:  make(chan struct{}),
		abort: abort,
	}
}

// Reject returns a promise which is already settled with the failure
// tag t.
func Reject[T any](t failure.Tag) *Promise[T] {
	p := newPromise[T](nil)
	var zero T
	p.settle(zero, t, nil)
	return p
}

// settle resolves the promise if it has not been resolved yet, and
// reports whether this call did so.
func (p *Promise[T]) settle(v T, err error, e *request.Execution) bool {
	settled := false
	p.once.Do(func() {
		p.value = v
		p.err = err
		p.exec = e
		close(p.done)
		settled = true
	})
	return settled
}

// Done returns a channel which is closed when the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether the promise has settled, without blocking.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the promise settles and returns its result. The
// error is nil on success and a failure.Tag otherwise.
func (p *Promise[T]) Wait() (T, error) {
	<-p.done
	return p.value, p.err
}

// Await is like Wait but gives up when ctx is done, returning ctx.Err().
// Giving up does not abort the execution; use Abort for that.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Abort cancels the execution behind the promise. Unless the execution
// completes first, the promise settles with failure.Aborted. Abort is a
// no-op once the promise has settled.
func (p *Promise[T]) Abort() {
	if p.abort != nil && !p.Settled() {
		p.abort()
	}
}

// Execution returns the final state of the execution behind the
// promise. It blocks until the promise settles, and returns nil if no
// request was ever sent (for example, for a promise from Reject).
//
// The returned execution must be treated as read-only.
func (p *Promise[T]) Execution() *request.Execution {
	<-p.done
	return p.exec
}

// Then returns a promise which settles with the result of applying f to
// the value of p, once p succeeds. If p fails, f is not called and the
// returned promise fails with the same tag. If f returns an error, the
// returned promise fails with it; f should only return failure tags.
//
// Aborting the returned promise aborts p.
func Then[T, U any](p *Promise[T], f func(T) (U, error)) *Promise[U] {
	q := newPromise[U](p.Abort)
	go func() {
		v, err := p.Wait()
		var u U
		if err == nil {
			u, err = f(v)
		}
		q.settle(u, err, p.Execution())
	}()
	return q
}
