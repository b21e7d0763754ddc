package api

import (
	"context"
	"sync"
)

// Call is an in-flight operation that can be cancelled. Cancelling before
// the operation completes suppresses delivery of its result: Then callbacks
// never run and Wait returns ErrCanceled.
//
// Completion is the moment the result is recorded, not the moment fn
// returns. A Cancel that lands between the two still wins, so a result
// fn already produced can be discarded. Once Done is closed, Cancel is a
// no-op and the recorded result stands.
type Call[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	canceled bool
	settled  bool
	val      T
	err      error
}

// Go starts fn in its own goroutine with a context derived from ctx.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Call[T] {
	ctx, cancel := context.WithCancel(ctx)
	c := &Call[T]{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		defer cancel()
		v, err := fn(ctx)
		c.mu.Lock()
		if !c.canceled {
			c.val, c.err, c.settled = v, err, true
		}
		c.mu.Unlock()
	}()
	return c
}

// Cancel is safe to call any number of times, before or after completion.
func (c *Call[T]) Cancel() {
	c.mu.Lock()
	if !c.settled {
		c.canceled = true
	}
	c.mu.Unlock()
	c.cancel()
}

func (c *Call[T]) Canceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canceled
}

// Done is closed once the operation has returned.
func (c *Call[T]) Done() <-chan struct{} { return c.done }

// Wait blocks until the operation returns.
func (c *Call[T]) Wait() (T, error) {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.canceled {
		var zero T
		return zero, ErrCanceled
	}
	return c.val, c.err
}

// Then delivers the outcome asynchronously to exactly one of the callbacks,
// unless the call was cancelled first. Nil callbacks are skipped.
func (c *Call[T]) Then(onOK func(T), onErr func(error)) {
	go func() {
		<-c.done
		c.mu.Lock()
		canceled, v, err := c.canceled, c.val, c.err
		c.mu.Unlock()
		switch {
		case canceled:
		case err != nil:
			if onErr != nil {
				onErr(err)
			}
		default:
			if onOK != nil {
				onOK(v)
			}
		}
	}()
}
