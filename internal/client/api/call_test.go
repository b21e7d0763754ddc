package api

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDeliversResult(t *testing.T) {
	c := Go(context.Background(), func(context.Context) (int, error) { return 7, nil })
	got := make(chan int, 1)
	c.Then(func(v int) { got <- v }, func(error) { t.Error("unexpected failure") })
	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}
	v, err := c.Wait()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	// Cancelling a settled call changes nothing.
	c.Cancel()
	assert.False(t, c.Canceled())
	v, err = c.Wait()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCallDeliversFailure(t *testing.T) {
	boom := errors.New("boom")
	c := Go(context.Background(), func(context.Context) (string, error) { return "", boom })
	got := make(chan error, 1)
	c.Then(func(string) { t.Error("unexpected success") }, func(err error) { got <- err })
	assert.ErrorIs(t, <-got, boom)
}

func TestCancelSuppressesBothOutcomes(t *testing.T) {
	for _, fail := range []bool{false, true} {
		started := make(chan struct{})
		c := Go(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			if fail {
				return 0, ctx.Err()
			}
			return 1, nil
		})
		var delivered atomic.Bool
		c.Then(func(int) { delivered.Store(true) }, func(error) { delivered.Store(true) })

		<-started
		c.Cancel()
		c.Cancel()
		<-c.Done()

		_, err := c.Wait()
		assert.ErrorIs(t, err, ErrCanceled)
		assert.True(t, IsCanceled(err))
		assert.True(t, c.Canceled())

		time.Sleep(20 * time.Millisecond)
		assert.False(t, delivered.Load(), "fail=%v", fail)
	}
}

func TestCancelBeforeRecordDiscardsFinishedWork(t *testing.T) {
	computed := make(chan struct{})
	release := make(chan struct{})
	c := Go(context.Background(), func(context.Context) (int, error) {
		v := 42
		close(computed)
		<-release
		return v, nil
	})
	<-computed
	c.Cancel()
	close(release)

	v, err := c.Wait()
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Zero(t, v)
	assert.True(t, c.Canceled())
}

func TestNilCallbacksAreSkipped(t *testing.T) {
	c := Go(context.Background(), func(context.Context) (int, error) { return 1, nil })
	c.Then(nil, nil)
	_, err := c.Wait()
	assert.NoError(t, err)
}
