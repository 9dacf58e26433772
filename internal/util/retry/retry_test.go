package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts() []Option {
	return []Option{WithInitialDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, fastOpts()...)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, append(fastOpts(), WithMaxRetries(3))...)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	boom := errors.New("still down")
	err := Do(context.Background(), func() error {
		calls++
		return boom
	}, append(fastOpts(), WithMaxRetries(2))...)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	calls := 0
	conflict := errors.New("bucket already exists")
	err := Do(context.Background(), func() error {
		calls++
		return Fatal(conflict)
	}, append(fastOpts(), WithMaxRetries(5))...)

	require.Error(t, err)
	assert.ErrorIs(t, err, conflict)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		return errors.New("transient")
	}, WithInitialDelay(time.Minute), WithMaxRetries(1))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(errors.New("plain")))
	assert.True(t, IsFatal(Fatal(errors.New("no"))))

	wrapped := errors.Join(errors.New("outer"), Fatal(errors.New("inner")))
	assert.True(t, IsFatal(wrapped))
}

func TestFatal_NilPassthrough(t *testing.T) {
	assert.NoError(t, Fatal(nil))
}
