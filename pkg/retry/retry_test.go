package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	noWait := LinearBackoff(time.Millisecond)

	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), RetryConfig{MaxAttempts: 3, Backoff: noWait},
			func() error {
				calls++
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), RetryConfig{MaxAttempts: 3, Backoff: noWait},
			func() error {
				calls++
				if calls < 3 {
					return errTemporary
				}
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ReturnsLastErrorAfterMaxAttempts", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), RetryConfig{MaxAttempts: 2, Backoff: noWait},
			func() error {
				calls++
				return errTemporary
			})
		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 2, calls)
	})

	t.Run("StopsOnPermanentError", func(t *testing.T) {
		errPermanent := errors.New("permanent")
		var calls int
		err := Do(t.Context(), RetryConfig{
			MaxAttempts: 5,
			Backoff:     noWait,
			ShouldRetry: func(err error) bool {
				return errors.Is(err, errTemporary)
			},
		}, func() error {
			calls++
			return errPermanent
		})
		require.ErrorIs(t, err, errPermanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroConfigMakesOneAttempt", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), RetryConfig{}, func() error {
			calls++
			return errTemporary
		})
		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := Do(ctx, RetryConfig{MaxAttempts: 3}, func() error {
			t.Fatal("fn must not be called")
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		err := Do(ctx, RetryConfig{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Hour),
		}, func() error {
			cancel()
			return errTemporary
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := (1 << attempt) * 10 * time.Millisecond
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2+1)
	}
}
