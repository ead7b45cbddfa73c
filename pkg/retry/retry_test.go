package retry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/niksmo/eshop/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemp = errors.New("temporary")

func TestDo(t *testing.T) {
	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		cfg := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(time.Millisecond),
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTemp
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		cfg := retry.Config{
			MaxAttempts: 2,
			Backoff:     retry.LinearBackoff(time.Millisecond),
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemp
		})
		require.ErrorIs(t, err, errTemp)
		assert.Equal(t, 2, calls)
	})

	t.Run("StopsOnNonRetryableError", func(t *testing.T) {
		var calls int
		cfg := retry.Config{
			MaxAttempts: 5,
			Backoff:     retry.LinearBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return false },
		}

		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errTemp
		})
		require.ErrorIs(t, err, errTemp)
		assert.Equal(t, 1, calls)
	})
}

func TestDoWithResult(t *testing.T) {
	cfg := retry.Config{
		MaxAttempts: 2,
		Backoff:     retry.LinearBackoff(time.Millisecond),
	}

	var calls int
	got, err := retry.DoWithResult(t.Context(), cfg, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errTemp
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
