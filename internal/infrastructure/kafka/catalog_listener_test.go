package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muyuda/khaya/internal/infrastructure/kafka"
)

func TestKeepConsuming(t *testing.T) {
	errFetch := errors.New("fetching message: broker unavailable")

	t.Run("restarts after transient failures", func(t *testing.T) {
		calls := 0
		start := func(context.Context) error {
			calls++
			if calls <= 2 {
				return errFetch
			}
			return nil
		}

		err := kafka.KeepConsuming(context.Background(), start, &backoff.ZeroBackOff{}, discardLogger())

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error when the policy gives up", func(t *testing.T) {
		calls := 0
		start := func(context.Context) error {
			calls++
			return errFetch
		}

		err := kafka.KeepConsuming(context.Background(), start, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2), discardLogger())

		assert.ErrorIs(t, err, errFetch)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops while waiting once the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		start := func(context.Context) error {
			calls++
			time.AfterFunc(20*time.Millisecond, cancel)
			return errFetch
		}

		done := make(chan error, 1)
		go func() {
			done <- kafka.KeepConsuming(ctx, start, backoff.NewConstantBackOff(time.Hour), discardLogger())
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("KeepConsuming did not return after cancel")
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("default policy never gives up", func(t *testing.T) {
		policy := kafka.NewRestartBackOff()
		for range 50 {
			wait := policy.NextBackOff()
			require.NotEqual(t, backoff.Stop, wait)
			assert.LessOrEqual(t, wait, 90*time.Second)
		}
	})
}
