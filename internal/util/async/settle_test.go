package async

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle_Empty(t *testing.T) {
	t.Parallel()
	called := false
	errs := Settle(context.Background(), 0, 4, func(_ context.Context, _ int) error {
		called = true
		return nil
	})
	assert.Empty(t, errs)
	assert.False(t, called)
}

func TestSettle_CollectsEveryOutcomeInOrder(t *testing.T) {
	t.Parallel()
	errs := Settle(context.Background(), 5, 0, func(_ context.Context, i int) error {
		// Reverse completion order.
		time.Sleep(time.Duration(5-i) * 5 * time.Millisecond)
		if i%2 == 1 {
			return fmt.Errorf("item %d", i)
		}
		return nil
	})

	require.Len(t, errs, 5)
	for i, err := range errs {
		if i%2 == 1 {
			assert.EqualError(t, err, fmt.Sprintf("item %d", i))
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestSettle_FailureDoesNotStopSiblings(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	errs := Settle(context.Background(), 10, 2, func(_ context.Context, i int) error {
		calls.Add(1)
		if i == 0 {
			return errors.New("first fails")
		}
		return nil
	})

	assert.Equal(t, int32(10), calls.Load())
	assert.Error(t, errs[0])
	for _, err := range errs[1:] {
		assert.NoError(t, err)
	}
}

func TestSettle_Limit(t *testing.T) {
	t.Parallel()
	var current, peak atomic.Int32
	Settle(context.Background(), 12, 4, func(_ context.Context, _ int) error {
		c := current.Add(1)
		for {
			old := peak.Load()
			if c <= old || peak.CompareAndSwap(old, c) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return nil
	})
	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestSettle_CancelledContextFillsQueuedSlots(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := Settle(ctx, 3, 1, func(ctx context.Context, _ int) error {
		return ctx.Err()
	})

	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
