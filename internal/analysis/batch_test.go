package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEvaluate_PreservesOrder(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	for _, limit := range []int{0, 1, 3, 16, 100} {
		out, err := evaluate(context.Background(), limit, items, func(_ context.Context, v int) (int, error) {
			// later items finish first
			time.Sleep(time.Duration(50-v) * 10 * time.Microsecond)
			return v * v, nil
		})
		require.NoError(t, err)
		require.Len(t, out, len(items))
		for i, v := range out {
			assert.Equal(t, i*i, v, "limit=%d index=%d", limit, i)
		}
	}
}

func TestEvaluate_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	items := make([]int, 40)

	_, err := evaluate(context.Background(), 4, items, func(_ context.Context, _ int) (int, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestEvaluate_FirstErrorAbortsBatch(t *testing.T) {
	boom := errors.New("boom")
	var calls int32

	out, err := evaluate(context.Background(), 2, []int{0, 1, 2, 3, 4, 5, 6, 7}, func(ctx context.Context, v int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if v == 1 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return v, nil
		}
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Nil(t, out)
}

func TestEvaluate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	out, err := evaluate(ctx, 2, []int{1, 2, 3}, func(_ context.Context, v int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return v, nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, out)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestEvaluate_Empty(t *testing.T) {
	out, err := evaluate(context.Background(), 4, nil, func(_ context.Context, v int) (int, error) {
		return v, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}
