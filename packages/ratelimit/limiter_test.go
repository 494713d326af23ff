package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6, cfg.Limit)
	assert.Equal(t, 10*time.Second, cfg.Window)
	assert.Equal(t, 0, cfg.MaxConcurrent)
}

func TestLimiterSpacesStarts(t *testing.T) {
	l := New(Config{Limit: 2, Window: 200 * time.Millisecond})
	ctx := context.Background()

	// First start is immediate
	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	// Next start waits Window/Limit = 100ms
	start = time.Now()
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLimiterAtMostLimitPerWindow(t *testing.T) {
	const limit = 3
	window := 600 * time.Millisecond
	l := New(Config{Limit: limit, Window: window})

	ctx, cancel := context.WithTimeout(context.Background(), window-50*time.Millisecond)
	defer cancel()

	admitted := 0
	for {
		release, err := l.Admit(ctx)
		if err != nil {
			break
		}
		release()
		admitted++
	}

	assert.LessOrEqual(t, admitted, limit)
	assert.GreaterOrEqual(t, admitted, 1)
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := New(Config{Limit: 1, Window: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.Wait(ctx))

	cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestUnlimitedAdmitsImmediately(t *testing.T) {
	l := Unlimited()
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		release, err := l.Admit(ctx)
		require.NoError(t, err)
		release()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, int64(100), l.Admitted())
}

func TestAdmitBoundsConcurrency(t *testing.T) {
	l := New(Config{MaxConcurrent: 2})
	ctx := context.Background()

	var inFlight, peak atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Admit(ctx)
			if err != nil {
				return
			}
			defer release()

			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, int64(10), l.Admitted())
}

func TestAdmitReleasesSlotWhenRateWaitFails(t *testing.T) {
	l := New(Config{Limit: 1, Window: time.Hour, MaxConcurrent: 1})

	release, err := l.Admit(context.Background())
	require.NoError(t, err)
	release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Admit(ctx)
	require.Error(t, err)

	// Slot must be free again
	require.NoError(t, l.Acquire(context.Background()))
	l.Release()
}
