package hyperliquid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNonceClockStrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	clock := NewNonceClock(func() time.Time { return fixed })

	first := clock.Next()
	require.Equal(t, int64(1700000000000), first)

	// Same wall-clock millisecond bumps instead of repeating.
	second := clock.Next()
	third := clock.Next()
	require.Equal(t, first+1, second)
	require.Equal(t, second+1, third)
}

func TestNonceClockBackwardClock(t *testing.T) {
	now := time.UnixMilli(1700000000500)
	clock := NewNonceClock(func() time.Time { return now })

	first := clock.Next()
	require.Equal(t, int64(1700000000500), first)

	now = time.UnixMilli(1700000000100)
	second := clock.Next()
	require.Equal(t, first+1, second)

	now = time.UnixMilli(1700000001000)
	third := clock.Next()
	require.Equal(t, int64(1700000001000), third)
}

func TestNonceClockConcurrent(t *testing.T) {
	clock := NewNonceClock(nil)

	const workers = 8
	const perWorker = 100
	var mu sync.Mutex
	seen := make(map[int64]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				nonce := clock.Next()
				mu.Lock()
				require.False(t, seen[nonce], "duplicate nonce %d", nonce)
				seen[nonce] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWorker)
}
