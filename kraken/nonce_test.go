package kraken

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockNonce(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Unix(1700000000, 42000), "1700000000000042"},
		{time.Unix(1700000000, 0), "1700000000000000"},
		{time.Unix(1700000000, 999999999), "1700000000999999"},
		{time.Unix(1616492376, 594000000), "1616492376594000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, strconv.FormatInt(clockNonce(tt.t), 10))
	}
}

func TestNonceGenerator_FrozenClock(t *testing.T) {
	frozen := time.Unix(1700000000, 42000)
	g := newNonceGeneratorWithClock(func() time.Time { return frozen })

	assert.Equal(t, "1700000000000042", g.Next())
	assert.Equal(t, "1700000000000043", g.Next())
	assert.Equal(t, "1700000000000044", g.Next())
}

func TestNonceGenerator_ClockStepsBack(t *testing.T) {
	now := time.Unix(1700000000, 500000)
	g := newNonceGeneratorWithClock(func() time.Time { return now })
	first := g.Next()

	now = now.Add(-time.Second)
	second := g.Next()
	assert.True(t, mustInt(t, second) > mustInt(t, first), "%s <= %s", second, first)

	now = now.Add(time.Hour)
	third := g.Next()
	assert.Equal(t, strconv.FormatInt(clockNonce(now), 10), third)
}

func TestNonceGenerator_ZeroValue(t *testing.T) {
	var g NonceGenerator
	before := clockNonce(time.Now())
	first := mustInt(t, g.Next())
	assert.GreaterOrEqual(t, first, before)
	assert.Greater(t, mustInt(t, g.Next()), first)
}

func TestNonceGenerator_Increasing(t *testing.T) {
	g := NewNonceGenerator()
	last := int64(0)
	for i := 0; i < 10000; i++ {
		n := mustInt(t, g.Next())
		require.Greater(t, n, last)
		last = n
	}
}

func TestNonceGenerator_Concurrent(t *testing.T) {
	g := NewNonceGenerator()
	const workers, perWorker = 8, 2000

	results := make([][]int64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results[w] = append(results[w], mustInt(t, g.Next()))
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[int64]bool, workers*perWorker)
	for _, rs := range results {
		for i, n := range rs {
			require.False(t, seen[n], "duplicate nonce %d", n)
			seen[n] = true
			if i > 0 {
				require.Greater(t, n, rs[i-1])
			}
		}
	}
}

func mustInt(t *testing.T, s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)
	return n
}
