package sift

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrCompute(t *testing.T) {
	cache := NewCache()

	v, err := cache.GetOrCompute("k", func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Second lookup must not recompute.
	v, err = cache.GetOrCompute("k", func() (any, error) {
		t.Fatal("recomputed a cached key")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheGetOrCompute_Concurrent(t *testing.T) {
	cache := NewCache()
	var computations atomic.Int32

	var wg sync.WaitGroup
	results := make([]any, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := cache.GetOrCompute("shared", func() (any, error) {
				computations.Add(1)
				return "value", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), computations.Load(), "compute ran more than once for one key")
	for _, v := range results {
		assert.Equal(t, "value", v)
	}
}

func TestCacheGetOrCompute_ErrorNotCached(t *testing.T) {
	cache := NewCache()

	_, err := cache.GetOrCompute("k", func() (any, error) {
		return nil, errors.New("transient")
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len(), "failed computations are not retained")

	v, err := cache.GetOrCompute("k", func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCacheDistinctKeys(t *testing.T) {
	cache := NewCache()

	a, err := cache.GetOrCompute("a", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	b, err := cache.GetOrCompute("b", func() (any, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 2, cache.Len())
}
