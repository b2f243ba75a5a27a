package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_GetOrPut(t *testing.T) {
	m := NewMap[string, int]()
	assert.Equal(t, 1, m.GetOrPut("a", func() int { return 1 }))
	assert.Equal(t, 1, m.GetOrPut("a", func() int { return 2 }))
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = m.Get("b")
	assert.False(t, ok)
}

func TestOnce_ConcurrentBuild(t *testing.T) {
	var builds int32
	entries := NewMap[string, *Once[int]]()
	wg := sync.WaitGroup{}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := entries.GetOrPut("key", func() *Once[int] { return &Once[int]{} })
			v, err := entry.Get(func() (int, error) {
				atomic.AddInt32(&builds, 1)
				return 42, nil
			})
			assert.Nil(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(&builds))
}
