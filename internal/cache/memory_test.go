package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set(context.Background(), "k", testCourse{ID: "A", Capacity: 3}, 0))

	var out testCourse
	found, err := m.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testCourse{ID: "A", Capacity: 3}, out)

	found, err = m.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Expiration(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "k", 1, time.Minute))

	var out int
	now = now.Add(59 * time.Second)
	found, _ := m.Get(context.Background(), "k", &out)
	assert.True(t, found)

	now = now.Add(time.Second)
	found, _ = m.Get(context.Background(), "k", &out)
	assert.False(t, found)
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m := NewMemory()
	in := []int{1, 2}
	require.NoError(t, m.Set(context.Background(), "k", in, 0))
	in[0] = 99

	var out []int
	_, err := m.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)
}

func TestMemory_Concurrent(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			assert.NoError(t, m.Set(context.Background(), key, i, 0))
			var out int
			_, err := m.Get(context.Background(), key, &out)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
