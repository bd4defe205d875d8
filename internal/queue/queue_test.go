package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, q.Len())

	q.Pop()
	q.Pop()
	_, ok = q.Pop()
	assert.False(t, ok)
	assert.True(t, q.Empty())
}

func TestPopBatch(t *testing.T) {
	q := New[string]()
	q.Push("a", "b", "c")

	assert.Equal(t, []string{"a", "b"}, q.PopBatch(2))
	assert.Equal(t, []string{"c"}, q.PopBatch(10))
	assert.Nil(t, q.PopBatch(5))
}

func TestDrainAll(t *testing.T) {
	q := New[int]()
	q.Push(1, 2)

	assert.Equal(t, []int{1, 2}, q.DrainAll())
	assert.True(t, q.Empty())
	assert.Empty(t, q.DrainAll())
}

func TestConcurrentPush(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(j)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, q.Len())
}
