package orchestrator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueueRunsInOrder(t *testing.T) {
	q := newTaskQueue(16)
	defer q.Close()

	var mu sync.Mutex
	var got []int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		require.NoError(t, q.Submit(func() {
			defer wg.Done()
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestTaskQueueRunWaits(t *testing.T) {
	q := newTaskQueue(4)
	defer q.Close()

	ran := false
	require.NoError(t, q.Run(func() { ran = true }))
	assert.True(t, ran)
}

func TestTaskQueueNeverConcurrent(t *testing.T) {
	q := newTaskQueue(64)
	defer q.Close()

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, q.Submit(func() {
			defer wg.Done()
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			mu.Lock()
			inFlight--
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
}

func TestTaskQueueClose(t *testing.T) {
	q := newTaskQueue(4)

	ran := false
	require.NoError(t, q.Submit(func() { ran = true }))
	q.Close()

	// Queued work drained before Close returned.
	assert.True(t, ran)

	assert.ErrorIs(t, q.Submit(func() {}), ErrQueueClosed)
	assert.ErrorIs(t, q.Run(func() {}), ErrQueueClosed)

	// Closing again is a no-op.
	q.Close()
}
