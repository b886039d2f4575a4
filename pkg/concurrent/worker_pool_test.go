package concurrent

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOrdered(t *testing.T) {
	jobs := make([]int, 100)
	for i := range jobs {
		jobs[i] = i
	}

	var calls atomic.Int64
	got := RunOrdered(8, jobs, func(x int) int {
		calls.Add(1)
		return x * x
	})

	assert.Equal(t, int64(100), calls.Load())
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestRunOrderedEmptyAndSingleWorker(t *testing.T) {
	assert.Empty(t, RunOrdered(4, []string{}, func(s string) int { return len(s) }))
	assert.Equal(t, []int{1, 2, 3}, RunOrdered(0, []string{"a", "bb", "ccc"}, func(s string) int { return len(s) }))
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 10)
	wp.Start(func(x int) int { return x + 1 })
	for i := 0; i < 10; i++ {
		wp.AddJob(i, i*10)
	}
	wp.Close()
	wp.Wait()

	seen := make(map[int]int)
	for res := range wp.CollectResults() {
		seen[res.ID] = res.Value
	}
	assert.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, i*10+1, seen[i])
	}
}
