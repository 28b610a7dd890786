package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func TestWorkerPoolSums(t *testing.T) {
	wp := NewWorkerPool[[]int64, int64](4, 100)
	wp.Start(func(job []int64) int64 {
		var sum int64
		for _, v := range job {
			sum += v
		}
		return sum
	})

	var want int64
	for i := 0; i < 100; i++ {
		job := []int64{int64(i), int64(i * 2)}
		want += int64(i) + int64(i*2)
		wp.AddJob(job)
	}
	wp.CloseJobQueue()
	wp.Wait()

	var got int64
	count := 0
	for res := range wp.CollectResults() {
		got += res
		count++
	}
	assert.Equal(t, 100, count)
	assert.Equal(t, want, got)
}

func TestWorkerPoolSaveEdgesJob(t *testing.T) {
	wp := NewWorkerPool[SaveEdgesJobItem, int](2, 10)
	wp.Start(func(job SaveEdgesJobItem) int {
		return len(job.ValArr)
	})

	for i := 0; i < 10; i++ {
		wp.AddJob(SaveEdgesJobItem{
			KeyStr: "cell",
			ValArr: make([]datastructure.KVEdge, i),
		})
	}
	wp.CloseJobQueue()
	wp.Wait()

	total := 0
	for res := range wp.CollectResults() {
		total += res
	}
	assert.Equal(t, 45, total)
}

func TestWorkerPoolNoJobs(t *testing.T) {
	wp := NewWorkerPool[[]int64, int64](2, 0)
	wp.Start(func(job []int64) int64 { return 0 })
	wp.CloseJobQueue()
	wp.Wait()

	count := 0
	for range wp.CollectResults() {
		count++
	}
	assert.Equal(t, 0, count)
}
