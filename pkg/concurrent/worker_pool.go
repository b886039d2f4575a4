package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// Job one unit of work and its position in the submitted batch.
type Job[T any] struct {
	ID   int
	Data T
}

// Result of the job with the same ID.
type Result[G any] struct {
	ID    int
	Value G
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- Result[G]{ID: job.ID, Value: jobFunc(job.Data)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker is done, then closes the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(id int, data T) {
	wp.jobQueue <- Job[T]{ID: id, Data: data}
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Result[G] {
	return wp.results
}

// Close stops accepting jobs. workers exit once the queue is drained.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// RunOrdered runs jobFunc over jobs with numWorkers goroutines and returns the results in
// the order of jobs.
func RunOrdered[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(jobFunc)

	for i, job := range jobs {
		wp.AddJob(i, job)
	}
	wp.Close()
	wp.Wait()

	out := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		out[res.ID] = res.Value
	}
	return out
}
