package queue

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/codebuildervaibhav/film-generator/internal/storage"
	"github.com/codebuildervaibhav/film-generator/internal/types"
)

// Runner processes one job to a terminal status
type Runner interface {
	Run(ctx context.Context, jobID string)
}

// WorkerPool fans submitted job ids out to a fixed set of workers.
// Jobs run independently of each other; a panic in one worker marks
// only its job failed.
type WorkerPool struct {
	jobQueue    chan string
	workerCount int
	runner      Runner
	store       storage.Store
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workerCount int, runner Runner, store storage.Store) *WorkerPool {
	return &WorkerPool{
		jobQueue:    make(chan string, 100), // Buffer of 100 jobs
		workerCount: workerCount,
		runner:      runner,
		store:       store,
	}
}

// Start initializes all workers
func (wp *WorkerPool) Start() {
	log.Printf("Starting worker pool with %d workers", wp.workerCount)
	for i := 0; i < wp.workerCount; i++ {
		go wp.worker(i)
	}
}

// Enqueue adds a job id to the queue. The job document must already be
// in the store so status polling sees it immediately.
func (wp *WorkerPool) Enqueue(jobID string) {
	wp.jobQueue <- jobID
	log.Printf("Job %s enqueued", jobID)
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	log.Printf("Worker %d started", id)

	for jobID := range wp.jobQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Worker %d: PANIC processing job %s: %v\n%s",
						id, jobID, r, string(debug.Stack()))
					wp.markFailed(jobID, fmt.Sprintf("worker panic: %v", r))
				}
			}()

			log.Printf("Worker %d: processing job %s", id, jobID)
			wp.runner.Run(context.Background(), jobID)
		}()
	}
}

// markFailed records a terminal failure for a job the pipeline could
// not finish on its own.
func (wp *WorkerPool) markFailed(jobID, message string) {
	job, err := wp.store.Get(jobID)
	if err != nil {
		log.Printf("Failed to load job %s for failure marking: %v", jobID, err)
		return
	}
	if job.Terminal() {
		return
	}

	now := time.Now().UTC()
	job.Status = types.StatusFailed
	job.Error = message
	job.CompletedAt = &now
	job.UpdatedAt = now
	if err := wp.store.Put(job); err != nil {
		log.Printf("Failed to mark job %s failed: %v", jobID, err)
	}
}
