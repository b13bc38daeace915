package orchestrator

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned when submitting to a closed queue.
var ErrQueueClosed = errors.New("task queue is closed")

// taskQueue is a single-worker sequential queue. Tasks run one at a time
// in submission order, so no two backend calls from the same client
// instance are ever in flight concurrently and executed-action order
// matches real-world order. There is no cancellation path for a submitted
// task; it runs to completion.
type taskQueue struct {
	mu     sync.Mutex
	tasks  chan func()
	closed bool
	done   chan struct{}
}

func newTaskQueue(buffer int) *taskQueue {
	q := &taskQueue{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *taskQueue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Submit enqueues a task. Blocks while the queue is full.
func (q *taskQueue) Submit(task func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.tasks <- task
	return nil
}

// Run enqueues a task and waits for it to finish.
func (q *taskQueue) Run(task func()) error {
	finished := make(chan struct{})
	if err := q.Submit(func() {
		defer close(finished)
		task()
	}); err != nil {
		return err
	}
	<-finished
	return nil
}

// Close stops the worker after draining queued tasks.
func (q *taskQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	<-q.done
}
