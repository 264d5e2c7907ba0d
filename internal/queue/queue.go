// Package queue implements progress-tracked work queues for batch notebook
// exports.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DecisionSuccess is returned by a processFunc when an item was
	// processed.
	DecisionSuccess = 1

	// DecisionSkipped is returned by a processFunc when an item was skipped.
	DecisionSkipped = 0

	// DecisionRequeue is returned by a processFunc when an item needs
	// requeueing.
	DecisionRequeue = -1
)

// Queue is a generic queue that can hold any comparable type of items.
type Queue[T comparable] struct {
	sync.RWMutex
	hasStarted  bool
	hasFinished bool
	startTime   time.Time
	finishTime  time.Time
	head        int
	items       []T
	success     []T
	skipped     []T
	inProgress  map[T]struct{}
}

// NewQueue returns a pointer to a new [Queue].
func NewQueue[T comparable]() *Queue[T] {
	return &Queue[T]{
		inProgress: make(map[T]struct{}),
	}
}

// Enqueue adds items to the queue.
func (q *Queue[T]) Enqueue(items ...T) {
	q.Lock()
	defer q.Unlock()

	if q.hasFinished {
		q.finishTime = time.Time{}
		q.hasFinished = false
	}

	for _, item := range items {
		delete(q.inProgress, item)
		q.items = append(q.items, item)
	}
}

// Dequeue removes and returns the next item from the queue. The second
// return is false when no items remain.
func (q *Queue[T]) Dequeue() (T, bool) {
	q.Lock()
	defer q.Unlock()

	if q.head >= len(q.items) {
		var zero T

		return zero, false
	}

	if !q.hasStarted {
		q.hasStarted = true
		q.startTime = time.Now()
	}

	item := q.items[q.head]
	q.head++

	return item, true
}

// HasRemainingItems returns whether a queue has remaining items to process.
func (q *Queue[T]) HasRemainingItems() bool {
	q.RLock()
	defer q.RUnlock()

	return q.head < len(q.items)
}

// GetSuccessful returns a copy of the internal slice holding all successful
// items.
func (q *Queue[T]) GetSuccessful() []T {
	q.RLock()
	defer q.RUnlock()

	result := make([]T, len(q.success))
	copy(result, q.success)

	return result
}

// GetSkipped returns a copy of the internal slice holding all skipped items.
func (q *Queue[T]) GetSkipped() []T {
	q.RLock()
	defer q.RUnlock()

	result := make([]T, len(q.skipped))
	copy(result, q.skipped)

	return result
}

// SetSuccess marks items as successfully processed.
func (q *Queue[T]) SetSuccess(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.success = append(q.success, item)
	}

	q.updateFinished()
}

// SetSkipped marks items as skipped.
func (q *Queue[T]) SetSkipped(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.skipped = append(q.skipped, item)
	}

	q.updateFinished()
}

// SetProcessing marks items as being in progress.
func (q *Queue[T]) SetProcessing(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		q.inProgress[item] = struct{}{}
	}
}

// updateFinished records the finish time once all dequeued items have been
// settled. The caller must hold the write lock.
func (q *Queue[T]) updateFinished() {
	if q.hasStarted && !q.hasFinished && q.head >= len(q.items) && len(q.inProgress) == 0 {
		q.hasFinished = true
		q.finishTime = time.Now()
	}
}

// DequeueAndProcess processes the queue sequentially until it is drained or
// the [context.Context] is canceled.
func (q *Queue[T]) DequeueAndProcess(ctx context.Context, processFunc func(T) int) error {
	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := q.Dequeue()
		if !ok {
			break
		}

		q.SetProcessing(item)

		switch processFunc(item) {
		case DecisionRequeue:
			q.Enqueue(item)

		case DecisionSkipped:
			q.SetSkipped(item)

		case DecisionSuccess:
			q.SetSuccess(item)
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-proc) %w", ctx.Err())
	}

	return nil
}

// DequeueAndProcessConc processes the queue with a bounded number of
// concurrent workers until it is drained or the [context.Context] is
// canceled.
func (q *Queue[T]) DequeueAndProcessConc(ctx context.Context, maxWorkers int, processFunc func(T) int) error {
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, maxWorkers)

LOOP:
	for {
		select {
		case <-ctx.Done():
			wg.Wait()

			return fmt.Errorf("(queue-concproc) %w", ctx.Err())
		case semaphore <- struct{}{}:
		}

		item, ok := q.Dequeue()
		if !ok {
			<-semaphore

			break
		}

		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			defer func() { <-semaphore }()

			q.SetProcessing(item)

			switch processFunc(item) {
			case DecisionRequeue:
				q.Enqueue(item)

			case DecisionSkipped:
				q.SetSkipped(item)

			case DecisionSuccess:
				q.SetSuccess(item)
			}
		}(item)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-concproc) %w", ctx.Err())
	}

	if q.HasRemainingItems() {
		// In case item(s) were requeued but all workers have already left.
		goto LOOP
	}

	return nil
}
