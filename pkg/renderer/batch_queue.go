package renderer

import (
	"sync"
)

// BatchQueue is an unbounded multi-producer, single-consumer queue of pixel
// batches. Push never blocks. Pop blocks until a batch is available or every
// registered producer has called Done and the queue is drained.
type BatchQueue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	batches   [][]Pixel
	producers int   // producers that have not called Done yet
	pushed    int64 // total batches ever pushed
}

// NewBatchQueue creates a queue expecting the given number of producers
func NewBatchQueue(producers int) *BatchQueue {
	q := &BatchQueue{producers: producers}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a batch for the consumer
func (q *BatchQueue) Push(batch []Pixel) {
	q.mu.Lock()
	q.batches = append(q.batches, batch)
	q.pushed++
	q.mu.Unlock()
	q.cond.Signal()
}

// Done marks one producer as finished
func (q *BatchQueue) Done() {
	q.mu.Lock()
	if q.producers <= 0 {
		q.mu.Unlock()
		panic("renderer: BatchQueue.Done called more times than there are producers")
	}
	q.producers--
	closed := q.producers == 0
	q.mu.Unlock()
	if closed {
		q.cond.Broadcast()
	}
}

// Pop removes the oldest batch. It returns false once the queue is closed
// and empty.
func (q *BatchQueue) Pop() ([]Pixel, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.batches) == 0 && q.producers > 0 {
		q.cond.Wait()
	}
	if len(q.batches) == 0 {
		return nil, false
	}

	batch := q.batches[0]
	q.batches[0] = nil
	q.batches = q.batches[1:]
	return batch, true
}

// Len returns the number of queued batches
func (q *BatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.batches)
}

// Pushed returns the number of batches pushed so far
func (q *BatchQueue) Pushed() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pushed
}
