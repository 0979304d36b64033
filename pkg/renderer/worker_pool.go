package renderer

import (
	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/integrator"
)

// Executor runs worker tasks. Hosts with their own thread pool can supply one.
type Executor interface {
	Go(task func())
}

// GoroutineExecutor runs each task on a new goroutine
type GoroutineExecutor struct{}

// Go starts task on its own goroutine
func (GoroutineExecutor) Go(task func()) {
	go task()
}

// WorkerPool renders disjoint pixel slices in parallel and streams the
// finished batches into a shared queue
type WorkerPool struct {
	workers  []*Worker
	queue    *BatchQueue
	executor Executor
}

// Worker renders one slice of shuffled pixels batch by batch
type Worker struct {
	ID         int
	batches    [][]PixelCoord
	integrator integrator.Integrator
	sampler    core.Sampler
	queue      *BatchQueue
}

// NewWorkerPool creates one worker per slice. Worker i owns a sampler seeded
// with seed+1+i. The queue must expect exactly len(slices) producers.
func NewWorkerPool(integ integrator.Integrator, slices [][]PixelCoord, batchSize int, seed int64, queue *BatchQueue, executor Executor) *WorkerPool {
	if executor == nil {
		executor = GoroutineExecutor{}
	}

	wp := &WorkerPool{
		queue:    queue,
		executor: executor,
	}

	for i, slice := range slices {
		wp.workers = append(wp.workers, &Worker{
			ID:         i,
			batches:    SplitBatches(slice, batchSize),
			integrator: integ,
			sampler:    workerSampler(seed, i),
			queue:      queue,
		})
	}

	return wp
}

// workerSampler seeds worker i apart from the pixel shuffle, which uses seed itself
func workerSampler(seed int64, i int) *core.RandomSampler {
	return core.NewSeededSampler(seed + 1 + int64(i))
}

// Start hands every worker to the executor
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.executor.Go(worker.run)
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// GetNumBatches returns the total number of batches across all workers
func (wp *WorkerPool) GetNumBatches() int {
	total := 0
	for _, w := range wp.workers {
		total += len(w.batches)
	}
	return total
}

// run is the main worker loop
func (w *Worker) run() {
	defer w.queue.Done()

	for _, batch := range w.batches {
		pixels := make([]Pixel, len(batch))
		for i, coord := range batch {
			c := w.integrator.TracePixel(int(coord.X), int(coord.Y), w.sampler)
			pixels[i] = Pixel{X: coord.X, Y: coord.Y, R: c.R, G: c.G, B: c.B, A: c.A}
		}
		w.queue.Push(pixels)
	}
}
