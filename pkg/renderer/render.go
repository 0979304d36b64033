package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/integrator"
	"github.com/df07/fermion/pkg/scene"
)

// DefaultBatchSize is the number of pixels a worker renders before streaming them
const DefaultBatchSize = 5000

// Config controls how a render is scheduled
type Config struct {
	Concurrency int         // Number of workers (<= 0 = hardware concurrency)
	BatchSize   int         // Pixels per streamed batch (<= 0 = DefaultBatchSize)
	Seed        int64       // Seed for the pixel shuffle and worker samplers (0 = time based)
	Logger      core.Logger // nil discards log output
	Executor    Executor    // nil runs workers on goroutines

	// OnComplete is called exactly once with the finished buffer
	OnComplete func(buf []byte)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Concurrency: 0,
		BatchSize:   DefaultBatchSize,
		Logger:      NewDefaultLogger(),
	}
}

// RenderContext is the handle to a render in flight. All methods are safe
// for concurrent use.
type RenderContext struct {
	width, height int
	total         int

	counter atomic.Int64
	// One packed RGBA value per pixel, written only by the aggregator
	pixels []atomic.Uint32

	done  chan struct{}
	final []byte // set before done is closed

	start   time.Time
	workers int
	batches int
	elapsed time.Duration // set before done is closed
}

// Render initializes the scene and starts a path traced render of it
func Render(s *scene.Scene, config Config) (*RenderContext, error) {
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return Start(s.Width, s.Height, integrator.NewPathTracingIntegrator(s), config)
}

// Start shuffles the pixels of a width x height image, partitions them
// across workers and returns immediately. The result is available through
// Wait, Done and OnComplete.
func Start(width, height int, integ integrator.Integrator, config Config) (*RenderContext, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %dx%d", scene.ErrInvalidScene, width, height)
	}

	if config.Concurrency <= 0 {
		config.Concurrency = HardwareConcurrency()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Logger == nil {
		config.Logger = nopLogger{}
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	total := width * height
	coords := ShufflePixels(width, height, rand.New(rand.NewSource(config.Seed)))
	slices := PartitionPixels(coords, config.Concurrency)

	queue := NewBatchQueue(len(slices))
	pool := NewWorkerPool(integ, slices, config.BatchSize, config.Seed, queue, config.Executor)

	rc := &RenderContext{
		width:   width,
		height:  height,
		total:   total,
		pixels:  make([]atomic.Uint32, total),
		done:    make(chan struct{}),
		start:   time.Now(),
		workers: pool.GetNumWorkers(),
		batches: pool.GetNumBatches(),
	}

	config.Logger.Printf("Rendering %dx%d with %d workers (%d batches of up to %d pixels)\n",
		width, height, rc.workers, rc.batches, config.BatchSize)

	go rc.aggregate(queue, config)
	pool.Start()

	return rc, nil
}

// aggregate is the only writer of the pixel buffer. Every coordinate arrives
// exactly once, so no offset is written twice.
func (rc *RenderContext) aggregate(queue *BatchQueue, config Config) {
	for {
		batch, ok := queue.Pop()
		if !ok {
			break
		}
		rc.counter.Add(int64(len(batch)))
		for _, p := range batch {
			rc.pixels[int(p.X)*rc.width+int(p.Y)].Store(packRGBA(p.R, p.G, p.B, p.A))
		}
	}

	rc.final = rc.copyPixels()
	rc.elapsed = time.Since(rc.start)
	close(rc.done)

	config.Logger.Printf("Render completed: %v\n", rc.Stats())
	if config.OnComplete != nil {
		config.OnComplete(rc.final)
	}
}

func packRGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

func (rc *RenderContext) copyPixels() []byte {
	buf := make([]byte, 4*rc.total)
	for i := range rc.pixels {
		v := rc.pixels[i].Load()
		buf[4*i] = uint8(v)
		buf[4*i+1] = uint8(v >> 8)
		buf[4*i+2] = uint8(v >> 16)
		buf[4*i+3] = uint8(v >> 24)
	}
	return buf
}

// Width returns the image width
func (rc *RenderContext) Width() int { return rc.width }

// Height returns the image height
func (rc *RenderContext) Height() int { return rc.height }

// Completed returns the number of pixels the aggregator has received
func (rc *RenderContext) Completed() int {
	return int(rc.counter.Load())
}

// Progress returns the completed fraction in [0, 1]. It never decreases and
// reaches exactly 1 only once Done is closed.
func (rc *RenderContext) Progress() float32 {
	select {
	case <-rc.done:
		return 1
	default:
	}
	completed := min(rc.counter.Load(), int64(rc.total-1))
	return float32(completed) / float32(rc.total)
}

// Snapshot returns a copy of the buffer as it currently stands. Pixels not
// yet rendered are zero. Each pixel is either fully old or fully new.
func (rc *RenderContext) Snapshot() []byte {
	return rc.copyPixels()
}

// Done is closed when the last pixel has been written
func (rc *RenderContext) Done() <-chan struct{} {
	return rc.done
}

// Wait blocks until the render completes or ctx ends. The returned buffer is
// 4*width*height bytes, RGBA, with pixel (x, y) at offset 4*(x*width+y).
func (rc *RenderContext) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-rc.done:
		return rc.final, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Image returns the finished buffer as an image, or nil while rendering.
// The image shares memory with the buffer returned by Wait.
func (rc *RenderContext) Image() *image.RGBA {
	select {
	case <-rc.done:
	default:
		return nil
	}
	return &image.RGBA{
		Pix:    rc.final,
		Stride: 4 * rc.width,
		Rect:   image.Rect(0, 0, rc.width, rc.height),
	}
}

// Stats returns render statistics. Before completion Elapsed is the time so far.
func (rc *RenderContext) Stats() RenderStats {
	elapsed := time.Since(rc.start)
	select {
	case <-rc.done:
		elapsed = rc.elapsed
	default:
	}
	return newRenderStats(rc.total, rc.batches, rc.workers, elapsed)
}
