package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about a render
type RenderStats struct {
	TotalPixels     int           // Pixels in the image
	Batches         int           // Batches streamed by all workers
	Workers         int           // Workers the pixels were partitioned across
	Elapsed         time.Duration // Time from start to completion, or so far
	PixelsPerSecond float64       // Throughput over Elapsed
}

func newRenderStats(totalPixels, batches, workers int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		TotalPixels: totalPixels,
		Batches:     batches,
		Workers:     workers,
		Elapsed:     elapsed,
	}
	if elapsed > 0 {
		stats.PixelsPerSecond = float64(totalPixels) / elapsed.Seconds()
	}
	return stats
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels in %v (%d workers, %d batches, %.0f pixels/s)",
		s.TotalPixels, s.Elapsed.Round(time.Millisecond), s.Workers, s.Batches, s.PixelsPerSecond)
}
