package renderer

import (
	"math/rand"
)

// PixelCoord addresses one pixel by row X and column Y
type PixelCoord struct {
	X uint32 // row, 0 is the top of the image
	Y uint32 // column
}

// Pixel is a finished pixel: its coordinates and 8-bit RGBA color
type Pixel struct {
	X, Y       uint32
	R, G, B, A uint8
}

// ShufflePixels enumerates every pixel of a width x height image in a
// uniformly random order
func ShufflePixels(width, height int, random *rand.Rand) []PixelCoord {
	coords := make([]PixelCoord, 0, width*height)
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			coords = append(coords, PixelCoord{X: uint32(x), Y: uint32(y)})
		}
	}
	random.Shuffle(len(coords), func(i, j int) {
		coords[i], coords[j] = coords[j], coords[i]
	})
	return coords
}

// PartitionPixels splits coords into k contiguous, disjoint slices of
// len(coords)/k pixels; the last slice absorbs the remainder. k is clamped
// to [1, len(coords)] so no slice is ever empty. An empty input yields no slices.
func PartitionPixels(coords []PixelCoord, k int) [][]PixelCoord {
	if len(coords) == 0 {
		return nil
	}
	k = max(1, min(k, len(coords)))

	size := len(coords) / k
	slices := make([][]PixelCoord, k)
	for i := 0; i < k; i++ {
		start := i * size
		end := start + size
		if i == k-1 {
			end = len(coords)
		}
		slices[i] = coords[start:end]
	}
	return slices
}

// SplitBatches divides a slice into consecutive batches of at most size pixels
func SplitBatches(slice []PixelCoord, size int) [][]PixelCoord {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([][]PixelCoord, 0, (len(slice)+size-1)/size)
	for start := 0; start < len(slice); start += size {
		end := min(start+size, len(slice))
		batches = append(batches, slice[start:end])
	}
	return batches
}
