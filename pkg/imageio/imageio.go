package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for output formats other than png, bmp and tiff
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output file format
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FromBuffer wraps a row-major RGBA8 buffer as an image without copying
func FromBuffer(buf []byte, width, height int) (*image.RGBA, error) {
	if len(buf) != 4*width*height {
		return nil, fmt.Errorf("buffer is %d bytes, expected %d for %dx%d", len(buf), 4*width*height, width, height)
	}
	return &image.RGBA{
		Pix:    buf,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Scale resizes img to width x height with nearest-neighbor sampling, which
// keeps unrendered preview pixels crisp
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// OutputPath returns <root>/<sceneName>/render_<timestamp>.<format>
func OutputPath(root, sceneName string, format Format, now time.Time) string {
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	return filepath.Join(root, sceneName, filename)
}

// SaveImage encodes img to path, creating parent directories as needed
func SaveImage(path string, img image.Image, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}
