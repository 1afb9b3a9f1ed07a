// Package raster prepares images for display: decoding, scaling them
// to cover an output, and writing them into shared memory buffers.
package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/ximage/format"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Lanczos3 is a Lanczos resampling kernel with a support of 3.
var Lanczos3 = &draw.Kernel{Support: 3, At: lanczos(3)}

func lanczos(a float64) func(float64) float64 {
	return func(x float64) float64 {
		x = math.Abs(x)
		switch {
		case x == 0:
			return 1
		case x >= a:
			return 0
		}
		px := math.Pi * x
		return a * math.Sin(px) * math.Sin(px/a) / (px * px)
	}
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Crop returns the largest region of bounds, centered, that has the
// aspect ratio of a width by height rectangle.
func Crop(bounds image.Rectangle, width, height int) image.Rectangle {
	sw, sh := bounds.Dx(), bounds.Dy()

	// Compare sw/sh with width/height without losing precision.
	switch l, r := int64(sw)*int64(height), int64(sh)*int64(width); {
	case l > r:
		cw := max(int(r/int64(height)), 1)
		x := bounds.Min.X + (sw-cw)/2
		return image.Rect(x, bounds.Min.Y, x+cw, bounds.Max.Y)
	case l < r:
		ch := max(int(l/int64(width)), 1)
		y := bounds.Min.Y + (sh-ch)/2
		return image.Rect(bounds.Min.X, y, bounds.Max.X, y+ch)
	default:
		return bounds
	}
}

// Fill scales src so that it covers exactly width by height pixels,
// preserving its aspect ratio by cropping the overflowing axis evenly
// from both sides.
func Fill(src image.Image, width, height int, scaler draw.Scaler) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if (width <= 0) || (height <= 0) || src.Bounds().Empty() {
		return dst
	}

	scaler.Scale(dst, dst.Bounds(), src, Crop(src.Bounds(), width, height), draw.Src, nil)
	return dst
}

// UnsupportedFormatError is returned when asked to write pixels in a
// format that this package doesn't know how to produce.
type UnsupportedFormatError struct {
	Format wl.ShmFormat
}

func (err UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported pixel format: %v", err.Format)
}

// Write writes img into dst, which must be laid out in the given
// format with a stride of four times the image's width.
func Write(dst []byte, img *image.RGBA, f wl.ShmFormat) error {
	r := img.Bounds()
	if len(dst) < len(img.Pix) {
		return fmt.Errorf("buffer too small: %v bytes for %vx%v image", len(dst), r.Dx(), r.Dy())
	}

	switch f {
	case wl.ShmFormatAbgr8888, wl.ShmFormatXbgr8888:
		copy(dst, img.Pix)
		return nil

	case wl.ShmFormatArgb8888, wl.ShmFormatXrgb8888:
		canvas := format.Image{
			Format: format.ARGB8888,
			Rect:   image.Rect(0, 0, r.Dx(), r.Dy()),
			Pix:    dst,
		}
		draw.Draw(&canvas, canvas.Rect, img, r.Min, draw.Src)
		return nil

	default:
		return UnsupportedFormatError{Format: f}
	}
}
