package raster_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/raster"
	"deedles.dev/ximage/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

var (
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	green = color.RGBA{G: 0xFF, A: 0xFF}
)

// bordered returns a green image with red bands of the given width on
// its left and right edges.
func bordered(w, h, band int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(green), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, band, h), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-band, 0, w, h), image.NewUniform(red), image.Point{}, draw.Src)
	return img
}

func TestCrop(t *testing.T) {
	tests := []struct {
		name   string
		bounds image.Rectangle
		w, h   int
		want   image.Rectangle
	}{
		{name: "Wide", bounds: image.Rect(0, 0, 4000, 2000), w: 1920, h: 1080, want: image.Rect(222, 0, 3777, 2000)},
		{name: "Tall", bounds: image.Rect(0, 0, 1000, 3000), w: 1920, h: 1080, want: image.Rect(0, 1219, 1000, 1781)},
		{name: "Same", bounds: image.Rect(0, 0, 3840, 2160), w: 1920, h: 1080, want: image.Rect(0, 0, 3840, 2160)},
		{name: "Offset", bounds: image.Rect(10, 10, 30, 20), w: 10, h: 10, want: image.Rect(15, 10, 25, 20)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, raster.Crop(test.bounds, test.w, test.h))
		})
	}
}

func TestFill(t *testing.T) {
	src := bordered(400, 200, 20)

	dst := raster.Fill(src, 192, 108, raster.Lanczos3)
	require.Equal(t, image.Rect(0, 0, 192, 108), dst.Bounds())

	// The red bands are cropped away, never letterboxed or squeezed in.
	for _, p := range []image.Point{{0, 0}, {96, 54}, {191, 107}, {0, 107}} {
		c := dst.RGBAAt(p.X, p.Y)
		assert.Equal(t, green, c, "pixel at %v", p)
	}
}

func TestFillAnyAspect(t *testing.T) {
	sizes := []image.Point{{1, 1}, {7, 300}, {300, 7}, {64, 64}}
	for _, size := range sizes {
		src := bordered(size.X, size.Y, 0)
		dst := raster.Fill(src, 33, 17, raster.Lanczos3)
		assert.Equal(t, image.Rect(0, 0, 33, 17), dst.Bounds(), "source %v", size)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, bordered(8, 4, 1)))
	require.NoError(t, file.Close())

	img, err := raster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err = raster.Load(path)
	assert.Error(t, err)
}

func TestWriteABGR(t *testing.T) {
	img := bordered(4, 2, 1)
	dst := make([]byte, 4*4*2)

	require.NoError(t, raster.Write(dst, img, wl.ShmFormatAbgr8888))
	assert.Equal(t, img.Pix, dst)
}

func TestWriteARGB(t *testing.T) {
	img := bordered(4, 2, 1)
	dst := make([]byte, 4*4*2)

	require.NoError(t, raster.Write(dst, img, wl.ShmFormatArgb8888))
	assert.Equal(t, []byte{0, 0, 0xFF, 0xFF}, dst[:4])
	assert.Equal(t, []byte{0, 0xFF, 0, 0xFF}, dst[4:8])

	canvas := format.Image{Format: format.ARGB8888, Rect: img.Bounds(), Pix: dst}
	for _, p := range []image.Point{{0, 0}, {1, 1}, {3, 0}} {
		wr, wg, wb, wa := img.At(p.X, p.Y).RGBA()
		gr, gg, gb, ga := canvas.At(p.X, p.Y).RGBA()
		assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel at %v", p)
	}
}

func TestWriteARGBByteOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	dst := make([]byte, 4)

	require.NoError(t, raster.Write(dst, img, wl.ShmFormatArgb8888))
	assert.Equal(t, []byte{3, 2, 1, 255}, dst)
}

func TestWriteErrors(t *testing.T) {
	img := bordered(4, 2, 1)

	err := raster.Write(make([]byte, 4), img, wl.ShmFormatAbgr8888)
	assert.Error(t, err)

	err = raster.Write(make([]byte, 32), img, wl.ShmFormat(0x36314752))
	var uerr raster.UnsupportedFormatError
	assert.ErrorAs(t, err, &uerr)
}
