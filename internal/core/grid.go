package core

import (
	"image"
	"image/color"
)

// PixelBuffer stores an RGBA image in row-major order, four bytes per pixel.
type PixelBuffer struct {
	W, H int
	Pix  []uint8
}

// NewPixelBuffer allocates a buffer with the given dimensions. Negative
// dimensions are treated as zero, yielding a buffer with no pixels.
func NewPixelBuffer(w, h int) *PixelBuffer {
	b := &PixelBuffer{}
	b.Resize(w, h)
	return b
}

// Resize changes the dimensions, reusing the backing slice when it is large
// enough. Pixel contents are unspecified afterwards.
func (b *PixelBuffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.W, b.H = w, h
	n := 4 * w * h
	if cap(b.Pix) < n {
		b.Pix = make([]uint8, n)
		return
	}
	b.Pix = b.Pix[:n]
}

// Size returns the buffer dimensions.
func (b *PixelBuffer) Size() Size { return Size{W: b.W, H: b.H} }

// Len returns the number of pixels in the buffer.
func (b *PixelBuffer) Len() int { return len(b.Pix) / 4 }

// Index returns the offset of the red channel of pixel (x, y).
func (b *PixelBuffer) Index(x, y int) int { return (y*b.W + x) * 4 }

// SetGray writes an opaque gray pixel.
func (b *PixelBuffer) SetGray(x, y int, g uint8) {
	i := b.Index(x, y)
	b.Pix[i+0] = g
	b.Pix[i+1] = g
	b.Pix[i+2] = g
	b.Pix[i+3] = 0xff
}

// Gray returns the red channel of pixel (x, y), which equals the gray level
// for buffers produced by the renderer.
func (b *PixelBuffer) Gray(x, y int) uint8 { return b.Pix[b.Index(x, y)] }

// RGBA returns the color of pixel (x, y).
func (b *PixelBuffer) RGBA(x, y int) color.RGBA {
	i := b.Index(x, y)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Row returns the gray levels of row y.
func (b *PixelBuffer) Row(y int) []uint8 {
	row := make([]uint8, b.W)
	for x := range row {
		row[x] = b.Gray(x, y)
	}
	return row
}

// Image wraps the buffer as an *image.RGBA sharing the same bytes.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: 4 * b.W,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}
