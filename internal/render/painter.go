//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"csca/internal/core"
)

// Painter keeps a GPU image in sync with the latest pixel buffer.
type Painter struct {
	w, h int
	img  *ebiten.Image
}

// NewPainter allocates a painter for a canvas of size w*h.
func NewPainter(w, h int) *Painter {
	return &Painter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Upload copies buf into the painter image. Buffers of a different size are
// ignored.
func (p *Painter) Upload(buf *core.PixelBuffer) bool {
	if buf == nil || buf.W != p.w || buf.H != p.h {
		return false
	}
	p.img.WritePixels(buf.Pix)
	return true
}

// Draw paints the image onto dst, scaled.
func (p *Painter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
