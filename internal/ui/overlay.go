//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var helpLines = []string{
	"R       redraw",
	"H       toggle this help",
	"Q, Esc  quit",
	"-/+     step a parameter (hold to repeat)",
	"value   click to type, Enter to apply",
}

// Overlay draws key hints and render status on top of the canvas.
type Overlay struct {
	show   bool
	status string
	pixel  *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetStatus replaces the status line shown under the key hints.
func (o *Overlay) SetStatus(s string) { o.status = s }

// Update toggles visibility on H.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	lines := helpLines
	if o.status != "" {
		lines = append(append([]string(nil), helpLines...), "", o.status)
	}

	const (
		pad        = 8
		lineHeight = 16
	)
	width := 0
	for _, l := range lines {
		if w := text.BoundString(basicfont.Face7x13, l).Dx(); w > width {
			width = w
		}
	}
	height := len(lines)*lineHeight + pad

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*pad), float64(height))
	op.GeoM.Translate(pad, pad)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	screen.DrawImage(o.pixel, op)

	text.Draw(screen, strings.Join(lines, "\n"), basicfont.Face7x13, 2*pad, 2*pad+8, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}
