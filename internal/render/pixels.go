package render

import (
	"math"

	"csca/internal/core"
)

// GrayLevel converts a cell value in [0, 1) to an 8-bit gray level, rounding
// half to even the way clamped 8-bit image storage does.
func GrayLevel(v float64) uint8 {
	g := math.RoundToEven(v * 255)
	switch {
	case g <= 0 || math.IsNaN(g):
		return 0
	case g >= 255:
		return 255
	}
	return uint8(g)
}

// FillGrayRow writes row as opaque gray pixels into row y of buf.
func FillGrayRow(buf *core.PixelBuffer, y int, row []float64) {
	base := buf.Index(0, y)
	for x, v := range row {
		g := GrayLevel(v)
		i := base + x*4
		buf.Pix[i+0] = g
		buf.Pix[i+1] = g
		buf.Pix[i+2] = g
		buf.Pix[i+3] = 0xff
	}
}

// RowMeans returns the mean gray level of every row.
func RowMeans(buf *core.PixelBuffer) []float64 {
	means := make([]float64, buf.H)
	if buf.W <= 0 {
		return means
	}
	for y := range means {
		sum := 0
		for x := 0; x < buf.W; x++ {
			sum += int(buf.Gray(x, y))
		}
		means[y] = float64(sum) / float64(buf.W)
	}
	return means
}
