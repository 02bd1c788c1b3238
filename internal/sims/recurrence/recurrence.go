// Package recurrence renders the coupled linear recurrence
//
//	next[x] = frac(a*s[x-1] + b*s[x] + c*s[x+1] + d)
//
// over a circular row, one image row per generation.
package recurrence

import (
	"math"

	"csca/internal/core"
	"csca/internal/render"
)

// Render seeds a random row of width cells and records height generations
// as a grayscale image. Non-positive dimensions yield a buffer with no pixels
// and leave rng untouched.
func Render(p core.Params, width, height int, rng core.RandomSource) *core.PixelBuffer {
	buf := core.NewPixelBuffer(width, height)
	RenderInto(buf, p, rng)
	return buf
}

// RenderSize adapts Render to render.RenderFunc.
func RenderSize(p core.Params, size core.Size, rng core.RandomSource) *core.PixelBuffer {
	return Render(p, size.W, size.H, rng)
}

// RenderInto fills an existing buffer, keeping its dimensions.
func RenderInto(buf *core.PixelBuffer, p core.Params, rng core.RandomSource) {
	if buf.Size().Empty() {
		return
	}
	state := make([]float64, buf.W)
	Seed(state, rng)
	Simulate(p, state, buf.H, func(y int, row []float64) {
		render.FillGrayRow(buf, y, row)
	})
}

// Seed fills state with independent uniform draws, left to right.
func Seed(state []float64, rng core.RandomSource) {
	for i := range state {
		state[i] = rng.Float64()
	}
}

// Simulate calls visit with generations 0..rows-1, starting from state. The
// row handed to visit is only valid during the call. state is used as one of
// the two row buffers and holds an unspecified generation afterwards.
func Simulate(p core.Params, state []float64, rows int, visit func(y int, row []float64)) {
	cur := state
	next := make([]float64, len(state))
	for y := 0; y < rows; y++ {
		visit(y, cur)
		if y+1 == rows {
			break
		}
		Step(next, cur, p)
		cur, next = next, cur
	}
}

// Step computes the generation after src into dst. Every cell of dst reads
// only src, so dst and src must not overlap.
func Step(dst, src []float64, p core.Params) {
	n := len(src)
	for x := 0; x < n; x++ {
		left := src[Wrap(x-1, n)]
		right := src[Wrap(x+1, n)]
		dst[x] = Frac(p.A*left + p.B*src[x] + p.C*right + p.D)
	}
}

// Wrap maps i onto [0, n) with toroidal wrapping.
func Wrap(i, n int) int {
	return (i%n + n) % n
}

// Frac reduces v modulo 1 into [0, 1). Values whose fractional part rounds
// up to 1 and non-finite values map to 0.
func Frac(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}
