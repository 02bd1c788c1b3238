package core

import "strings"

// Size describes the dimensions of a render canvas.
type Size struct {
	W int
	H int
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Params is an immutable snapshot of the four recurrence coefficients.
type Params struct {
	A, B, C, D float64
}

// DefaultParams returns the coefficients the tool starts with.
func DefaultParams() Params {
	return Params{A: 0.5, B: 0.0, C: 0.5, D: 0.492}
}

// Get returns the coefficient stored under name ("a".."d", case-insensitive).
func (p Params) Get(name string) (float64, bool) {
	switch strings.ToLower(name) {
	case "a":
		return p.A, true
	case "b":
		return p.B, true
	case "c":
		return p.C, true
	case "d":
		return p.D, true
	}
	return 0, false
}

// Set overwrites the coefficient stored under name. Unknown names are ignored
// and reported as false.
func (p *Params) Set(name string, v float64) bool {
	switch strings.ToLower(name) {
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "c":
		p.C = v
	case "d":
		p.D = v
	default:
		return false
	}
	return true
}

// Finite reports whether every coefficient is a finite real.
func (p Params) Finite() bool {
	return isFinite(p.A) && isFinite(p.B) && isFinite(p.C) && isFinite(p.D)
}

// RandomSource yields uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

// Sink accepts finished pixel buffers for display.
type Sink interface {
	Present(buf *PixelBuffer)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(buf *PixelBuffer)

// Present calls f(buf).
func (f SinkFunc) Present(buf *PixelBuffer) { f(buf) }
