package recurrence

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"csca/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIdentityExample(t *testing.T) {
	rng := core.NewSequence(0.2, 0.4, 0.6)
	buf := Render(core.Params{B: 1}, 3, 2, rng)

	require.Equal(t, core.Size{W: 3, H: 2}, buf.Size())
	assert.Equal(t, []uint8{51, 102, 153}, buf.Row(0))
	assert.Equal(t, []uint8{51, 102, 153}, buf.Row(1))
	assert.Equal(t, 3, rng.Draws())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := buf.RGBA(x, y)
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, c.R, c.B)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := core.DefaultParams()
	first := Render(p, 64, 48, core.NewRNG(7))
	second := Render(p, 64, 48, core.NewRNG(7))
	assert.Equal(t, first.Pix, second.Pix)

	other := Render(p, 64, 48, core.NewRNG(8))
	assert.NotEqual(t, first.Pix, other.Pix)
}

func TestRenderDegenerateSizes(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -1}} {
		rng := core.NewSequence(0.5)
		buf := Render(core.DefaultParams(), dims[0], dims[1], rng)
		assert.Zero(t, buf.Len(), "dims %v", dims)
		assert.Zero(t, rng.Draws(), "dims %v", dims)
	}
}

func TestStepWraparound(t *testing.T) {
	src := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	dst := make([]float64, len(src))

	// a=1 copies each cell's left neighbor: column 0 reads column 4.
	Step(dst, src, core.Params{A: 1})
	assert.InDeltaSlice(t, []float64{0.5, 0.1, 0.2, 0.3, 0.4}, dst, 1e-12)

	// c=1 copies each cell's right neighbor: column 4 reads column 0.
	Step(dst, src, core.Params{C: 1})
	assert.InDeltaSlice(t, []float64{0.2, 0.3, 0.4, 0.5, 0.1}, dst, 1e-12)
}

func TestRenderWraparoundEveryRow(t *testing.T) {
	rng := core.NewSequence(0.1, 0.2, 0.3, 0.4, 0.5)
	buf := Render(core.Params{A: 1}, 5, 6, rng)
	for y := 1; y < buf.H; y++ {
		prev := buf.Row(y - 1)
		row := buf.Row(y)
		assert.Equal(t, prev[4], row[0], "row %d column 0", y)
		for x := 1; x < 5; x++ {
			assert.Equal(t, prev[x-1], row[x], "row %d column %d", y, x)
		}
	}
}

func TestStepReadsOnlyPreviousRow(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	src := make([]float64, 17)
	for i := range src {
		src[i] = r.Float64()
	}
	orig := slices.Clone(src)
	p := core.Params{A: 0.7, B: -1.3, C: 2.1, D: 0.05}

	dst := make([]float64, len(src))
	Step(dst, src, p)

	assert.Equal(t, orig, src, "source row must not change")
	n := len(orig)
	for x := range dst {
		want := Frac(p.A*orig[(x-1+n)%n] + p.B*orig[x] + p.C*orig[(x+1)%n] + p.D)
		assert.Equal(t, want, dst[x], "column %d", x)
	}
}

func TestSimulateDoubleBuffers(t *testing.T) {
	p := core.Params{A: 0.9, B: 0.4, C: 0.3, D: 0.1}
	state := []float64{0.3, 0.6, 0.9, 0.12}

	var rows [][]float64
	Simulate(p, slices.Clone(state), 4, func(y int, row []float64) {
		assert.Equal(t, len(rows), y)
		rows = append(rows, slices.Clone(row))
	})
	require.Len(t, rows, 4)

	expect := slices.Clone(state)
	next := make([]float64, len(expect))
	for y := range rows {
		assert.Equal(t, expect, rows[y], "generation %d", y)
		Step(next, expect, p)
		expect, next = next, expect
	}
}

func TestModuloInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 200; trial++ {
		p := core.Params{
			A: (r.Float64() - 0.5) * 1e6,
			B: (r.Float64() - 0.5) * 20,
			C: (r.Float64() - 0.5) * 1e-3,
			D: (r.Float64() - 0.5) * 1e9,
		}
		src := make([]float64, 9)
		for i := range src {
			src[i] = (r.Float64() - 0.5) * 1e4
		}
		dst := make([]float64, len(src))
		Step(dst, src, p)
		for x, v := range dst {
			require.GreaterOrEqual(t, v, 0.0, "trial %d column %d", trial, x)
			require.Less(t, v, 1.0, "trial %d column %d", trial, x)
		}
	}
}

func TestFrac(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-3.5, 0.5},
		{2, 0},
		{-1e-20, 0},
		{math.Inf(1), 0},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Frac(tc.in), 1e-12, "Frac(%v)", tc.in)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 4, Wrap(-1, 5))
	assert.Equal(t, 0, Wrap(5, 5))
	assert.Equal(t, 3, Wrap(-7, 5))
	assert.Equal(t, 2, Wrap(2, 5))
}

func TestRenderPixelsStayInRange(t *testing.T) {
	p := core.Params{A: -3.7, B: 12.5, C: 0.001, D: -0.492}
	buf := Render(p, 40, 30, core.NewRNG(99))
	for i := 0; i < len(buf.Pix); i += 4 {
		assert.Equal(t, uint8(255), buf.Pix[i+3])
	}
}
