package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csca/internal/config"
	"csca/internal/core"
	"csca/internal/sims/recurrence"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, err := execute(t, "render", "-o", path, "--width", "16", "--height", "8", "--seed", "7")
	require.NoError(t, err)

	img, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	want := recurrence.Render(core.DefaultParams(), 16, 8, core.NewSeeder(7).Next())
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			gray := want.Gray(x, y)
			assert.Equal(t, uint32(gray)*0x101, r, "pixel %d,%d", x, y)
			assert.Equal(t, r, g)
			assert.Equal(t, r, b)
			assert.Equal(t, uint32(0xffff), a)
		}
	}
}

func TestConfigFileFlagsAndOverridesLayer(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "csca.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("canvas:\n  width: 12\n  height: 4\nseed: 3\nparams:\n  a: 0.1\n"), 0o644))
	out := filepath.Join(dir, "layered.png")

	_, err := execute(t, "render", "--config", cfgPath, "--height", "5", "--set", "b=0.25", "-o", out)
	require.NoError(t, err)

	img, err := imgio.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 5), img.Bounds())

	p := core.Params{A: 0.1, B: 0.25, C: 0.5, D: 0.492}
	want := recurrence.Render(p, 12, 5, core.NewSeeder(3).Next())
	r, _, _, _ := img.At(5, 4).RGBA()
	assert.Equal(t, uint32(want.Gray(5, 4))*0x101, r)
}

func TestSetRejectsUnknownKey(t *testing.T) {
	_, err := execute(t, "stats", "--set", "bogus=1")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestInvalidCanvasIsRejected(t *testing.T) {
	_, err := execute(t, "stats", "--width", "0")
	assert.ErrorIs(t, err, config.ErrInvalidCanvas)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "stats", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatsPlotsRowMeans(t *testing.T) {
	out, err := execute(t, "stats", "--width", "32", "--height", "20", "--seed", "1", "--plot-height", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "mean gray level per generation (32x20)")
}

func TestWriteStatsEmptyCanvas(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeStats(&out, core.NewPixelBuffer(0, 0), 5))
	assert.Equal(t, "empty canvas\n", out.String())
}

func TestWritePNGReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.png")
	err := writePNG(path, core.NewPixelBuffer(2, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
