package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csca/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, core.DefaultParams(), cfg.Initial())
	assert.Equal(t, core.Size{W: DefaultWidth, H: DefaultHeight}, cfg.Size())
	assert.Zero(t, cfg.Seed)
}

func TestLoadOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csca.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
canvas:
  width: 64
params:
  d: 0.25
seed: 9
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Canvas.Width)
	assert.Equal(t, DefaultHeight, cfg.Canvas.Height)
	assert.Equal(t, 0.25, cfg.Params.D)
	assert.Equal(t, 0.5, cfg.Params.A)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("canvas: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestOverrides(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyOverrides(map[string]string{
		"a":      "0.1",
		"D":      "-2",
		"width":  "10",
		"seed":   "77",
		"scale":  "4",
		"height": " 12 ",
	}))
	assert.Equal(t, core.Params{A: 0.1, B: 0, C: 0.5, D: -2}, cfg.Initial())
	assert.Equal(t, core.Size{W: 10, H: 12}, cfg.Size())
	assert.Equal(t, 4, cfg.Canvas.Scale)
	assert.Equal(t, int64(77), cfg.Seed)

	assert.ErrorIs(t, cfg.Override("e", "1"), ErrUnknownKey)
	assert.ErrorIs(t, cfg.Override("a", "half"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Override("width", "1.5"), ErrInvalidValue)
}

func TestReplayFlags(t *testing.T) {
	flagged := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagged.Bind(fs)
	fs.String("config", "", "")
	require.NoError(t, fs.Parse([]string{"--config", "x.yaml", "-b", "0.75", "--height", "20"}))

	loaded := DefaultConfig()
	loaded.Canvas.Height = 99
	loaded.Canvas.Width = 50
	require.NoError(t, loaded.ReplayFlags(fs))

	assert.Equal(t, 0.75, loaded.Params.B)
	assert.Equal(t, 20, loaded.Canvas.Height)
	assert.Equal(t, 50, loaded.Canvas.Width, "unset flags must not clobber file values")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, ErrInvalidCanvas},
		{"negative height", func(c *Config) { c.Canvas.Height = -1 }, ErrInvalidCanvas},
		{"zero scale", func(c *Config) { c.Canvas.Scale = 0 }, ErrInvalidCanvas},
		{"nan param", func(c *Config) { c.Params.C = math.NaN() }, ErrInvalidParams},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
