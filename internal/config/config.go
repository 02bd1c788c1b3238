// Package config holds the settings shared by every csca frontend. Values
// come from DefaultConfig, then an optional YAML file, then command-line
// flags, then --set overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"csca/internal/core"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 300
	DefaultScale  = 2
)

var (
	// ErrInvalidCanvas reports a non-positive canvas dimension or scale.
	ErrInvalidCanvas = errors.New("config: canvas width, height and scale must be positive")
	// ErrInvalidParams reports a non-finite recurrence coefficient.
	ErrInvalidParams = errors.New("config: parameters must be finite numbers")
	// ErrUnknownKey reports an override for a setting that does not exist.
	ErrUnknownKey = errors.New("config: unknown key")
	// ErrInvalidValue reports an override value that does not parse.
	ErrInvalidValue = errors.New("config: invalid value")
)

// Config is the full set of user settings.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	// Seed makes renders reproducible; 0 draws fresh randomness per render.
	Seed   int64        `yaml:"seed"`
	Params ParamsConfig `yaml:"params"`
	Log    LogConfig    `yaml:"log"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

type ParamsConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	p := core.DefaultParams()
	return &Config{
		Canvas: CanvasConfig{Width: DefaultWidth, Height: DefaultHeight, Scale: DefaultScale},
		Params: ParamsConfig{A: p.A, B: p.B, C: p.C, D: p.D},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Size returns the canvas dimensions.
func (c *Config) Size() core.Size {
	return core.Size{W: c.Canvas.Width, H: c.Canvas.Height}
}

// Initial returns the starting recurrence coefficients.
func (c *Config) Initial() core.Params {
	return core.Params{A: c.Params.A, B: c.Params.B, C: c.Params.C, D: c.Params.D}
}

// Bind attaches the configuration to the provided FlagSet. Flag names match
// the keys accepted by Override.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Canvas.Width, "width", c.Canvas.Width, "canvas width in cells")
	fs.IntVar(&c.Canvas.Height, "height", c.Canvas.Height, "canvas height in generations")
	fs.IntVar(&c.Canvas.Scale, "scale", c.Canvas.Scale, "pixel scale multiplier (window only)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for reproducible renders (0 = random)")
	fs.Float64VarP(&c.Params.A, "a", "a", c.Params.A, "left neighbor coefficient")
	fs.Float64VarP(&c.Params.B, "b", "b", c.Params.B, "center coefficient")
	fs.Float64VarP(&c.Params.C, "c", "c", c.Params.C, "right neighbor coefficient")
	fs.Float64VarP(&c.Params.D, "d", "d", c.Params.D, "constant offset")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&c.Log.File, "log-file", c.Log.File, "append JSON logs to this file")
}

var keys = []string{"a", "b", "c", "d", "width", "height", "scale", "seed", "log-level", "log-file"}

// IsKey reports whether name is a setting Override understands.
func IsKey(name string) bool { return slices.Contains(keys, name) }

// Override sets one value by key.
func (c *Config) Override(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "a", "b", "c", "d":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		switch key {
		case "a":
			c.Params.A = v
		case "b":
			c.Params.B = v
		case "c":
			c.Params.C = v
		case "d":
			c.Params.D = v
		}
	case "width", "height", "scale":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		switch key {
		case "width":
			c.Canvas.Width = v
		case "height":
			c.Canvas.Height = v
		case "scale":
			c.Canvas.Scale = v
		}
	case "seed":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		c.Seed = v
	case "log-level":
		c.Log.Level = value
	case "log-file":
		c.Log.File = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// ApplyOverrides applies key=value pairs in key order.
func (c *Config) ApplyOverrides(kv map[string]string) error {
	names := make([]string, 0, len(kv))
	for k := range kv {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		if err := c.Override(strings.ToLower(k), kv[k]); err != nil {
			return err
		}
	}
	return nil
}

// ReplayFlags copies every setting flag explicitly set on fs into c. It lets
// flags win over a config file that was loaded after parsing.
func (c *Config) ReplayFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || !IsKey(f.Name) {
			return
		}
		err = c.Override(f.Name, f.Value.String())
	})
	return err
}

// Validate checks the canvas, the parameters and the log level.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 || c.Canvas.Scale <= 0 {
		return fmt.Errorf("%w: %dx%d scale %d", ErrInvalidCanvas, c.Canvas.Width, c.Canvas.Height, c.Canvas.Scale)
	}
	if !c.Initial().Finite() {
		return ErrInvalidParams
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.Log.Level)
	}
	return nil
}
