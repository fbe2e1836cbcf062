// Package config loads bspgen generation settings from TOML files.
//
// A config file mirrors the generator options:
//
//	[map]
//	width = 80
//	height = 50
//
//	[split]
//	policy = "random"
//	depth = 4
//	seed = 42
//	min_ratio = 0.35
//	max_ratio = 0.65
//
//	[rooms]
//	padding = 1
//	min_size = 3
//	corridor_width = 1
//
//	[render]
//	scale = 10
//	show_regions = true
//
// Missing keys keep the values from [Default].
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/render/sink"
	"github.com/matzehuels/bspgen/pkg/split"
)

// Config is the full set of generation and render settings.
type Config struct {
	Map    MapConfig    `toml:"map" json:"map"`
	Split  SplitConfig  `toml:"split" json:"split"`
	Rooms  RoomsConfig  `toml:"rooms" json:"rooms"`
	Render RenderConfig `toml:"render" json:"render"`
}

type MapConfig struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

type SplitConfig struct {
	Policy   string  `toml:"policy" json:"policy"`
	Depth    int     `toml:"depth" json:"depth"`
	Seed     int64   `toml:"seed" json:"seed"`
	MinRatio float64 `toml:"min_ratio" json:"min_ratio"`
	MaxRatio float64 `toml:"max_ratio" json:"max_ratio"`
}

type RoomsConfig struct {
	Padding       float64 `toml:"padding" json:"padding"`
	MinSize       float64 `toml:"min_size" json:"min_size"`
	CorridorWidth float64 `toml:"corridor_width" json:"corridor_width"`
}

type RenderConfig struct {
	Scale       float64 `toml:"scale" json:"scale"`
	ShowRegions bool    `toml:"show_regions" json:"show_regions"`
	ShowIDs     bool    `toml:"show_ids" json:"show_ids"`
}

// DefaultScale is the default number of SVG pixels per map unit.
const DefaultScale = sink.DefaultScale

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Map: MapConfig{Width: dungeon.DefaultWidth, Height: dungeon.DefaultHeight},
		Split: SplitConfig{
			Policy:   split.PolicyRandom,
			Depth:    dungeon.DefaultDepth,
			MinRatio: dungeon.DefaultMinRatio,
			MaxRatio: dungeon.DefaultMaxRatio,
		},
		Rooms: RoomsConfig{
			Padding:       dungeon.DefaultPadding,
			MinSize:       dungeon.DefaultMinRoomSize,
			CorridorWidth: dungeon.DefaultCorridorWidth,
		},
		Render: RenderConfig{Scale: DefaultScale, ShowRegions: true},
	}
}

// Load reads a TOML file on top of [Default] and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Default] and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key: %s", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if _, err := split.ByName(c.Split.Policy, 0, c.Split.MinRatio, c.Split.MaxRatio); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive (got %g)", c.Render.Scale)
	}
	return nil
}

// Options converts the config into generator options.
func (c Config) Options() dungeon.Options {
	return dungeon.Options{
		Width:         c.Map.Width,
		Height:        c.Map.Height,
		Depth:         c.Split.Depth,
		Policy:        c.Split.Policy,
		Seed:          c.Split.Seed,
		MinRatio:      c.Split.MinRatio,
		MaxRatio:      c.Split.MaxRatio,
		Padding:       c.Rooms.Padding,
		MinRoomSize:   c.Rooms.MinSize,
		CorridorWidth: c.Rooms.CorridorWidth,
	}
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
