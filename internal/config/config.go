// Package config holds the settings of one animation run, the built-in
// variant presets and the loader for YAML/TOML override files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/bunnygif/internal/easing"
	"github.com/ivlev/bunnygif/internal/palette"
	"github.com/ivlev/bunnygif/internal/sprite"
)

const (
	// DefaultSizeBudget is the output size above which a warning is printed.
	DefaultSizeBudget = 5 * 1024

	// MinDelayMS is the shortest frame delay a GIF can hold (one centisecond).
	MinDelayMS = 10
)

type Config struct {
	Variant     string            `yaml:"variant" toml:"variant"`
	Width       int               `yaml:"width" toml:"width"`
	Height      int               `yaml:"height" toml:"height"`
	TotalFrames int               `yaml:"total_frames" toml:"total_frames"`
	DelayMS     int               `yaml:"delay_ms" toml:"delay_ms"`
	LoopCount   int               `yaml:"loop_count" toml:"loop_count"`
	Easing      string            `yaml:"easing" toml:"easing"`
	Amplitude   float64           `yaml:"amplitude" toml:"amplitude"`
	Transparent bool              `yaml:"transparent" toml:"transparent"`
	Background  string            `yaml:"background" toml:"background"`
	Expression  string            `yaml:"expression" toml:"expression"`
	Palette     map[string]string `yaml:"palette" toml:"palette"`

	Format     string `yaml:"format" toml:"format"`
	OutputPath string `yaml:"output" toml:"output"`

	Preview       bool   `yaml:"preview" toml:"preview"`
	PreviewDir    string `yaml:"preview_dir" toml:"preview_dir"`
	PreviewPrefix string `yaml:"preview_prefix" toml:"preview_prefix"`
	PreviewScale  int    `yaml:"preview_scale" toml:"preview_scale"`
	Workers       int    `yaml:"workers" toml:"workers"`

	InputPath    string `yaml:"input" toml:"input"`
	TimelinePath string `yaml:"timeline" toml:"timeline"`
	SizeBudget   int64  `yaml:"size_budget" toml:"size_budget"`
	ShowStats    bool   `yaml:"stats" toml:"stats"`
	BuildVersion string `yaml:"-" toml:"-"`
}

// ForVariant returns the preset of a named variant: "basic" or "improved".
// An empty name selects "improved".
func ForVariant(name string) (*Config, error) {
	switch strings.ToLower(name) {
	case "basic":
		return &Config{
			Variant:       "basic",
			Width:         64,
			Height:        64,
			TotalFrames:   4,
			DelayMS:       200,
			Easing:        "triangle",
			Amplitude:     2,
			Background:    palette.Basic["background"],
			Format:        "gif",
			OutputPath:    filepath.Join("public", "bunny.gif"),
			Preview:       true,
			PreviewDir:    "preview_frames",
			PreviewPrefix: "bunny_frame_",
			PreviewScale:  1,
			Workers:       1,
			SizeBudget:    DefaultSizeBudget,
		}, nil
	case "improved", "":
		return &Config{
			Variant:       "improved",
			Width:         64,
			Height:        64,
			TotalFrames:   6,
			DelayMS:       150,
			Easing:        "sine",
			Amplitude:     3,
			Transparent:   true,
			Expression:    sprite.ExpressionPlain,
			Format:        "gif",
			OutputPath:    filepath.Join("public", "bunny.gif"),
			Preview:       true,
			PreviewDir:    "preview_frames_improved",
			PreviewPrefix: "improved_bunny_frame_",
			PreviewScale:  1,
			Workers:       1,
			SizeBudget:    DefaultSizeBudget,
		}, nil
	default:
		return nil, fmt.Errorf("unknown variant: %s (want basic or improved)", name)
	}
}

// Load overlays the settings of a YAML (.yaml, .yml) or TOML (.toml) file
// onto cfg. Keys missing from the file keep their current value. A file that
// names a different variant starts over from that variant's preset.
func Load(path string, cfg *Config) error {
	return load(path, cfg, false)
}

// Overlay is like Load but keeps cfg's variant: a variant key in the file is
// ignored. It is used when the variant was chosen on the command line.
func Overlay(path string, cfg *Config) error {
	return load(path, cfg, true)
}

func load(path string, cfg *Config, keepVariant bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".toml":
		unmarshal = toml.Unmarshal
	default:
		return fmt.Errorf("%s: unsupported config format (want .yaml, .yml or .toml)", path)
	}

	var probe struct {
		Variant string `yaml:"variant" toml:"variant"`
	}
	if err := unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	variant := cfg.Variant
	if !keepVariant && probe.Variant != "" && !strings.EqualFold(probe.Variant, cfg.Variant) {
		preset, err := ForVariant(probe.Variant)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		preset.BuildVersion = cfg.BuildVersion
		*cfg = *preset
		variant = preset.Variant
	}

	if err := unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cfg.Variant = variant
	return nil
}

// Validate reports the first setting that cannot produce an animation.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	case c.TotalFrames <= 0:
		return fmt.Errorf("total frames must be positive, got %d", c.TotalFrames)
	case c.DelayMS < MinDelayMS:
		return fmt.Errorf("frame delay must be at least %dms, got %dms", MinDelayMS, c.DelayMS)
	case c.LoopCount < 0:
		return fmt.Errorf("loop count must not be negative, got %d", c.LoopCount)
	case c.Amplitude < 0:
		return fmt.Errorf("bounce amplitude must not be negative, got %v", c.Amplitude)
	case c.PreviewScale <= 0:
		return fmt.Errorf("preview scale must be positive, got %d", c.PreviewScale)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.OutputPath == "":
		return fmt.Errorf("output path is empty")
	case !c.Transparent && c.Background == "":
		return fmt.Errorf("background colour is required when transparent is false")
	}
	if _, err := easing.NewCurve(c.Easing); err != nil {
		return err
	}
	if _, err := sprite.NewLayout(c.Variant, c.Expression); err != nil {
		return err
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if !c.Transparent {
		if _, err := palette.Parse(map[string]string{"background": c.Background}); err != nil {
			return err
		}
	}
	return nil
}

// Colors returns the variant's built-in palette with the configured
// overrides applied.
func (c *Config) Colors() (palette.Palette, error) {
	base := palette.Improved
	if strings.EqualFold(c.Variant, "basic") {
		base = palette.Basic
	}
	return palette.Parse(palette.Merge(base, c.Palette))
}

// Synthesizer builds the frame synthesizer described by c.
func (c *Config) Synthesizer() (*sprite.Synthesizer, error) {
	layout, err := sprite.NewLayout(c.Variant, c.Expression)
	if err != nil {
		return nil, err
	}
	curve, err := easing.NewCurve(c.Easing)
	if err != nil {
		return nil, err
	}
	pal, err := c.Colors()
	if err != nil {
		return nil, err
	}

	opts := sprite.Options{
		Width:     c.Width,
		Height:    c.Height,
		Curve:     curve,
		Amplitude: c.Amplitude,
	}
	if !c.Transparent {
		if c.Background == "" {
			return nil, fmt.Errorf("background colour is required when transparent is false")
		}
		bg, err := palette.Parse(map[string]string{"background": c.Background})
		if err != nil {
			return nil, err
		}
		opts.Background = bg.Color("background")
	}
	return sprite.New(layout, pal, opts)
}
