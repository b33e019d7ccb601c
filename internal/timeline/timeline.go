// Package timeline records the per-frame animation parameters of a run as a
// YAML manifest.
package timeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/bunnygif/internal/sprite"
)

const Version = "1.0"

// Timeline represents a complete animation: its variant, timing and the
// parameters every frame was drawn with.
type Timeline struct {
	Version string  `yaml:"version"`
	Variant string  `yaml:"variant"`
	Easing  string  `yaml:"easing,omitempty"`
	DelayMS int     `yaml:"delay_ms"`
	Frames  []Frame `yaml:"frames"`
}

// Frame is a single frame of the timeline.
type Frame struct {
	sprite.Params `yaml:",inline"`

	Start  int       `yaml:"start_ms"`         // Offset from the start of the loop
	Extent Rectangle `yaml:"extent,omitempty"` // Drawn area of the frame
}

// Rectangle represents a bounding box
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func FromRect(r image.Rectangle) Rectangle {
	return Rectangle{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// SetExtents records the drawn area of each frame, in order.
func (t *Timeline) SetExtents(extents []image.Rectangle) {
	for i := range min(len(extents), len(t.Frames)) {
		t.Frames[i].Extent = FromRect(extents[i])
	}
}

// Build lays out params one after the other, delayMS apart.
func Build(variant string, params []sprite.Params, delayMS int) *Timeline {
	t := &Timeline{
		Version: Version,
		Variant: variant,
		DelayMS: delayMS,
		Frames:  make([]Frame, len(params)),
	}
	for i, p := range params {
		t.Frames[i] = Frame{Params: p, Start: i * delayMS}
	}
	return t
}

// Duration returns the length of one loop in milliseconds.
func (t *Timeline) Duration() int {
	return len(t.Frames) * t.DelayMS
}

// Write writes a timeline to a YAML file, creating its directory.
func Write(t *Timeline, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read reads a timeline from a YAML file.
func Read(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Timeline
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Version != Version {
		return nil, fmt.Errorf("%s: unsupported timeline version %q", path, t.Version)
	}

	return &t, nil
}
