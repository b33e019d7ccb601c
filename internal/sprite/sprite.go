// Package sprite synthesizes the frames of the bouncing bunny animation.
//
// A frame is a pure function of its index and the total frame count: the
// index gives a small set of animation parameters (bounce, wiggle flags) and
// the layout turns those into an ordered list of shapes painted onto a fresh
// canvas.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/bunnygif/internal/easing"
	"github.com/ivlev/bunnygif/internal/palette"
	"github.com/ivlev/bunnygif/internal/raster"
)

// ErrInvalidFrame is returned for a non-positive frame count or a frame index
// outside [0, total).
var ErrInvalidFrame = errors.New("invalid frame")

// Params are the per-frame animation parameters.
type Params struct {
	Index      int  `yaml:"index"`
	Bounce     int  `yaml:"bounce"`
	BaseY      int  `yaml:"base_y"`
	EarWiggle  bool `yaml:"ear_wiggle"`
	TailWiggle bool `yaml:"tail_wiggle"`
}

// Derive computes the animation parameters of frame index for layout l.
func Derive(l Layout, index, total int, curve easing.Curve, amplitude float64) Params {
	bounce := curve(index, total, amplitude)
	ear, tail := l.Wiggle(index)
	return Params{
		Index:      index,
		Bounce:     bounce,
		BaseY:      l.Anchor() - bounce,
		EarWiggle:  ear,
		TailWiggle: tail,
	}
}

// Options configures a Synthesizer.
type Options struct {
	Width, Height int

	// Background fills the canvas before drawing. The zero
	// value leaves the canvas fully transparent.
	Background color.RGBA

	Curve     easing.Curve
	Amplitude float64
}

// Synthesizer draws frames for one layout, palette and set of options.
type Synthesizer struct {
	layout  Layout
	palette palette.Palette
	opts    Options
}

// New returns a Synthesizer. The palette must hold every colour the layout
// draws with.
func New(l Layout, pal palette.Palette, opts Options) (*Synthesizer, error) {
	if l == nil {
		return nil, errors.New("nil layout")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size: %dx%d", opts.Width, opts.Height)
	}
	if opts.Amplitude < 0 {
		return nil, fmt.Errorf("negative bounce amplitude: %v", opts.Amplitude)
	}
	if err := pal.Require(l.Colors()...); err != nil {
		return nil, fmt.Errorf("%s layout: %w", l.Name(), err)
	}
	if opts.Curve == nil {
		opts.Curve = easing.Sine
	}
	return &Synthesizer{layout: l, palette: pal, opts: opts}, nil
}

// Layout returns the synthesizer's layout.
func (s *Synthesizer) Layout() Layout { return s.layout }

// Size returns the frame dimensions.
func (s *Synthesizer) Size() (width, height int) { return s.opts.Width, s.opts.Height }

// Params returns the animation parameters of frame index of total.
func (s *Synthesizer) Params(index, total int) (Params, error) {
	if total <= 0 {
		return Params{}, fmt.Errorf("%w: total frames must be positive, got %d", ErrInvalidFrame, total)
	}
	if index < 0 || index >= total {
		return Params{}, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidFrame, index, total)
	}
	return Derive(s.layout, index, total, s.opts.Curve, s.opts.Amplitude), nil
}

// Shapes returns the ordered draw list of frame index of total.
func (s *Synthesizer) Shapes(index, total int) ([]raster.Shape, error) {
	p, err := s.Params(index, total)
	if err != nil {
		return nil, err
	}
	return s.layout.Shapes(p, s.palette), nil
}

// Frame renders frame index of total. The same arguments always give the
// same pixels.
func (s *Synthesizer) Frame(index, total int) (*image.RGBA, error) {
	shapes, err := s.Shapes(index, total)
	if err != nil {
		return nil, err
	}
	c := raster.NewCanvas(s.opts.Width, s.opts.Height, s.opts.Background)
	raster.Paint(c, shapes)
	return c.Image(), nil
}
