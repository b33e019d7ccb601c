// Package source provides the frames an animation is assembled from.
package source

import (
	"fmt"
	"image"

	"github.com/ivlev/bunnygif/internal/sprite"
)

// Source is an ordered, random-access sequence of equally sized frames.
type Source interface {
	FrameCount() int
	FrameDimensions() (width, height int, err error)
	RenderFrame(index int) (image.Image, error)
	Close() error
}

// SpriteSource synthesizes its frames on demand.
type SpriteSource struct {
	synth *sprite.Synthesizer
	total int
}

func NewSpriteSource(synth *sprite.Synthesizer, total int) (*SpriteSource, error) {
	if synth == nil {
		return nil, fmt.Errorf("nil synthesizer")
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total frames must be positive, got %d", sprite.ErrInvalidFrame, total)
	}
	return &SpriteSource{synth: synth, total: total}, nil
}

func (s *SpriteSource) String() string {
	return s.synth.Layout().Name() + " sprite"
}

func (s *SpriteSource) FrameCount() int {
	return s.total
}

func (s *SpriteSource) FrameDimensions() (int, int, error) {
	w, h := s.synth.Size()
	return w, h, nil
}

func (s *SpriteSource) RenderFrame(index int) (image.Image, error) {
	return s.synth.Frame(index, s.total)
}

// Params returns the animation parameters of every frame, in order.
func (s *SpriteSource) Params() []sprite.Params {
	params := make([]sprite.Params, s.total)
	for i := range params {
		// The index is always in range here.
		params[i], _ = s.synth.Params(i, s.total)
	}
	return params
}

func (s *SpriteSource) Close() error {
	return nil
}
