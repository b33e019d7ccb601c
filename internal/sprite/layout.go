package sprite

import (
	"fmt"
	"strings"

	"github.com/ivlev/bunnygif/internal/palette"
	"github.com/ivlev/bunnygif/internal/raster"
)

// Layout describes one drawing of the bunny.
type Layout interface {
	// Name is the variant name of the layout.
	Name() string

	// Anchor is the body's vertical position with no bounce.
	Anchor() int

	// Wiggle reports whether the ears and the tail are
	// shifted by a pixel in frame index.
	Wiggle(index int) (ear, tail bool)

	// Colors lists the palette names the layout draws with.
	Colors() []string

	// Shapes returns the ordered draw list for p.
	Shapes(p Params, pal palette.Palette) []raster.Shape
}

// Expressions supported by the improved layout.
const (
	ExpressionPlain = "plain"
	ExpressionSmile = "smile"
)

// NewLayout returns the layout registered for variant. The expression is only
// meaningful for the improved layout.
func NewLayout(variant, expression string) (Layout, error) {
	switch strings.ToLower(expression) {
	case "", ExpressionPlain, ExpressionSmile:
	default:
		return nil, fmt.Errorf("unknown expression: %s", expression)
	}

	switch strings.ToLower(variant) {
	case "basic":
		return Basic{}, nil
	case "improved", "":
		return Improved{Smile: strings.EqualFold(expression, ExpressionSmile)}, nil
	default:
		return nil, fmt.Errorf("unknown variant: %s", variant)
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
