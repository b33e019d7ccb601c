// Package easing maps a frame position onto a vertical bounce offset.
package easing

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// Curve returns the bounce offset in pixels for frame index of total, never
// outside [0, amplitude].
type Curve func(index, total int, amplitude float64) int

// Triangle is a piecewise-linear bounce: highest at the first frame, zero at
// the midpoint frame. The result is truncated toward zero.
func Triangle(index, total int, amplitude float64) int {
	if total <= 0 {
		return 0
	}
	half := float64(total) / 2
	return int(amplitude * math.Abs(float64(index)-half) / half)
}

// Sine is a smooth bounce following |sin| over the cycle, rounded to the
// nearest pixel. It hops twice per cycle.
func Sine(index, total int, amplitude float64) int {
	if total <= 0 {
		return 0
	}
	phase := 2 * math.Pi * float64(index) / float64(total)
	return int(math.Round(amplitude * math.Abs(math.Sin(phase))))
}

// shaped builds a two-hop curve whose rise and fall follow fn.
func shaped(fn func(float64) float64) Curve {
	return func(index, total int, amplitude float64) int {
		if total <= 0 {
			return 0
		}
		hop := math.Mod(2*float64(index)/float64(total), 1)
		t := 1 - math.Abs(2*hop-1)
		return int(math.Round(amplitude * clamp(fn(t))))
	}
}

var (
	OutQuad  = shaped(ease.OutQuad)
	OutCubic = shaped(ease.OutCubic)
	OutCirc  = shaped(ease.OutCirc)
)

// Names lists the registered curve names.
var Names = []string{"triangle", "sine", "outquad", "outcubic", "outcirc"}

// NewCurve returns the curve registered under name.
func NewCurve(name string) (Curve, error) {
	switch strings.ToLower(name) {
	case "triangle":
		return Triangle, nil
	case "sine", "":
		return Sine, nil
	case "outquad":
		return OutQuad, nil
	case "outcubic":
		return OutCubic, nil
	case "outcirc":
		return OutCirc, nil
	default:
		return nil, fmt.Errorf("unknown easing curve: %s (want one of %s)", name, strings.Join(Names, ", "))
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
