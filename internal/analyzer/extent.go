// Package analyzer inspects rendered frames.
package analyzer

import (
	"image"
	"image/color"
)

// Background returns the colour of the top-left pixel, which the sprite
// layouts never draw on.
func Background(img image.Image) color.RGBA {
	b := img.Bounds()
	return color.RGBAModel.Convert(img.At(b.Min.X, b.Min.Y)).(color.RGBA)
}

// Extent returns the smallest rectangle holding every pixel of img that
// differs from bg. A frame with nothing drawn gives the empty rectangle.
func Extent(img image.Image, bg color.RGBA) image.Rectangle {
	bounds := img.Bounds()
	var r image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == bg {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

// TouchesEdge reports whether a non-empty r reaches the border of bounds,
// where drawing may have been clipped.
func TouchesEdge(r, bounds image.Rectangle) bool {
	if r.Empty() {
		return false
	}
	return r.Min.X <= bounds.Min.X || r.Min.Y <= bounds.Min.Y ||
		r.Max.X >= bounds.Max.X || r.Max.Y >= bounds.Max.Y
}
