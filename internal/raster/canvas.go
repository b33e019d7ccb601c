// Package raster provides a small pixel canvas with hard-edged shape
// primitives. Coordinates are inclusive on both ends and every draw call
// overwrites the pixels it covers.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is a fixed-size RGBA pixel grid mutated in place by draw calls.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a width×height canvas filled with bg. A zero bg gives a
// fully transparent canvas.
func NewCanvas(width, height int, bg color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != (color.RGBA{}) {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}
	return &Canvas{img: img}
}

// Image returns the backing image. The canvas must not be drawn on after the
// image has been handed off as a frame.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Point sets a single pixel.
func (c *Canvas) Point(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// Rect fills the rectangle with corners (x0, y0) and (x1, y1).
func (c *Canvas) Rect(x0, y0, x1, y1 int, col color.RGBA) {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// Ellipse fills the ellipse inscribed in the bounding box (x0, y0)-(x1, y1).
func (c *Canvas) Ellipse(x0, y0, x1, y1 int, col color.RGBA) {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)

	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	// Half a pixel of slack so the box edges themselves are reachable.
	rx := float64(x1-x0)/2 + 0.5
	ry := float64(y1-y0)/2 + 0.5

	for y := y0; y <= y1; y++ {
		dy := (float64(y) - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.Point(x, y, col)
			}
		}
	}
}

// Polygon fills the closed polygon through pts, including its outline.
func (c *Canvas) Polygon(pts []image.Point, col color.RGBA) {
	switch len(pts) {
	case 0:
		return
	case 1:
		c.Point(pts[0].X, pts[0].Y, col)
		return
	case 2:
		c.Line(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, col)
		return
	}

	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	// Vertices address pixel centres.
	z.MoveTo(float32(pts[0].X)+0.5, float32(pts[0].Y)+0.5)
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X)+0.5, float32(p.Y)+0.5)
	}
	z.ClosePath()

	mask := image.NewAlpha(b)
	z.Draw(mask, b, image.Opaque, image.Point{})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				c.img.SetRGBA(x, y, col)
			}
		}
	}

	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c.Line(p.X, p.Y, q.X, q.Y, col)
	}
}

// Line draws a one pixel wide segment from (x0, y0) to (x1, y1).
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Point(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Arc draws a one pixel wide elliptical arc inside the bounding box
// (x0, y0)-(x1, y1) from start to end degrees. Zero degrees is at three
// o'clock and angles grow clockwise.
func (c *Canvas) Arc(x0, y0, x1, y1 int, start, end float64, col color.RGBA) {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	for end < start {
		end += 360
	}

	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := float64(x1-x0) / 2
	ry := float64(y1-y0) / 2

	step := 1 / (4 * math.Max(1, math.Max(rx, ry)))
	from := start * math.Pi / 180
	to := end * math.Pi / 180
	for a := from; ; a += step {
		if a > to {
			a = to
		}
		x := int(math.Round(cx + rx*math.Cos(a)))
		y := int(math.Round(cy + ry*math.Sin(a)))
		c.Point(x, y, col)
		if a == to {
			return
		}
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
