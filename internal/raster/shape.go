package raster

import (
	"image"
	"image/color"
)

// Shape is a draw operation that can be replayed onto a canvas.
type Shape interface {
	Draw(c *Canvas)
}

// Paint draws shapes onto c in order; later shapes overpaint earlier ones.
func Paint(c *Canvas, shapes []Shape) {
	for _, s := range shapes {
		s.Draw(c)
	}
}

// RectShape is a filled rectangle.
type RectShape struct {
	X0, Y0, X1, Y1 int
	Color          color.RGBA
}

func (s RectShape) Draw(c *Canvas) { c.Rect(s.X0, s.Y0, s.X1, s.Y1, s.Color) }

// EllipseShape is a filled ellipse given by its bounding box.
type EllipseShape struct {
	X0, Y0, X1, Y1 int
	Color          color.RGBA
}

func (s EllipseShape) Draw(c *Canvas) { c.Ellipse(s.X0, s.Y0, s.X1, s.Y1, s.Color) }

// PolygonShape is a filled polygon.
type PolygonShape struct {
	Points []image.Point
	Color  color.RGBA
}

func (s PolygonShape) Draw(c *Canvas) { c.Polygon(s.Points, s.Color) }

// LineShape is a one pixel wide segment.
type LineShape struct {
	X0, Y0, X1, Y1 int
	Color          color.RGBA
}

func (s LineShape) Draw(c *Canvas) { c.Line(s.X0, s.Y0, s.X1, s.Y1, s.Color) }

// PointShape is a single pixel.
type PointShape struct {
	X, Y  int
	Color color.RGBA
}

func (s PointShape) Draw(c *Canvas) { c.Point(s.X, s.Y, s.Color) }

// ArcShape is an elliptical arc outline.
type ArcShape struct {
	X0, Y0, X1, Y1 int
	Start, End     float64
	Color          color.RGBA
}

func (s ArcShape) Draw(c *Canvas) { c.Arc(s.X0, s.Y0, s.X1, s.Y1, s.Start, s.End, s.Color) }
