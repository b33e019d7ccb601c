package raster

import (
	"image"
	"image/color"
	"testing"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewCanvasBackground(t *testing.T) {
	sky := color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	c := NewCanvas(64, 64, sky)
	if got := countColor(c.Image(), sky); got != 64*64 {
		t.Errorf("Expected %d background pixels, got %d", 64*64, got)
	}

	clear := NewCanvas(8, 8, color.RGBA{})
	for i, v := range clear.Image().Pix {
		if v != 0 {
			t.Fatalf("Expected transparent canvas, byte %d is %d", i, v)
		}
	}
}

func TestRectInclusive(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	c.Rect(4, 5, 2, 3, red)

	img := c.Image()
	if got := countColor(img, red); got != 9 {
		t.Errorf("Expected 9 filled pixels, got %d", got)
	}
	for _, p := range []image.Point{{2, 3}, {4, 5}, {3, 4}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("Expected %v to be filled", p)
		}
	}
	for _, p := range []image.Point{{5, 5}, {4, 6}, {1, 3}} {
		if img.RGBAAt(p.X, p.Y) == red {
			t.Errorf("Expected %v to be empty", p)
		}
	}
}

func TestRectClipped(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	c.Rect(-5, -5, 100, 1, red)
	if got := countColor(c.Image(), red); got != 20 {
		t.Errorf("Expected 20 filled pixels, got %d", got)
	}
	c.Rect(20, 20, 30, 30, blue)
	if got := countColor(c.Image(), blue); got != 0 {
		t.Errorf("Expected off-canvas rect to draw nothing, got %d pixels", got)
	}
}

func TestEllipse(t *testing.T) {
	c := NewCanvas(12, 12, color.RGBA{})
	c.Ellipse(2, 2, 8, 8, red)
	img := c.Image()

	for _, p := range []image.Point{{5, 5}, {2, 5}, {8, 5}, {5, 2}, {5, 8}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("Expected %v to be filled", p)
		}
	}
	for _, p := range []image.Point{{2, 2}, {8, 8}, {2, 8}, {8, 2}} {
		if img.RGBAAt(p.X, p.Y) == red {
			t.Errorf("Expected corner %v to be empty", p)
		}
	}
	box := image.Rect(2, 2, 9, 9)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == red && !(image.Point{X: x, Y: y}).In(box) {
				t.Errorf("Pixel (%d,%d) outside the bounding box", x, y)
			}
		}
	}
}

func TestEllipseSinglePixel(t *testing.T) {
	c := NewCanvas(6, 6, color.RGBA{})
	c.Ellipse(3, 3, 3, 3, red)
	if got := countColor(c.Image(), red); got != 1 {
		t.Errorf("Expected 1 pixel, got %d", got)
	}
	c.Ellipse(0, 0, 1, 1, blue)
	if got := countColor(c.Image(), blue); got != 4 {
		t.Errorf("Expected 4 pixels for a 2x2 box, got %d", got)
	}
}

func TestLine(t *testing.T) {
	c := NewCanvas(8, 8, color.RGBA{})
	c.Line(0, 0, 3, 0, red)
	if got := countColor(c.Image(), red); got != 4 {
		t.Errorf("Expected 4 pixels on a horizontal line, got %d", got)
	}

	c.Line(7, 7, 4, 4, blue)
	for i := 4; i <= 7; i++ {
		if c.Image().RGBAAt(i, i) != blue {
			t.Errorf("Expected diagonal pixel (%d,%d) to be set", i, i)
		}
	}
	if got := countColor(c.Image(), blue); got != 4 {
		t.Errorf("Expected 4 pixels on the diagonal, got %d", got)
	}
}

func TestPolygon(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	c.Polygon([]image.Point{{1, 1}, {8, 1}, {1, 8}}, red)
	img := c.Image()

	for _, p := range []image.Point{{1, 1}, {8, 1}, {1, 8}, {2, 2}, {4, 4}, {3, 6}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("Expected %v to be filled", p)
		}
	}
	for _, p := range []image.Point{{7, 7}, {8, 8}, {0, 0}, {9, 1}} {
		if img.RGBAAt(p.X, p.Y) == red {
			t.Errorf("Expected %v to be empty", p)
		}
	}
}

func TestPolygonDegenerate(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	c.Polygon(nil, red)
	c.Polygon([]image.Point{{2, 2}}, red)
	c.Polygon([]image.Point{{4, 4}, {6, 4}}, red)
	if got := countColor(c.Image(), red); got != 4 {
		t.Errorf("Expected 4 pixels, got %d", got)
	}
}

func TestArc(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	c.Arc(0, 0, 8, 8, 0, 180, red)
	img := c.Image()

	for _, p := range []image.Point{{8, 4}, {4, 8}, {0, 4}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Errorf("Expected %v on the arc", p)
		}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			if img.RGBAAt(x, y) == red {
				t.Errorf("Unexpected pixel (%d,%d) above the arc's chord", x, y)
			}
		}
	}
}

func TestPaintOrder(t *testing.T) {
	c := NewCanvas(10, 10, color.RGBA{})
	Paint(c, []Shape{
		RectShape{X0: 0, Y0: 0, X1: 9, Y1: 9, Color: red},
		RectShape{X0: 2, Y0: 2, X1: 3, Y1: 3, Color: blue},
		PointShape{X: 9, Y: 9, Color: blue},
	})
	img := c.Image()
	if img.RGBAAt(2, 2) != blue || img.RGBAAt(3, 3) != blue {
		t.Error("Expected later shape to overpaint earlier one")
	}
	if got := countColor(img, red); got != 100-5 {
		t.Errorf("Expected %d red pixels, got %d", 95, got)
	}
}
