package sprite

import (
	"image"

	"github.com/ivlev/bunnygif/internal/palette"
	"github.com/ivlev/bunnygif/internal/raster"
)

// Improved is the rounder six-frame bunny with whiskers, paws and a ground
// shadow, drawn on a transparent background.
type Improved struct {
	// Smile swaps the round nose and two-dot mouth
	// for a heart-shaped nose and an arc smile.
	Smile bool
}

func (Improved) Name() string { return "improved" }

func (Improved) Anchor() int { return 32 }

func (Improved) Wiggle(index int) (ear, tail bool) {
	return index%3 == 0, (index+1)%2 == 0
}

func (Improved) Colors() []string {
	return []string{"body", "ear", "ear_inner", "eye", "highlight", "nose", "mouth", "whisker", "paw", "shadow"}
}

func (l Improved) Shapes(p Params, pal palette.Palette) []raster.Shape {
	var (
		body      = pal.Color("body")
		ear       = pal.Color("ear")
		inner     = pal.Color("ear_inner")
		eye       = pal.Color("eye")
		highlight = pal.Color("highlight")
		nose      = pal.Color("nose")
		mouth     = pal.Color("mouth")
		whisker   = pal.Color("whisker")
		paw       = pal.Color("paw")
		shadow    = pal.Color("shadow")
	)

	b := p.BaseY
	w := b2i(p.EarWiggle)
	earL := 28 + w
	earR := 34 - w
	tailX := 42 + b2i(p.TailWiggle)
	tailY := b + 15

	shapes := []raster.Shape{
		raster.EllipseShape{X0: 22, Y0: b + 8, X1: 42, Y1: b + 28, Color: body},
		raster.EllipseShape{X0: 26, Y0: b - 2, X1: 38, Y1: b + 10, Color: body},

		// Ears: tip, outer edge, inner edge, base.
		raster.PolygonShape{Points: []image.Point{
			{earL, b - 12}, {earL + 2, b - 15}, {earL + 4, b - 12}, {earL + 3, b - 2},
		}, Color: ear},
		raster.PolygonShape{Points: []image.Point{
			{earR, b - 12}, {earR - 2, b - 15}, {earR - 4, b - 12}, {earR - 3, b - 2},
		}, Color: ear},
		raster.EllipseShape{X0: earL + 1, Y0: b - 10, X1: earL + 3, Y1: b - 4, Color: inner},
		raster.EllipseShape{X0: earR - 3, Y0: b - 10, X1: earR - 1, Y1: b - 4, Color: inner},

		raster.EllipseShape{X0: 29, Y0: b + 2, X1: 32, Y1: b + 5, Color: eye},
		raster.EllipseShape{X0: 30, Y0: b + 2, X1: 31, Y1: b + 3, Color: highlight},
		raster.EllipseShape{X0: 32, Y0: b + 2, X1: 35, Y1: b + 5, Color: eye},
		raster.EllipseShape{X0: 33, Y0: b + 2, X1: 34, Y1: b + 3, Color: highlight},
	}

	if l.Smile {
		shapes = append(shapes,
			raster.PolygonShape{Points: []image.Point{
				{32, b + 6}, {31, b + 5}, {30, b + 5}, {31, b + 4},
				{32, b + 5}, {33, b + 4}, {34, b + 5}, {33, b + 5},
			}, Color: nose},
			raster.ArcShape{X0: 30, Y0: b + 6, X1: 34, Y1: b + 9, Start: 0, End: 180, Color: mouth},
		)
	} else {
		shapes = append(shapes,
			raster.EllipseShape{X0: 31, Y0: b + 5, X1: 33, Y1: b + 7, Color: nose},
			raster.PointShape{X: 30, Y: b + 8, Color: mouth},
			raster.PointShape{X: 34, Y: b + 8, Color: mouth},
		)
	}

	return append(shapes,
		raster.LineShape{X0: 25, Y0: b + 6, X1: 28, Y1: b + 6, Color: whisker},
		raster.LineShape{X0: 25, Y0: b + 7, X1: 28, Y1: b + 7, Color: whisker},
		raster.LineShape{X0: 36, Y0: b + 6, X1: 39, Y1: b + 6, Color: whisker},
		raster.LineShape{X0: 36, Y0: b + 7, X1: 39, Y1: b + 7, Color: whisker},

		// Front paws, back legs, back paws.
		raster.EllipseShape{X0: 28, Y0: b + 18, X1: 31, Y1: b + 21, Color: paw},
		raster.EllipseShape{X0: 33, Y0: b + 18, X1: 36, Y1: b + 21, Color: paw},
		raster.EllipseShape{X0: 24, Y0: b + 22, X1: 28, Y1: b + 26, Color: body},
		raster.EllipseShape{X0: 36, Y0: b + 22, X1: 40, Y1: b + 26, Color: body},
		raster.EllipseShape{X0: 24, Y0: b + 24, X1: 27, Y1: b + 27, Color: paw},
		raster.EllipseShape{X0: 37, Y0: b + 24, X1: 40, Y1: b + 27, Color: paw},

		raster.EllipseShape{X0: tailX, Y0: tailY, X1: tailX + 4, Y1: tailY + 4, Color: body},

		raster.EllipseShape{X0: 23, Y0: b + 26, X1: 41, Y1: b + 29, Color: shadow},
	)
}
