package sprite

import (
	"github.com/ivlev/bunnygif/internal/palette"
	"github.com/ivlev/bunnygif/internal/raster"
)

// Basic is the blocky four-frame bunny drawn from rectangles on a sky
// background.
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) Anchor() int { return 35 }

func (Basic) Wiggle(index int) (ear, tail bool) {
	return index%2 == 0, index%2 == 1
}

func (Basic) Colors() []string {
	return []string{"body", "ear_inner", "eye", "nose", "mouth"}
}

func (Basic) Shapes(p Params, pal palette.Palette) []raster.Shape {
	var (
		body  = pal.Color("body")
		inner = pal.Color("ear_inner")
		eye   = pal.Color("eye")
		nose  = pal.Color("nose")
		mouth = pal.Color("mouth")
	)

	y := p.BaseY
	w := b2i(p.EarWiggle)
	earL := 25 + w
	earR := 34 - w
	earY := y - 21
	eyeY := y - 7
	noseY := y - 4
	mouthY := y - 2
	tailX := 42 + b2i(p.TailWiggle)
	tailY := y + 5
	footY := y + 18

	return []raster.Shape{
		// Body and head.
		raster.RectShape{X0: 20, Y0: y, X1: 44, Y1: y + 20, Color: body},
		raster.RectShape{X0: 24, Y0: y - 10, X1: 40, Y1: y + 2, Color: body},

		raster.RectShape{X0: earL, Y0: earY, X1: earL + 5, Y1: earY + 14, Color: body},
		raster.RectShape{X0: earR, Y0: earY, X1: earR + 5, Y1: earY + 14, Color: body},
		raster.RectShape{X0: earL + 1, Y0: earY + 2, X1: earL + 4, Y1: earY + 12, Color: inner},
		raster.RectShape{X0: earR + 1, Y0: earY + 2, X1: earR + 4, Y1: earY + 12, Color: inner},

		raster.RectShape{X0: 28, Y0: eyeY, X1: 30, Y1: eyeY + 2, Color: eye},
		raster.RectShape{X0: 34, Y0: eyeY, X1: 36, Y1: eyeY + 2, Color: eye},

		raster.RectShape{X0: 31, Y0: noseY, X1: 33, Y1: noseY + 1, Color: nose},

		raster.PointShape{X: 30, Y: mouthY, Color: mouth},
		raster.PointShape{X: 33, Y: mouthY, Color: mouth},

		raster.RectShape{X0: tailX, Y0: tailY, X1: tailX + 3, Y1: tailY + 3, Color: body},

		raster.RectShape{X0: 22, Y0: footY, X1: 26, Y1: footY + 3, Color: body},
		raster.RectShape{X0: 38, Y0: footY, X1: 42, Y1: footY + 3, Color: body},
	}
}
