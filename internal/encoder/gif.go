package encoder

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/image/draw"
)

// GIFEncoder writes animated GIFs with one global colour table.
type GIFEncoder struct{}

// Encode implements the Encoder interface. The destination directory is
// created if needed. A partially written file is left in place on failure.
func (e *GIFEncoder) Encode(ctx context.Context, frames []image.Image, path string, opts Options) (int64, error) {
	g, err := Assemble(frames, opts)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("%w: create directory %s: %w", ErrWriteFailed, dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	w := bufio.NewWriter(f)
	if err := gif.EncodeAll(w, g); err != nil {
		f.Close()
		return 0, fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return 0, fmt.Errorf("%w: write %s: %w", ErrWriteFailed, path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("%w: close %s: %w", ErrWriteFailed, path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return fi.Size(), nil
}

// Assemble converts frames into a GIF sharing a single palette. All frames
// must have the same size; each is placed at the origin of the logical
// screen.
func Assemble(frames []image.Image, opts Options) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to encode")
	}
	size := frames[0].Bounds().Size()
	for i, f := range frames[1:] {
		if s := f.Bounds().Size(); s != size {
			return nil, fmt.Errorf("mismatched frame size at %d: %v != %v", i+1, s, size)
		}
	}
	if opts.DelayMS < 0 {
		return nil, fmt.Errorf("negative frame delay: %dms", opts.DelayMS)
	}

	pal, exact := BuildPalette(frames, opts.Transparent)
	var index map[color.RGBA]uint8
	if exact {
		index = make(map[color.RGBA]uint8, len(pal))
		for i, c := range pal {
			index[c.(color.RGBA)] = uint8(i)
		}
	}

	rect := image.Rectangle{Max: size}
	delay := int(math.Round(float64(opts.DelayMS) / 10))
	if delay == 0 && opts.DelayMS > 0 {
		// A zero delay is played at a browser-chosen rate.
		delay = 1
	}
	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: opts.LoopCount,
		Config: image.Config{
			ColorModel: pal,
			Width:      size.X,
			Height:     size.Y,
		},
	}
	if opts.Transparent {
		// Every frame replaces the whole screen, so transparent
		// pixels must not show the previous frame through.
		g.Disposal = make([]byte, len(frames))
		for i := range g.Disposal {
			g.Disposal[i] = gif.DisposalBackground
		}
		g.BackgroundIndex = 0
	}

	for i, f := range frames {
		pm := image.NewPaletted(rect, pal)
		off := f.Bounds().Min
		if exact {
			for y := 0; y < size.Y; y++ {
				for x := 0; x < size.X; x++ {
					c := flatten(rgbaAt(f, off.X+x, off.Y+y), opts.Transparent)
					pm.SetColorIndex(x, y, index[c])
				}
			}
		} else {
			draw.FloydSteinberg.Draw(pm, rect, f, off)
		}
		g.Image[i] = pm
		g.Delay[i] = delay
	}
	return g, nil
}

// BuildPalette returns the palette shared by all frames. With transparency
// on, index 0 is the transparent colour. The palette is exact when the
// frames use at most 256 distinct colours; otherwise it falls back to the
// web-safe palette and exact is false.
func BuildPalette(frames []image.Image, transparent bool) (pal color.Palette, exact bool) {
	seen := make(map[color.RGBA]struct{})
	for _, f := range frames {
		b := f.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := flatten(rgbaAt(f, x, y), transparent)
				if c.A == 0 {
					continue
				}
				seen[c] = struct{}{}
			}
		}
	}

	colors := make([]color.RGBA, 0, len(seen))
	for c := range seen {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		return pack(colors[i]) < pack(colors[j])
	})

	if transparent {
		pal = append(pal, color.RGBA{})
	}
	if len(pal)+len(colors) > 256 {
		return append(pal, palette.WebSafe...), false
	}
	for _, c := range colors {
		pal = append(pal, c)
	}
	return pal, true
}

// flatten reduces c to either the transparent colour or an opaque colour.
// Without transparency the alpha channel is dropped.
func flatten(c color.RGBA, transparent bool) color.RGBA {
	if transparent && c.A < 0x80 {
		return color.RGBA{}
	}
	if c.A == 0xff {
		return c
	}
	if c.A == 0 {
		return color.RGBA{A: 0xff}
	}
	// Undo the premultiplication.
	return color.RGBA{
		R: uint8(uint32(c.R) * 0xff / uint32(c.A)),
		G: uint8(uint32(c.G) * 0xff / uint32(c.A)),
		B: uint8(uint32(c.B) * 0xff / uint32(c.A)),
		A: 0xff,
	}
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func pack(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
