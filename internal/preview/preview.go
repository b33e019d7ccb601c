// Package preview writes each frame of an animation to its own PNG file for
// inspection.
package preview

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/bunnygif/internal/source"
)

// Options controls where and how previews are written.
type Options struct {
	Dir    string
	Prefix string

	// Scale is an integer nearest-neighbour upscale factor.
	// Values below 2 keep the native size.
	Scale int

	// Workers bounds the number of frames rendered and written
	// at once. Values below 2 write sequentially.
	Workers int
}

// FramePath returns the file name of frame index. Preview files are
// numbered from 1.
func FramePath(dir, prefix string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d.png", prefix, index+1))
}

// Dump renders every frame of src again and writes it as PNG. It returns the
// written paths in frame order. The first failure stops the dump; files
// already written are kept.
func Dump(ctx context.Context, src source.Source, opts Options) ([]string, error) {
	n := src.FrameCount()
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create preview directory: %w", err)
	}

	paths := make([]string, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderFrame(i)
			if err != nil {
				return fmt.Errorf("render frame %d: %w", i+1, err)
			}
			path := FramePath(opts.Dir, opts.Prefix, i)
			if err := writePNG(path, Upscale(img, opts.Scale)); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
