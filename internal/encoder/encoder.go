// Package encoder writes an ordered sequence of frames into a single looping
// animated image file.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
)

var (
	// ErrMissingDependency is returned when the encoder for a format is
	// not available in this build.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrWriteFailed wraps every other failure to encode or persist the
	// container.
	ErrWriteFailed = errors.New("encode/write failed")
)

// Options controls the container written by an Encoder.
type Options struct {
	// DelayMS is the display time of each frame in milliseconds.
	DelayMS int

	// LoopCount is the number of times the animation repeats.
	// 0 loops forever.
	LoopCount int

	// Transparent reserves a single transparent colour shared
	// by all frames. Pixels with alpha below one half map to it.
	Transparent bool
}

// Encoder encodes frames, in order, into the file at path and returns the
// number of bytes written.
type Encoder interface {
	Encode(ctx context.Context, frames []image.Image, path string, opts Options) (int64, error)
}

// dependency names the library a format needs and how to get it.
type dependency struct {
	library string
	install string
}

var unavailable = map[string]dependency{
	"webp": {library: "github.com/chai2010/webp", install: "go get github.com/chai2010/webp (requires cgo and libwebp)"},
	"apng": {library: "github.com/setanarut/apng", install: "go get github.com/setanarut/apng"},
}

// New returns the encoder registered for format. Formats whose encoder
// library is not compiled in give an error wrapping ErrMissingDependency.
func New(format string) (Encoder, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch f {
	case "gif", "":
		return &GIFEncoder{}, nil
	}
	if dep, ok := unavailable[f]; ok {
		return nil, fmt.Errorf("%w: %s output requires %s; install with: %s", ErrMissingDependency, f, dep.library, dep.install)
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}
