// Package palette holds the named colour tables used to draw the sprite.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps a semantic name (body, ear, eye, ...) to an opaque colour.
type Palette map[string]color.RGBA

// Basic is the colour table of the four-frame sprite.
var Basic = map[string]string{
	"background": "#87CEEB",
	"body":       "#FFFFFF",
	"ear_inner":  "#FFB6C1",
	"eye":        "#000000",
	"nose":       "#FF69B4",
	"mouth":      "#000000",
}

// Improved is the colour table of the six-frame sprite.
var Improved = map[string]string{
	"body":      "#F5F5F5",
	"ear":       "#F0F0F0",
	"ear_inner": "#FFB6C1",
	"eye":       "#2C2C2C",
	"highlight": "#FFFFFF",
	"nose":      "#FF69B4",
	"mouth":     "#8B4513",
	"whisker":   "#696969",
	"paw":       "#E8E8E8",
	"shadow":    "#D3D3D3",
}

// Parse converts a table of hex colours ("#RRGGBB") into a Palette.
func Parse(table map[string]string) (Palette, error) {
	p := make(Palette, len(table))
	for name, hex := range table {
		c, err := colorful.Hex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: invalid colour %q: %w", name, hex, err)
		}
		r, g, b := c.RGB255()
		p[name] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return p, nil
}

// Merge returns a copy of base with the entries of override replacing or
// extending it.
func Merge(base, override map[string]string) map[string]string {
	m := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range override {
		m[k] = v
	}
	return m
}

// Color returns the named colour. Missing names give the zero colour, which
// draws as transparent; use Require to reject them up front.
func (p Palette) Color(name string) color.RGBA {
	return p[name]
}

// Require returns an error listing every name missing from p.
func (p Palette) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := p[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) != 0 {
		sort.Strings(missing)
		return fmt.Errorf("palette is missing colours: %s", strings.Join(missing, ", "))
	}
	return nil
}
