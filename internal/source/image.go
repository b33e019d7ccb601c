package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// ImageSource reads frames from image files, so a directory of previously
// dumped previews can be assembled again.
type ImageSource struct {
	root  string
	paths []string
}

// NewImageSource accepts a single PNG/JPEG file or a directory of them.
// Directory entries are ordered naturally, so frame_10 follows frame_9.
func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := strings.ToLower(filepath.Ext(entry.Name()))
				if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
					paths = append(paths, filepath.Join(path, entry.Name()))
				}
			}
		}
		sort.Slice(paths, func(i, j int) bool {
			return natural.Less(filepath.Base(paths[i]), filepath.Base(paths[j]))
		})
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PNG or JPEG frames in %s", path)
	}
	return &ImageSource{root: path, paths: paths}, nil
}

func (s *ImageSource) FrameCount() int {
	return len(s.paths)
}

// FrameDimensions reports the size of the first frame.
func (s *ImageSource) FrameDimensions() (int, int, error) {
	f, err := os.Open(s.paths[0])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", s.paths[0], err)
	}
	return cfg.Width, cfg.Height, nil
}

func (s *ImageSource) RenderFrame(index int) (image.Image, error) {
	if index < 0 || index >= len(s.paths) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, len(s.paths))
	}
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) String() string {
	return fmt.Sprintf("%d image files from %s", len(s.paths), s.root)
}

func (s *ImageSource) Close() error {
	return nil
}
