package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/bunnygif/internal/config"
	"github.com/ivlev/bunnygif/internal/encoder"
	"github.com/ivlev/bunnygif/internal/source"
	"github.com/ivlev/bunnygif/internal/timeline"
)

// recorder keeps the frames it is asked to encode.
type recorder struct {
	frames []image.Image
	opts   encoder.Options
	err    error
}

func (r *recorder) Encode(_ context.Context, frames []image.Image, _ string, opts encoder.Options) (int64, error) {
	r.frames, r.opts = frames, opts
	if r.err != nil {
		return 0, r.err
	}
	return 1234, nil
}

func newProject(t *testing.T, variant string, enc encoder.Encoder) (*Project, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.ForVariant(variant)
	if err != nil {
		t.Fatalf("ForVariant failed: %v", err)
	}
	cfg.OutputPath = filepath.Join(dir, "public", "bunny.gif")
	cfg.PreviewDir = filepath.Join(dir, cfg.PreviewDir)
	cfg.BuildVersion = "test"

	synth, err := cfg.Synthesizer()
	if err != nil {
		t.Fatalf("Synthesizer failed: %v", err)
	}
	src, err := source.NewSpriteSource(synth, cfg.TotalFrames)
	if err != nil {
		t.Fatalf("NewSpriteSource failed: %v", err)
	}

	var out bytes.Buffer
	p := NewProject(cfg, src, enc)
	p.Out = &out
	p.BenchmarkLog = filepath.Join(dir, "benchmark.log")
	return p, &out
}

func TestRunImproved(t *testing.T) {
	p, out := newProject(t, "improved", &encoder.GIFEncoder{})
	p.Config.TimelinePath = filepath.Join(filepath.Dir(p.Config.OutputPath), "timeline.yaml")

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v\n%s", err, out)
	}

	f, err := os.Open(p.Config.OutputPath)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(g.Image) != 6 || g.Delay[0] != 15 || g.LoopCount != 0 {
		t.Errorf("Expected 6 frames at 15cs looping forever, got %d at %d (loop %d)", len(g.Image), g.Delay[0], g.LoopCount)
	}

	for i := 1; i <= 6; i++ {
		name := filepath.Join(p.Config.PreviewDir, fmt.Sprintf("improved_bunny_frame_%d.png", i))
		if _, err := os.Stat(name); err != nil {
			t.Errorf("Preview %d missing: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(p.Config.PreviewDir, "improved_bunny_frame_0.png")); err == nil {
		t.Error("Preview numbering must start at 1")
	}

	tl, err := timeline.Read(p.Config.TimelinePath)
	if err != nil {
		t.Fatalf("timeline.Read failed: %v", err)
	}
	if len(tl.Frames) != 6 || tl.Variant != "improved" || tl.Easing != "sine" {
		t.Errorf("Unexpected timeline: %+v", tl)
	}
	for i, f := range tl.Frames {
		if f.Extent.W == 0 || f.Extent.H == 0 {
			t.Errorf("Frame %d: expected a drawn extent, got %+v", i, f.Extent)
		}
	}

	log := out.String()
	for _, want := range []string{"[>] Frame 1/6", "[>] Frame 6/6", "[*] Sprite extent:", "[+++] Saved", "[*] Source: improved sprite", "[*] Timeline:", "(6 frames, 900ms loop)", "[*] Preview:"} {
		if !strings.Contains(log, want) {
			t.Errorf("Expected %q in output:\n%s", want, log)
		}
	}
	if strings.Contains(log, "PERFORMANCE REPORT") {
		t.Error("Report printed without ShowStats")
	}
	if strings.Contains(log, "canvas edge") {
		t.Errorf("Improved sprite reported at the canvas edge:\n%s", log)
	}
}

func TestRunFrameOrder(t *testing.T) {
	rec := &recorder{}
	p, _ := newProject(t, "basic", rec)
	p.Config.Preview = false

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rec.frames) != 4 {
		t.Fatalf("Expected 4 frames, got %d", len(rec.frames))
	}
	if rec.opts != (encoder.Options{DelayMS: 200}) {
		t.Errorf("Unexpected encoder options %+v", rec.opts)
	}
	for i, f := range rec.frames {
		want, _ := p.Source.RenderFrame(i)
		if !bytes.Equal(f.(*image.RGBA).Pix, want.(*image.RGBA).Pix) {
			t.Errorf("Frame %d out of order", i)
		}
	}
	if _, err := os.Stat(p.Config.PreviewDir); err == nil {
		t.Error("Previews written with Preview off")
	}
}

func TestRunSizeBudget(t *testing.T) {
	p, out := newProject(t, "basic", &recorder{})
	p.Config.Preview = false

	p.Config.SizeBudget = 2000
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.Contains(out.String(), "[!]") {
		t.Errorf("Unexpected warning under budget:\n%s", out)
	}

	out.Reset()
	p.Config.SizeBudget = 1000
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "over the 1000 byte budget") {
		t.Errorf("Expected budget warning:\n%s", out)
	}
}

func TestRunEncoderFailure(t *testing.T) {
	failure := errors.New("disk full")
	p, _ := newProject(t, "improved", &recorder{err: failure})

	err := p.Run(context.Background())
	if !errors.Is(err, failure) {
		t.Fatalf("Expected encoder error, got %v", err)
	}
	if _, err := os.Stat(p.Config.PreviewDir); err == nil {
		t.Error("Previews written after a failed encode")
	}
}

func TestRunWriteFailure(t *testing.T) {
	p, _ := newProject(t, "improved", &encoder.GIFEncoder{})
	blocker := filepath.Join(t.TempDir(), "blocker")
	os.WriteFile(blocker, nil, 0644)
	p.Config.OutputPath = filepath.Join(blocker, "bunny.gif")

	if err := p.Run(context.Background()); !errors.Is(err, encoder.ErrWriteFailed) {
		t.Fatalf("Expected ErrWriteFailed, got %v", err)
	}
}

func TestRunStats(t *testing.T) {
	p, out := newProject(t, "basic", &recorder{})
	p.Config.Preview = false
	p.Config.ShowStats = true

	for range 2 {
		if err := p.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	if !strings.Contains(out.String(), "--- [PERFORMANCE REPORT] ---") || !strings.Contains(out.String(), "Build: test") {
		t.Errorf("Expected performance report:\n%s", out)
	}

	data, err := os.ReadFile(p.BenchmarkLog)
	if err != nil {
		t.Fatalf("benchmark log missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 appended entries, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Variant: basic | Frames: 4 | Size: 1234") {
		t.Errorf("Unexpected log entry: %s", lines[0])
	}
}

func TestRunCanceled(t *testing.T) {
	p, _ := newProject(t, "improved", &encoder.GIFEncoder{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(p.Config.OutputPath); err == nil {
		t.Error("Output written after cancellation")
	}
}
