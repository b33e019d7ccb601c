// Package engine runs one animation project: synthesis, encoding and the
// optional timeline, preview and performance outputs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/bunnygif/internal/analyzer"
	"github.com/ivlev/bunnygif/internal/config"
	"github.com/ivlev/bunnygif/internal/encoder"
	"github.com/ivlev/bunnygif/internal/preview"
	"github.com/ivlev/bunnygif/internal/source"
	"github.com/ivlev/bunnygif/internal/sprite"
	"github.com/ivlev/bunnygif/internal/system"
	"github.com/ivlev/bunnygif/internal/timeline"
)

// DefaultBenchmarkLog is the file performance reports are appended to.
const DefaultBenchmarkLog = "benchmark.log"

type Project struct {
	Config  *config.Config
	Source  source.Source
	Encoder encoder.Encoder

	// Out receives progress lines. Nil means stdout.
	Out io.Writer

	// BenchmarkLog is the report log path. Empty means DefaultBenchmarkLog.
	BenchmarkLog string
}

func NewProject(cfg *config.Config, src source.Source, enc encoder.Encoder) *Project {
	return &Project{
		Config:  cfg,
		Source:  src,
		Encoder: enc,
	}
}

// paramsSource is a source that can describe its frames.
type paramsSource interface {
	Params() []sprite.Params
}

// Run synthesizes every frame in order, writes the animation and then the
// optional outputs. Synthesis, encoding and preview failures wrap
// encoder.ErrWriteFailed unless the encoder reports its own kind.
func (p *Project) Run(ctx context.Context) error {
	out := p.out()
	startTime := time.Now()

	frameCount := p.Source.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("%w: source has no frames", encoder.ErrWriteFailed)
	}
	w, h, err := p.Source.FrameDimensions()
	if err != nil {
		return fmt.Errorf("%w: %w", encoder.ErrWriteFailed, err)
	}

	fmt.Fprintln(out, "--- [PROJECT: BUNNY SPRITE] ---")
	if name, ok := p.Source.(fmt.Stringer); ok {
		fmt.Fprintf(out, "[*] Source: %s\n", name)
	}
	fmt.Fprintf(out, "[*] Variant: %s | Frames: %d | Delay: %dms\n", p.Config.Variant, frameCount, p.Config.DelayMS)
	fmt.Fprintf(out, "[*] Size: %dx%d | Transparent: %v | Output: %s\n", w, h, p.Config.Transparent, p.Config.OutputPath)
	fmt.Fprintln(out, "-----------------------------")

	renderStart := time.Now()
	frames := make([]image.Image, frameCount)
	extents := make([]image.Rectangle, frameCount)
	var extent image.Rectangle
	for i := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "[>] Frame %d/%d\n", i+1, frameCount)
		frames[i], err = p.Source.RenderFrame(i)
		if err != nil {
			return fmt.Errorf("%w: frame %d: %w", encoder.ErrWriteFailed, i, err)
		}
		extents[i] = analyzer.Extent(frames[i], analyzer.Background(frames[i]))
		extent = extent.Union(extents[i])
	}
	renderTime := time.Since(renderStart)

	fmt.Fprintf(out, "[*] Sprite extent: %v\n", extent)
	if analyzer.TouchesEdge(extent, frames[0].Bounds()) {
		fmt.Fprintf(out, "[!] Sprite reaches the canvas edge and may be clipped\n")
	}

	encodeStart := time.Now()
	size, err := p.Encoder.Encode(ctx, frames, p.Config.OutputPath, encoder.Options{
		DelayMS:     p.Config.DelayMS,
		LoopCount:   p.Config.LoopCount,
		Transparent: p.Config.Transparent,
	})
	if err != nil {
		return err
	}
	encodeTime := time.Since(encodeStart)

	fmt.Fprintf(out, "[+++] Saved %s (%d bytes)\n", p.Config.OutputPath, size)
	if budget := p.Config.SizeBudget; budget > 0 && size > budget {
		fmt.Fprintf(out, "[!] %s is %d bytes, over the %d byte budget\n", p.Config.OutputPath, size, budget)
	}

	if p.Config.TimelinePath != "" {
		if err := p.writeTimeline(out, extents); err != nil {
			return err
		}
	}

	var previewTime time.Duration
	if p.Config.Preview {
		previewStart := time.Now()
		paths, err := preview.Dump(ctx, p.Source, preview.Options{
			Dir:     p.Config.PreviewDir,
			Prefix:  p.Config.PreviewPrefix,
			Scale:   p.Config.PreviewScale,
			Workers: p.Config.Workers,
		})
		if err != nil {
			return fmt.Errorf("%w: preview: %w", encoder.ErrWriteFailed, err)
		}
		for _, path := range paths {
			fmt.Fprintf(out, "[*] Preview: %s\n", path)
		}
		previewTime = time.Since(previewStart)
	}

	if p.Config.ShowStats {
		p.report(out, frameCount, size, time.Since(startTime), renderTime, encodeTime, previewTime)
	}

	return nil
}

func (p *Project) writeTimeline(out io.Writer, extents []image.Rectangle) error {
	ps, ok := p.Source.(paramsSource)
	if !ok {
		log.Printf("[!] Timeline skipped: frames of %s are not synthesized", p.Config.InputPath)
		return nil
	}
	t := timeline.Build(p.Config.Variant, ps.Params(), p.Config.DelayMS)
	t.Easing = p.Config.Easing
	t.SetExtents(extents)
	if err := timeline.Write(t, p.Config.TimelinePath); err != nil {
		return fmt.Errorf("%w: timeline: %w", encoder.ErrWriteFailed, err)
	}
	fmt.Fprintf(out, "[*] Timeline: %s (%d frames, %dms loop)\n", p.Config.TimelinePath, len(t.Frames), t.Duration())
	return nil
}

func (p *Project) report(out io.Writer, frameCount int, size int64, totalTime, renderTime, encodeTime, previewTime time.Duration) {
	stats := system.Snapshot()
	fps := float64(frameCount) / totalTime.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Synthesis: %.3fs\n"+
			"Encoding: %.3fs\n"+
			"Previews: %.3fs\n"+
			"Output Size: %d bytes\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), previewTime.Seconds(), size, fps, stats,
	)
	fmt.Fprint(out, report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Variant: %s | Frames: %d | Size: %d | Total: %.3fs | Synthesis: %.3fs | Encode: %.3fs | FPS: %.2f | CPUs: %d | Mem: %.1f%%\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Config.Variant,
		frameCount,
		size,
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
		stats.LogicalCPUs,
		stats.MemUsedPercent,
	)

	logPath := p.BenchmarkLog
	if logPath == "" {
		logPath = DefaultBenchmarkLog
	}
	if err := appendLine(logPath, logEntry); err != nil {
		fmt.Fprintf(out, "[!] Could not write %s: %v\n", logPath, err)
	}
}

func appendLine(path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(line)
	return errors.Join(err, f.Close())
}

func (p *Project) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}
