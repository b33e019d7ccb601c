// The bunnygif command renders the bouncing bunny sprite as a looping
// animated GIF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/ivlev/bunnygif/internal/config"
	"github.com/ivlev/bunnygif/internal/encoder"
	"github.com/ivlev/bunnygif/internal/engine"
	"github.com/ivlev/bunnygif/internal/source"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	fs := flag.NewFlagSet("bunnygif", flag.ContinueOnError)
	variantPtr := fs.String("variant", "improved", "Sprite variant: basic or improved")
	configPtr := fs.String("config", "", "YAML or TOML file overriding the variant preset")
	outputPtr := fs.String("output", "", "Output path (default public/bunny.gif)")
	inputPtr := fs.String("input", "", "Assemble PNG/JPEG frames from a file or directory instead of drawing them")
	formatPtr := fs.String("format", "", "Output format: gif (webp and apng need extra libraries)")
	previewPtr := fs.Bool("preview", true, "Write every frame as a numbered PNG")
	previewDirPtr := fs.String("preview-dir", "", "Preview directory (default depends on the variant)")
	previewScalePtr := fs.Int("preview-scale", 1, "Integer upscale factor of preview PNGs")
	workersPtr := fs.Int("workers", 1, "Preview files written at once")
	timelinePtr := fs.String("timeline", "", "Write the per-frame parameters to this YAML file")
	expressionPtr := fs.String("expression", "", "Face of the improved bunny: plain or smile")
	statsPtr := fs.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	versionPtr := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionPtr {
		fmt.Println(buildVersion())
		return 0
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.ForVariant(*variantPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		return 1
	}
	cfg.BuildVersion = buildVersion()
	if *configPtr != "" {
		load := config.Load
		if set["variant"] {
			// An explicit -variant keeps its preset under the file.
			load = config.Overlay
		}
		if err := load(*configPtr, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "[-] Config error: %v\n", err)
			return 1
		}
		fmt.Printf("[*] Config: %s\n", *configPtr)
	}

	// Flags given on the command line win over the config file.
	if set["output"] {
		cfg.OutputPath = *outputPtr
	}
	if set["input"] {
		cfg.InputPath = *inputPtr
	}
	if set["format"] {
		cfg.Format = *formatPtr
	}
	if set["preview"] {
		cfg.Preview = *previewPtr
	} else if cfg.InputPath != "" {
		// Loaded frames are already on disk.
		cfg.Preview = false
	}
	if set["preview-dir"] {
		cfg.PreviewDir = *previewDirPtr
	}
	if set["preview-scale"] {
		cfg.PreviewScale = *previewScalePtr
	}
	if set["workers"] {
		cfg.Workers = *workersPtr
	}
	if set["timeline"] {
		cfg.TimelinePath = *timelinePtr
	}
	if set["expression"] {
		cfg.Expression = *expressionPtr
	}
	if set["stats"] {
		cfg.ShowStats = *statsPtr
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Invalid configuration: %v\n", err)
		return 1
	}

	// Resolve the encoder first so a missing library is reported before
	// anything is written.
	enc, err := encoder.New(cfg.Format)
	if err != nil {
		if errors.Is(err, encoder.ErrMissingDependency) {
			fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "[-] Encoder error: %v\n", err)
		}
		return 1
	}

	var src source.Source
	if cfg.InputPath != "" {
		src, err = source.NewImageSource(cfg.InputPath)
		if err == nil {
			fmt.Printf("[*] Input: %s\n", cfg.InputPath)
		}
	} else {
		synth, serr := cfg.Synthesizer()
		if serr != nil {
			err = serr
		} else {
			src, err = source.NewSpriteSource(synth, cfg.TotalFrames)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Source error: %v\n", err)
		return 1
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewProject(cfg, src, enc)
	if err := project.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Project failed: %v\n", err)
		return 1
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputPath)
	return 0
}

func buildVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var revision, modified string
	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs.revision":
			revision = bs.Value
		case "vcs.modified":
			modified = bs.Value
		}
	}
	switch {
	case revision == "":
		return bi.Main.Version
	case modified == "true":
		return bi.Main.Version + " " + revision + " (modified)"
	default:
		return bi.Main.Version + " " + revision
	}
}
