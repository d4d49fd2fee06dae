// Command orrery renders procedurally shaded bodies with the software
// pipeline, either into a window or headless into numbered image files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/netisu/orrery"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type options struct {
	config    string
	mesh      string
	headless  bool
	frames    int
	out       string
	wireframe bool
	workers   int
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "YAML scene file (defaults are used when empty)")
	flag.StringVar(&opts.mesh, "mesh", "", "Mesh file (.obj, .gltf, .glb); overrides the config")
	flag.BoolVar(&opts.headless, "headless", false, "Render to image files instead of a window.")
	flag.IntVar(&opts.frames, "frames", 0, "Frames to render in headless mode (0 = config value).")
	flag.StringVar(&opts.out, "out", "", "Output path or pattern in headless mode; overrides the config")
	flag.BoolVar(&opts.wireframe, "wireframe", false, "Draw triangle edges only.")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Rasterizer goroutines per object.")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging.")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	orrery.SetLogger(logger)

	cfg := orrery.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = orrery.LoadConfig(opts.config); err != nil {
			return err
		}
	}
	if opts.mesh != "" {
		cfg.Mesh = opts.mesh
	}
	if opts.frames > 0 {
		cfg.Output.Frames = opts.frames
	}
	if opts.out != "" {
		cfg.Output.Path = opts.out
	}
	if opts.wireframe {
		cfg.Wireframe = true
	}

	scene, err := cfg.Build(nil, orrery.ScreenWidth, orrery.ScreenHeight)
	if err != nil {
		return err
	}
	r := cfg.NewRenderer(orrery.ScreenWidth, orrery.ScreenHeight)
	r.Workers = opts.workers
	slog.Info("scene ready", "mesh", cfg.Mesh, "bodies", len(scene.Bodies), "triangles", len(scene.Vertices)/3)

	if opts.headless {
		return renderFrames(scene, r, cfg.Output)
	}
	return runWindow(scene, r)
}

// renderFrames renders out.Frames frames in order. Encoding runs in the
// background while the next frame is drawn.
func renderFrames(scene *orrery.Scene, r *orrery.Renderer, out orrery.OutputConfig) error {
	frames := max(out.Frames, 1)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	pb := progressbar.Default(int64(frames), "rendering")
	defer pb.Close()

	for i := 0; i < frames; i++ {
		if err := scene.Draw(r); err != nil {
			slog.Error("frame drawn with errors", "frame", scene.FrameIndex(), "error", err)
		}
		im := orrery.Present(r.Framebuffer)
		path := framePath(out.Path, i, frames)
		scale := out.Scale
		g.Go(func() error {
			if scale > 0 && scale != 1 {
				w := uint(float64(im.Bounds().Dx()) * scale)
				return orrery.SaveImage(path, orrery.Scale(im, w, 0))
			}
			return orrery.SaveImage(path, im)
		})
		scene.Step()
		pb.Add(1)
	}
	return g.Wait()
}

// framePath expands a pattern for frame i. Without a verb, multi-frame
// output gets a zero-padded index before the extension.
func framePath(pattern string, i, frames int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	if frames <= 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(pattern, ext), i, ext)
}
