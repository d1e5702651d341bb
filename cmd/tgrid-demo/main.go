// Command tgrid-demo draws a small dungeon with tgrid, either on an
// Ebitengine window or on the terminal.
//
// Usage:
//
//	tgrid-demo [-font font.ttf] [-size 16] [-cols 60] [-rows 24]
//	           [-palette theme.toml] [-cache 0] [-term] [-v] [-log file]
//
// The palette file is watched and hot reloaded while the demo runs.
package main

import "context"
import "flag"
import "fmt"
import "io"
import "log/slog"
import "os"
import "os/signal"
import "sync/atomic"
import "syscall"

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/tgrid/cache"
import "github.com/tinne26/tgrid/font"
import "github.com/tinne26/tgrid/internal/demo"
import "github.com/tinne26/tgrid/mask"
import "github.com/tinne26/tgrid/palette"

type options struct {
	fontPath    string
	size        float64
	cols        int
	rows        int
	palettePath string
	capacity    int
	terminal    bool
	verbose     bool
	logPath     string
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	flag.StringVar(&opts.fontPath, "font", "", "Path to a .ttf or .otf font (defaults to the bundled Go Mono)")
	flag.Float64Var(&opts.size, "size", 16, "Font size in pixels")
	flag.IntVar(&opts.cols, "cols", 60, "Grid width in cells")
	flag.IntVar(&opts.rows, "rows", 24, "Grid height in cells")
	flag.StringVar(&opts.palettePath, "palette", "", "Path to a TOML palette file (hot reloaded)")
	flag.IntVar(&opts.capacity, "cache", 0, "Glyph cache capacity (0 means unbounded)")
	flag.BoolVar(&opts.terminal, "term", false, "Draw on the terminal instead of a window")
	flag.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	// the terminal host owns stderr, so logs are dropped unless -log is given
	var logOutput io.Writer = os.Stderr
	if opts.terminal { logOutput = io.Discard }
	if opts.logPath != "" {
		file, err := os.Create(opts.logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "can't create log file: %v\n", err)
			return 1
		}
		defer file.Close()
		logOutput = file
	}
	level := slog.LevelInfo
	if opts.verbose { level = slog.LevelDebug }
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{ Level: level }))

	if opts.cols < 8 || opts.rows < 4 || opts.capacity < 0 {
		fmt.Fprintln(os.Stderr, "invalid options: the grid must be at least 8x4 and the cache capacity can't be negative")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	colors := demo.DefaultPalette()
	var pending atomic.Pointer[palette.Palette] // reloaded palettes, consumed by the render loop
	if opts.palettePath != "" {
		loaded, err := palette.Load(opts.palettePath)
		if err != nil {
			logger.Error("failed to load palette", "error", err)
			return 1
		}
		colors = loaded
		go watchPalette(ctx, opts.palettePath, &pending, logger)
	}
	scene := demo.NewScene(opts.cols, opts.rows, colors, 1)

	if opts.terminal {
		if err := runTerminal(ctx, scene, &pending, logger); err != nil {
			logger.Error("terminal host failed", "error", err)
			return 1
		}
		return 0
	}

	sheet, err := loadSheet(opts, logger)
	if err != nil {
		logger.Error("failed to create glyph sheet", "error", err)
		return 1
	}
	glyphs := cache.New(sheet, cache.Options{ Capacity: opts.capacity, Logger: logger })
	if err := glyphs.Prewarm(ctx, scene.Keys(), 0); err != nil {
		logger.Warn("glyph prewarm interrupted", "error", err)
	}
	stats := glyphs.Stats()
	logger.Info("glyph cache prewarmed", "entries", stats.Entries, "approx_bytes", stats.ApproxBytes)

	if err := runWindow(ctx, scene, sheet, glyphs, &pending, logger); err != nil {
		logger.Error("window host failed", "error", err)
		return 1
	}
	return 0
}

func loadSheet(opts options, logger *slog.Logger) (*mask.OutlineSheet, error) {
	var typeface *sfnt.Font = font.Default()
	if opts.fontPath != "" {
		parsed, name, err := font.ParseFromPath(opts.fontPath)
		if err != nil { return nil, err }
		logger.Info("font loaded", "name", name, "path", opts.fontPath)
		typeface = parsed
	}
	if mono, err := font.IsMonospaced(typeface, "iMW.@#"); err == nil && !mono {
		logger.Warn("font is not monospaced, some glyphs will be excluded")
	}
	return mask.NewOutlineSheet(typeface, mask.OutlineOptions{ Size: opts.size, Logger: logger })
}

func watchPalette(ctx context.Context, path string, pending *atomic.Pointer[palette.Palette], logger *slog.Logger) {
	err := palette.Watch(ctx, path, func(colors *palette.Palette, err error) {
		if err != nil {
			logger.Warn("palette reload failed", "path", path, "error", err)
			return
		}
		logger.Info("palette reloaded", "name", colors.Name)
		pending.Store(colors)
	})
	if err != nil { logger.Warn("can't watch palette file", "path", path, "error", err) }
}
