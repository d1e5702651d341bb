package main

import "context"
import "errors"
import "log/slog"
import "sync/atomic"
import "time"

import "github.com/gdamore/tcell/v2"
import "github.com/hajimehoshi/ebiten/v2"
import "github.com/hajimehoshi/ebiten/v2/inpututil"

import "github.com/tinne26/tgrid"
import "github.com/tinne26/tgrid/cache"
import "github.com/tinne26/tgrid/ebitenhost"
import "github.com/tinne26/tgrid/internal/demo"
import "github.com/tinne26/tgrid/mask"
import "github.com/tinne26/tgrid/palette"
import "github.com/tinne26/tgrid/termhost"

var errQuit = errors.New("quit")

func runWindow(ctx context.Context, scene *demo.Scene, sheet mask.Sheet, glyphs *cache.GlyphCache, pending *atomic.Pointer[palette.Palette], logger *slog.Logger) error {
	var renderer *tgrid.Renderer
	var frames int
	window := ebitenhost.New(func() error {
		if ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return errQuit
		}
		if colors := pending.Swap(nil); colors != nil { scene.SetPalette(colors) }
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):  scene.Move(-1, 0)
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight): scene.Move(1, 0)
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):    scene.Move(0, -1)
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):  scene.Move(0, 1)
		case inpututil.IsKeyJustPressed(ebiten.KeyTab):        scene.ToggleStatus()
		}
		scene.Tick()

		if err := renderer.Present(scene.Compose()); err != nil {
			logger.Warn("frame not presented", "error", err)
		}
		frames += 1
		if frames % 600 == 0 {
			stats := glyphs.Stats()
			logger.Debug("glyph cache", "hit_rate", stats.HitRate(), "entries", stats.Entries,
				"evictions", stats.Evictions, "approx_bytes", stats.ApproxBytes)
		}
		return nil
	})
	renderer = tgrid.NewRenderer(sheet, glyphs, window)
	renderer.SetLogger(logger)
	renderer.SetColorQuantization(6)

	cellWidth, cellHeight := renderer.CellSize()
	screen := scene.Compose()
	err := window.Run("tgrid demo", screen.Width()*cellWidth, screen.Height()*cellHeight, 2)
	if errors.Is(err, errQuit) { return nil }
	return err
}

func runTerminal(ctx context.Context, scene *demo.Scene, pending *atomic.Pointer[palette.Palette], logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil { return err }
	if err := screen.Init(); err != nil { return err }
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	mirror := termhost.NewMirror(screen)
	ticker := time.NewTicker(time.Second/60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			switch event := event.(type) {
			case *tcell.EventResize:
				screen.Sync()
				mirror.ForceRedraw()
			case *tcell.EventKey:
				switch event.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyLeft:  scene.Move(-1, 0)
				case tcell.KeyRight: scene.Move(1, 0)
				case tcell.KeyUp:    scene.Move(0, -1)
				case tcell.KeyDown:  scene.Move(0, 1)
				case tcell.KeyTab:   scene.ToggleStatus()
				case tcell.KeyRune:
					if event.Rune() == 'q' { return nil }
				}
			}
		case <-ticker.C:
			if colors := pending.Swap(nil); colors != nil { scene.SetPalette(colors) }
			scene.Tick()
			written := mirror.Present(scene.Compose())
			if written > 0 { logger.Debug("terminal frame", "cells", written) }
		}
	}
}
