package tgrid

import "image"
import "image/color"
import "log/slog"

import "github.com/tinne26/tgrid/cache"
import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/mask"
import "github.com/tinne26/tgrid/internal/nolog"

// Maximum number of times a frame is painted and presented before
// giving up on a lost surface.
const MaxPresentAttempts = 3

// This file contains the Renderer type definition and all the
// getter and setter methods. Presenting is in renderer_present.go.

// The [Renderer] paints grids of cells into a back buffer and presents
// the changed areas to a [Surface].
//
// Renderers keep track of the last grid they presented. Presenting the
// same grid again only repaints its dirty cells, while presenting a new
// grid or a grid with a different size repaints everything.
//
// Renderers are not safe for concurrent use: all the presents must
// happen on the same goroutine that mutates the grids.
type Renderer struct {
	sheet   mask.Sheet
	glyphs  *cache.GlyphCache
	surface Surface
	logger  *slog.Logger

	back       *image.RGBA
	cellWidth  int
	cellHeight int
	lastGrid   *grid.Grid
	forceFull  bool

	clearColor   color.RGBA
	quantization int
	lastFrame    FrameStats
}

// Statistics for a single present.
type FrameStats struct {
	CellsRepainted int  // accumulated over all attempts
	CacheHits      uint64
	CacheMisses    uint64
	Attempts       int
	Full           bool // whether the last attempt repainted everything
}

// Creates a new [Renderer]. The glyph cache must have been created for
// the same sheet. If glyphs is nil, an unbounded cache is created. A nil
// sheet or surface will panic.
func NewRenderer(sheet mask.Sheet, glyphs *cache.GlyphCache, surface Surface) *Renderer {
	if sheet == nil { panic("nil sheet") }
	if surface == nil { panic("nil surface") }
	if glyphs == nil { glyphs = cache.New(sheet, cache.Options{}) }
	cellWidth, cellHeight := sheet.CellSize()
	return &Renderer{
		sheet:      sheet,
		glyphs:     glyphs,
		surface:    surface,
		logger:     nolog.Logger(),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		clearColor: color.RGBA{0, 0, 0, 255},
		forceFull:  true,
	}
}

// Sets the logger for surface retries and failures. Nil disables logging.
func (self *Renderer) SetLogger(logger *slog.Logger) {
	self.logger = nolog.Or(logger)
}

// Sets the number of bits per channel kept from foreground colors when
// looking up glyphs, from 1 to 8. Lower values reduce the number of
// distinct cached glyphs when colors are animated. Values outside
// the range disable quantization (the default).
//
// Changing the quantization forces a full redraw on the next present.
func (self *Renderer) SetColorQuantization(bits int) {
	if bits < 1 || bits > 8 { bits = 0 }
	if bits == self.quantization { return }
	self.quantization = bits
	self.forceFull = true
}

// Returns the current color quantization bits, or 0 if disabled.
func (self *Renderer) GetColorQuantization() int { return self.quantization }

// Sets the color that cell backgrounds are composited over. Only
// visible for backgrounds that are not fully opaque. Black by default.
// Changing the clear color forces a full redraw on the next present.
func (self *Renderer) SetClearColor(clr color.RGBA) {
	if clr == self.clearColor { return }
	self.clearColor = clr
	self.forceFull = true
}

// Makes the next present repaint the whole grid.
func (self *Renderer) ForceRedraw() { self.forceFull = true }

// Returns the cell size in pixels.
func (self *Renderer) CellSize() (width, height int) {
	return self.cellWidth, self.cellHeight
}

// Returns the glyph cache used by the renderer.
func (self *Renderer) GlyphCache() *cache.GlyphCache { return self.glyphs }

// Returns the back buffer, or nil if nothing has been presented yet.
// The image must be treated as read-only.
func (self *Renderer) BackBuffer() *image.RGBA { return self.back }

// Returns the statistics of the last present.
func (self *Renderer) FrameStats() FrameStats { return self.lastFrame }
