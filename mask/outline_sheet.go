package mask

import "fmt"
import "sync"
import "image"
import "log/slog"

import xfont "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/tgrid/internal/nolog"

var _ Sheet = (*OutlineSheet)(nil)

// Configuration for [NewOutlineSheet]().
type OutlineOptions struct {
	// Font size in pixels. Defaults to 16.
	Size float64

	// Candidate code points. Only these will be considered when
	// computing the dominant glyph size, and only these will be
	// supported. Defaults to [DefaultRepertoire]().
	Runes []rune

	// Logger for load information and excluded glyphs. Optional.
	Logger *slog.Logger
}

type outlineGlyph struct {
	index sfnt.GlyphIndex
	advance fixed.Int26_6
	span int
}

// A [Sheet] that rasterizes glyphs from a vector font. The font
// should be monospaced; with proportional fonts, only glyphs with the
// dominant advance (or multiples of it) will be supported.
//
// Glyph masks are rasterized on demand and not retained, as the glyph
// cache will keep the final colorized images anyway.
type OutlineSheet struct {
	font *sfnt.Font
	ppem fixed.Int26_6
	baseline float32
	cellWidth int
	cellHeight int
	glyphs map[rune]outlineGlyph

	mutex sync.Mutex // guards buffer and tracer
	buffer sfnt.Buffer
	tracer outlineTracer
}

// Creates a new outline sheet for the given font. The cell width is the
// dominant rounded advance among the candidate runes, and the cell height
// is the rounded up sum of the font's ascent and descent.
func NewOutlineSheet(font *sfnt.Font, opts OutlineOptions) (*OutlineSheet, error) {
	if font == nil { panic("nil font") }
	logger := nolog.Or(opts.Logger)
	size := opts.Size
	if size <= 0 { size = 16 }
	runes := opts.Runes
	if runes == nil { runes = DefaultRepertoire() }

	sheet := &OutlineSheet{
		font: font,
		ppem: fixed.Int26_6(size*64 + 0.5),
		glyphs: make(map[rune]outlineGlyph, len(runes)),
	}
	metrics, err := font.Metrics(&sheet.buffer, sheet.ppem, xfont.HintingNone)
	if err != nil { return nil, fmt.Errorf("reading font metrics: %w", err) }
	sheet.cellHeight = (metrics.Ascent + metrics.Descent).Ceil()
	sheet.baseline = float32(metrics.Ascent)/64

	// gather native sizes
	sizes := make(map[rune]image.Point, len(runes))
	for _, codePoint := range runes {
		index, err := font.GlyphIndex(&sheet.buffer, codePoint)
		if err != nil { return nil, fmt.Errorf("glyph index for %U: %w", codePoint, err) }
		if index == 0 { continue } // notdef, missing
		advance, err := font.GlyphAdvance(&sheet.buffer, index, sheet.ppem, xfont.HintingNone)
		if err != nil { return nil, fmt.Errorf("glyph advance for %U: %w", codePoint, err) }
		if advance.Round() <= 0 { continue } // combining marks and friends
		sizes[codePoint] = image.Pt(advance.Round(), sheet.cellHeight)
		sheet.glyphs[codePoint] = outlineGlyph{ index: index, advance: advance }
	}

	// determine dominant size and exclude misaligned glyphs
	cell := dominantSize(sizes)
	if cell.X <= 0 || cell.Y <= 0 { return nil, ErrEmptySheet }
	sheet.cellWidth = cell.X
	excluded := 0
	for codePoint, size := range sizes {
		if !isTileAligned(size, cell) {
			logger.Debug("glyph excluded from sheet", "rune", fmt.Sprintf("%U", codePoint),
				"width", size.X, "cell_width", cell.X)
			delete(sheet.glyphs, codePoint)
			excluded += 1
			continue
		}
		glyph := sheet.glyphs[codePoint]
		glyph.span = size.X/cell.X
		sheet.glyphs[codePoint] = glyph
	}

	logger.Info("outline sheet loaded", "size", size, "cell_width", sheet.cellWidth,
		"cell_height", sheet.cellHeight, "glyphs", len(sheet.glyphs), "excluded", excluded)
	return sheet, nil
}

// Implements [Sheet].CellSize().
func (self *OutlineSheet) CellSize() (int, int) {
	return self.cellWidth, self.cellHeight
}

// Reports whether the code point has a tile-aligned glyph in the sheet.
func (self *OutlineSheet) Supports(codePoint rune) bool {
	_, found := self.glyphs[codePoint]
	return found
}

// Returns the number of supported glyphs.
func (self *OutlineSheet) NumGlyphs() int { return len(self.glyphs) }

// Implements [Sheet].GlyphMask(). The glyph is horizontally centered
// within its span and placed on the font baseline.
func (self *OutlineSheet) GlyphMask(codePoint rune) (*image.Alpha, error) {
	glyph, found := self.glyphs[codePoint]
	if !found { return nil, unsupported(codePoint, "not in sheet") }

	self.mutex.Lock()
	defer self.mutex.Unlock()
	outline, err := self.font.LoadGlyph(&self.buffer, glyph.index, self.ppem, nil)
	if err != nil { return nil, fmt.Errorf("loading glyph %U: %w", codePoint, err) }

	width := glyph.span*self.cellWidth
	self.tracer.offsetX = (float32(width) - float32(glyph.advance)/64)/2
	self.tracer.offsetY = self.baseline
	return self.tracer.Rasterize(outline, width, self.cellHeight), nil
}
