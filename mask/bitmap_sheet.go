package mask

import "fmt"
import "image"
import "log/slog"

import "github.com/tinne26/tgrid/internal/nolog"

var _ Sheet = (*BitmapSheet)(nil)

// A [Sheet] backed by pre-rendered glyph masks. Masks are copied and
// normalized on creation, so the given map can be reused freely.
type BitmapSheet struct {
	masks map[rune]*image.Alpha
	cellWidth int
	cellHeight int
}

// Creates a bitmap sheet from the given masks. The most frequent mask
// size becomes the cell size, and masks that are not an integer multiple
// of it are excluded (and logged at debug level, if a logger is given).
func NewBitmapSheet(masks map[rune]*image.Alpha, logger *slog.Logger) (*BitmapSheet, error) {
	logger = nolog.Or(logger)
	sizes := make(map[rune]image.Point, len(masks))
	for codePoint, mask := range masks {
		if mask == nil { continue }
		sizes[codePoint] = mask.Rect.Size()
	}

	cell := dominantSize(sizes)
	if cell.X <= 0 || cell.Y <= 0 { return nil, ErrEmptySheet }

	sheet := &BitmapSheet{
		masks: make(map[rune]*image.Alpha, len(sizes)),
		cellWidth: cell.X,
		cellHeight: cell.Y,
	}
	for codePoint, size := range sizes {
		if !isTileAligned(size, cell) {
			logger.Debug("glyph excluded from sheet", "rune", fmt.Sprintf("%U", codePoint),
				"size", size.String(), "cell", cell.String())
			continue
		}
		sheet.masks[codePoint] = normalizeMask(masks[codePoint])
	}

	logger.Info("bitmap sheet loaded", "cell_width", cell.X, "cell_height", cell.Y,
		"glyphs", len(sheet.masks), "excluded", len(sizes) - len(sheet.masks))
	return sheet, nil
}

// Implements [Sheet].CellSize().
func (self *BitmapSheet) CellSize() (int, int) {
	return self.cellWidth, self.cellHeight
}

// Reports whether the code point has a tile-aligned glyph in the sheet.
func (self *BitmapSheet) Supports(codePoint rune) bool {
	_, found := self.masks[codePoint]
	return found
}

// Returns the number of supported glyphs.
func (self *BitmapSheet) NumGlyphs() int { return len(self.masks) }

// Implements [Sheet].GlyphMask(). The returned mask is shared
// and must not be modified.
func (self *BitmapSheet) GlyphMask(codePoint rune) (*image.Alpha, error) {
	mask, found := self.masks[codePoint]
	if !found { return nil, unsupported(codePoint, "not in sheet") }
	return mask, nil
}
