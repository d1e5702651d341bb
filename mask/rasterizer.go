package mask

import "fmt"
import "image"
import "errors"

// Returned (wrapped) by sheets when a code point has no glyph or its
// glyph is not tile-aligned. Callers are expected to substitute a
// placeholder and keep going.
var ErrUnsupportedGlyph = errors.New("unsupported glyph")

// Returned by sheet constructors when no glyph can be used at all.
var ErrEmptySheet = errors.New("sheet has no usable glyphs")

// A Sheet is the source of glyph masks for a grid renderer. Masks
// returned by a sheet must be treated as read-only, and they must
// always be the same for the same code point.
//
// Sheets must be safe for concurrent use, as glyph caches may be
// pre-warmed from multiple goroutines.
type Sheet interface {
	// Returns the base cell size in pixels. This is the dominant
	// glyph size, computed once when the sheet is created.
	CellSize() (width, height int)

	// Returns the mask for the given code point. The mask size is
	// always an integer multiple of the cell size. If the code point
	// is not supported, the error must wrap [ErrUnsupportedGlyph].
	GlyphMask(codePoint rune) (*image.Alpha, error)
}

// Obtains the glyph mask for the given code point from the sheet and
// verifies that it's tile-aligned. Masks that are nil without error
// (typical for spaces) are replaced by an empty mask of the cell size.
func Rasterize(sheet Sheet, codePoint rune) (*image.Alpha, error) {
	mask, err := sheet.GlyphMask(codePoint)
	if err != nil { return nil, err }

	cellWidth, cellHeight := sheet.CellSize()
	if mask == nil {
		return image.NewAlpha(image.Rect(0, 0, cellWidth, cellHeight)), nil
	}
	if !isTileAligned(mask.Rect.Size(), image.Pt(cellWidth, cellHeight)) {
		return nil, unsupported(codePoint, "mask size %v not aligned to cell %dx%d",
			mask.Rect.Size(), cellWidth, cellHeight)
	}
	return mask, nil
}

// Returns the number of cells covered horizontally by the given mask.
func Span(mask *image.Alpha, cellWidth int) int {
	if mask == nil || cellWidth <= 0 { return 1 }
	span := mask.Rect.Dx()/cellWidth
	if span < 1 { return 1 }
	return span
}

func unsupported(codePoint rune, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %U (%s)", ErrUnsupportedGlyph, codePoint, detail)
}
