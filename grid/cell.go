package grid

import "image/color"

import "github.com/tinne26/tgrid/shader"

// Special code point for the trailing cells covered by a glyph that
// spans multiple cells. The renderer only paints backgrounds for them.
const Continuation rune = -1

// A single grid cell. Cells are comparable: two cells are equal if all
// their fields are equal, which also means they render identically.
type Cell struct {
	CodePoint  rune
	Background color.RGBA
	Foreground color.RGBA
	Chain      shader.Chain
}

// The cell grids are filled with on creation: a white space on black.
var Blank = Cell{
	CodePoint:  ' ',
	Background: color.RGBA{0, 0, 0, 255},
	Foreground: color.RGBA{255, 255, 255, 255},
}

// Creates a cell with an empty transform chain.
func NewCell(codePoint rune, fg, bg color.RGBA) Cell {
	return Cell{ CodePoint: codePoint, Foreground: fg, Background: bg }
}

// Returns a copy of the cell with the given transforms appended
// to its chain.
func (self Cell) WithTransforms(transforms ...shader.Transform) Cell {
	self.Chain = self.Chain.Append(transforms...)
	return self
}

// Whether the cell is the trailing part of a multi-cell glyph.
func (self Cell) IsContinuation() bool {
	return self.CodePoint == Continuation
}
