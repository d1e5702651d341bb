package grid

import "image/color"

import "github.com/rivo/uniseg"
import "golang.org/x/text/width"

// Returns how many cells the code point takes: 2 for east asian wide
// and fullwidth characters, 1 otherwise.
func RuneSpan(codePoint rune) int {
	switch width.LookupRune(codePoint).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Writes the given string starting at (x, y) with the given colors,
// one grapheme cluster per cell (combining marks are dropped, as cells
// only hold a single code point). Wide characters take two cells, the
// second one being a [Continuation]. Text going past the right edge of
// the grid is clipped. A wide character that doesn't fit at the end of
// the row is replaced by a space.
//
// Returns the number of columns advanced, or an error wrapping
// [ErrOutOfBounds] if the starting point is outside the grid.
func (self *Grid) PutString(x, y int, text string, fg, bg color.RGBA) (int, error) {
	if !self.InBounds(x, y) { return 0, self.boundsErr(x, y) }

	row := y*self.width
	col := x
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() && col < self.width {
		codePoint := graphemes.Runes()[0]
		if codePoint < 0x20 || codePoint == 0x7F { continue } // control

		span := RuneSpan(codePoint)
		if col + span > self.width { // doesn't fit
			self.set(row + col, NewCell(' ', fg, bg))
			col += 1
			break
		}
		self.set(row + col, NewCell(codePoint, fg, bg))
		for i := 1; i < span; i++ {
			self.set(row + col + i, NewCell(Continuation, fg, bg))
		}
		col += span
	}
	return col - x, nil
}
