// The termhost subpackage mirrors tgrid grids on a terminal through
// tcell, so the same application can run on a window or in a terminal.
//
// Terminals draw glyphs themselves, so sheets, glyph caches and most
// transforms don't apply here. Cells are written with their 24-bit
// colors, and an odd number of Invert transforms swaps foreground
// and background.
package termhost

import "image/color"

import "github.com/gdamore/tcell/v2"

import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/shader"

// Writes grid cells to a tcell.Screen, tracking dirty cells the same
// way a renderer does. Mirrors are not safe for concurrent use.
type Mirror struct {
	screen    tcell.Screen
	lastGrid  *grid.Grid
	forceFull bool
}

// Creates a mirror for an already initialized screen.
func NewMirror(screen tcell.Screen) *Mirror {
	if screen == nil { panic("nil screen") }
	return &Mirror{ screen: screen, forceFull: true }
}

// Makes the next present write the whole grid. Should be called
// after terminal resize events.
func (self *Mirror) ForceRedraw() { self.forceFull = true }

// Writes the dirty cells of the grid to the screen and shows them.
// Returns the number of cells written.
func (self *Mirror) Present(cells *grid.Grid) int {
	region := cells.TakeDirty()
	if self.forceFull || cells != self.lastGrid {
		region = grid.FullRegion(cells.Width(), cells.Height())
		self.screen.Clear()
	}
	self.lastGrid, self.forceFull = cells, false

	written := 0
	cells.ExpandToSpans(region).Each(func(x, y int) {
		cell, _ := cells.Cell(x, y)
		if cell.IsContinuation() { return } // the terminal covers it with the lead
		self.screen.SetContent(x, y, cell.CodePoint, nil, StyleOf(cell))
		written += 1
	})
	self.screen.Show()
	return written
}

// Returns the tcell style for the given cell.
func StyleOf(cell grid.Cell) tcell.Style {
	fg, bg := cell.Foreground, cell.Background
	if invertCount(cell.Chain) % 2 == 1 { fg, bg = bg, fg }
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
}

// Premultiplied colors are already composited over black, which is
// the best guess for a terminal background.
func rgb(clr color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(clr.R), int32(clr.G), int32(clr.B))
}

func invertCount(chain shader.Chain) int {
	count := 0
	for i := 0; i < chain.Len(); i++ {
		if chain.At(i).Kind() == shader.KindInvert { count += 1 }
	}
	return count
}
