package grid

import "image"

// A read-only window into a grid. Views don't copy cells: they always
// read the current grid contents.
type View struct {
	grid *Grid
	rect image.Rectangle
}

// Returns a view of the given row. Rows outside the grid give empty views.
func (self *Grid) Row(y int) View {
	return self.Rect(image.Rect(0, y, self.width, y + 1))
}

// Returns a view of the given column. Columns outside the grid
// give empty views.
func (self *Grid) Column(x int) View {
	return self.Rect(image.Rect(x, 0, x + 1, self.height))
}

// Returns a view of the given rect, clipped to the grid bounds.
func (self *Grid) Rect(rect image.Rectangle) View {
	rect = rect.Intersect(self.Bounds())
	if rect.Empty() { rect = image.Rectangle{} }
	return View{ grid: self, rect: rect }
}

// Returns the area covered by the view, in grid coordinates.
func (self View) Bounds() image.Rectangle { return self.rect }

// Returns the number of cells in the view.
func (self View) Len() int { return self.rect.Dx()*self.rect.Dy() }

// Returns the i-th cell of the view, in row-major order. For column
// views, this goes from top to bottom. Panics if i is out of range.
func (self View) At(i int) Cell {
	if i < 0 || i >= self.Len() { panic("view index out of range") }
	width := self.rect.Dx()
	x, y := self.rect.Min.X + i % width, self.rect.Min.Y + i / width
	return self.grid.cells[y*self.grid.width + x]
}

// Returns the cell at (x, y) relative to the view's top-left corner,
// or an error wrapping [ErrOutOfBounds].
func (self View) CellAt(x, y int) (Cell, error) {
	if x < 0 || y < 0 || x >= self.rect.Dx() || y >= self.rect.Dy() {
		return Cell{}, self.grid.boundsErr(self.rect.Min.X + x, self.rect.Min.Y + y)
	}
	return self.grid.cells[(self.rect.Min.Y + y)*self.grid.width + self.rect.Min.X + x], nil
}

// Calls fn for each cell in the view with its grid coordinates.
func (self View) Each(fn func(x, y int, cell Cell)) {
	for y := self.rect.Min.Y; y < self.rect.Max.Y; y++ {
		row := y*self.grid.width
		for x := self.rect.Min.X; x < self.rect.Max.X; x++ {
			fn(x, y, self.grid.cells[row + x])
		}
	}
}
