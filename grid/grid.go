package grid

import "fmt"
import "image"
import "errors"

import "github.com/bits-and-blooms/bitset"

// Returned (wrapped) by grid operations given coordinates outside the
// grid. The grid remains unchanged when this happens.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// A fixed-size rectangular array of cells with dirty tracking.
//
// Cells are stored in a flat row-major slice, so the dirty state is
// just a bitset over the cell indices. Every coordinate always holds
// a valid cell.
type Grid struct {
	cells  []Cell
	dirty  *bitset.BitSet
	width  int
	height int
}

// Creates a new grid filled with [Blank] cells. All the cells start
// dirty, as nothing has been presented yet. Negative sizes panic.
func New(width, height int) *Grid {
	if width < 0 || height < 0 { panic("negative grid size") }
	grid := &Grid{
		cells:  make([]Cell, width*height),
		dirty:  bitset.New(uint(width*height)),
		width:  width,
		height: height,
	}
	for i := range grid.cells { grid.cells[i] = Blank }
	grid.MarkAllDirty()
	return grid
}

// Returns the grid width in cells.
func (self *Grid) Width() int { return self.width }

// Returns the grid height in cells.
func (self *Grid) Height() int { return self.height }

// Returns the grid bounds in cells, starting at (0, 0).
func (self *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, self.width, self.height)
}

// Reports whether (x, y) is inside the grid.
func (self *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < self.width && y < self.height
}

// Returns the cell at (x, y), or an error wrapping [ErrOutOfBounds].
func (self *Grid) Cell(x, y int) (Cell, error) {
	if !self.InBounds(x, y) { return Cell{}, self.boundsErr(x, y) }
	return self.cells[y*self.width + x], nil
}

// Sets the cell at (x, y), or returns an error wrapping [ErrOutOfBounds].
// The coordinate is marked dirty if the stored value changes.
func (self *Grid) SetCell(x, y int, cell Cell) error {
	if !self.InBounds(x, y) { return self.boundsErr(x, y) }
	self.set(y*self.width + x, cell)
	return nil
}

// Fills the given rect (clipped to the grid) with the cell. Returns
// the number of cells that changed.
func (self *Grid) Fill(rect image.Rectangle, cell Cell) int {
	rect = rect.Intersect(self.Bounds())
	changes := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if self.set(y*self.width + x, cell) { changes += 1 }
		}
	}
	return changes
}

// Sets all the cells in the grid to the given one.
func (self *Grid) Clear(cell Cell) {
	for i := range self.cells { self.set(i, cell) }
}

// Copies all the cells of the grid onto the target grid, with the
// top-left corner placed at the given position. Cells falling outside
// the target are ignored. Changed target cells are marked dirty in the
// target. Returns the number of cells that changed.
//
// This is used to stack a parent surface beneath floating layers.
func (self *Grid) CopyOnto(target *Grid, at image.Point) int {
	area := self.Bounds().Add(at).Intersect(target.Bounds())
	changes := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		srcRow := (y - at.Y)*self.width - at.X
		dstRow := y*target.width
		for x := area.Min.X; x < area.Max.X; x++ {
			if target.set(dstRow + x, self.cells[srcRow + x]) { changes += 1 }
		}
	}
	return changes
}

// Marks the given coordinate as dirty even if it didn't change.
func (self *Grid) MarkDirty(x, y int) error {
	if !self.InBounds(x, y) { return self.boundsErr(x, y) }
	self.dirty.Set(uint(y*self.width + x))
	return nil
}

// Marks the whole grid as dirty.
func (self *Grid) MarkAllDirty() {
	self.dirty.ClearAll()
	self.dirty.FlipRange(0, uint(len(self.cells)))
}

// Returns the current dirty region and clears the grid's dirty state.
func (self *Grid) TakeDirty() Region {
	region := self.PeekDirty()
	self.dirty.ClearAll()
	return region
}

// Returns the current dirty region without clearing it.
func (self *Grid) PeekDirty() Region {
	return Region{ set: self.dirty.Clone(), width: self.width, height: self.height }
}

// Stores the cell and marks it dirty if it changed. Returns whether
// it changed.
func (self *Grid) set(index int, cell Cell) bool {
	if self.cells[index] == cell { return false }
	self.cells[index] = cell
	self.dirty.Set(uint(index))
	return true
}

func (self *Grid) boundsErr(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrOutOfBounds, x, y, self.width, self.height)
}
