package grid

import "image"

import "github.com/bits-and-blooms/bitset"

// A snapshot of the cells that may have changed since the last present.
// Regions are independent from the grid they come from.
type Region struct {
	set    *bitset.BitSet // nil for full and zero regions
	width  int
	height int
	full   bool
}

// Returns a region covering a whole width x height grid.
func FullRegion(width, height int) Region {
	return Region{ width: width, height: height, full: true }
}

// Whether the region covers the whole grid.
func (self Region) Full() bool {
	if self.full { return true }
	return self.width*self.height > 0 && self.count() == self.width*self.height
}

// Returns the number of cells in the region.
func (self Region) Len() int {
	if self.full { return self.width*self.height }
	return self.count()
}

func (self Region) count() int {
	if self.set == nil { return 0 }
	return int(self.set.Count())
}

// Calls fn for each index in the set, in ascending order.
func (self Region) eachIndex(fn func(index int)) {
	if self.set == nil { return }
	for i, found := self.set.NextSet(0); found; i, found = self.set.NextSet(i + 1) {
		fn(int(i))
	}
}

// Whether the region contains the given cell.
func (self Region) Contains(x, y int) bool {
	if x < 0 || y < 0 || x >= self.width || y >= self.height { return false }
	if self.full { return true }
	return self.set != nil && self.set.Test(uint(y*self.width + x))
}

// Returns the size of the grid the region refers to.
func (self Region) GridSize() image.Point {
	return image.Pt(self.width, self.height)
}

// Calls fn for each cell in the region, in row-major order.
func (self Region) Each(fn func(x, y int)) {
	if self.full {
		for y := 0; y < self.height; y++ {
			for x := 0; x < self.width; x++ { fn(x, y) }
		}
		return
	}
	self.eachIndex(func(index int) {
		fn(index % self.width, index / self.width)
	})
}

// Returns the region as a list of non-overlapping rectangles in
// cell coordinates. Horizontal runs of cells are merged first, and
// runs with the same column span on consecutive rows are merged
// into taller rectangles.
func (self Region) Rects() []image.Rectangle {
	if self.width*self.height == 0 { return nil }
	if self.full { return []image.Rectangle{ image.Rect(0, 0, self.width, self.height) } }

	var rects []image.Rectangle
	prevOpen := make(map[[2]int]int) // column span => rect index, for the previous row
	currOpen := make(map[[2]int]int)
	currY, runStart, runEnd := -1, 0, 0

	flush := func() {
		span := [2]int{runStart, runEnd}
		index, found := prevOpen[span]
		if found && rects[index].Max.Y == currY {
			rects[index].Max.Y = currY + 1
		} else {
			rects = append(rects, image.Rect(runStart, currY, runEnd, currY + 1))
			index = len(rects) - 1
		}
		currOpen[span] = index
	}

	self.eachIndex(func(index int) {
		x, y := index % self.width, index / self.width
		if y == currY && x == runEnd { runEnd += 1 ; return }
		if currY >= 0 { flush() }
		if y != currY {
			prevOpen, currOpen = currOpen, prevOpen
			clear(currOpen)
			currY = y
		}
		runStart, runEnd = x, x + 1
	})
	if currY >= 0 { flush() }
	return rects
}

// Returns the region extended to whole glyph spans: continuation cells
// pull in the cell that leads their span, and leading cells pull in all
// the continuation cells to their right. Repainting only part of a wide
// glyph would leave it cut, so renderers expand dirty regions this way.
func (self *Grid) ExpandToSpans(region Region) Region {
	if region.full || region.width != self.width || region.height != self.height {
		return FullRegion(self.width, self.height)
	}

	expanded := bitset.New(uint(self.width*self.height))
	if region.set != nil { expanded.InPlaceUnion(region.set) }
	region.eachIndex(func(index int) {
		row := index - index % self.width
		lead := index
		for lead > row && self.cells[lead].IsContinuation() { lead -= 1 }
		expanded.Set(uint(lead))
		end := row + self.width
		for i := lead + 1; i < end && self.cells[i].IsContinuation(); i++ {
			expanded.Set(uint(i))
		}
	})
	return Region{ set: expanded, width: self.width, height: self.height }
}

// Returns the number of cells covered by the glyph starting at (x, y):
// 1 plus the number of continuation cells that follow it on the row.
// Returns 0 for continuation cells and coordinates out of bounds.
func (self *Grid) SpanAt(x, y int) int {
	if !self.InBounds(x, y) { return 0 }
	index := y*self.width + x
	if self.cells[index].IsContinuation() { return 0 }
	span := 1
	for x + span < self.width && self.cells[index + span].IsContinuation() { span += 1 }
	return span
}
