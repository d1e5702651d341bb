package tgrid

import "fmt"
import "image"
import "image/color"
import "errors"

import "github.com/tinne26/tgrid/cache"
import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/paint"

// Repaints the dirty cells of the grid and presents them. The grid's
// dirty state is cleared, even if presenting fails (in which case the
// next present will repaint everything anyway).
//
// Errors wrapping [ErrSurfaceLost] are retried up to [MaxPresentAttempts]
// times. They are not fatal: the caller can keep presenting frames.
func (self *Renderer) Present(cells *grid.Grid) error {
	return self.PresentRegion(cells, cells.TakeDirty())
}

// Like [Renderer.Present](), but repaints the given region instead of
// taking the grid's dirty state. The region is still extended to whole
// glyph spans, and it's ignored when a full redraw is required.
func (self *Renderer) PresentRegion(cells *grid.Grid, region grid.Region) error {
	resized := self.ensureBackBuffer(cells)
	full := resized || self.forceFull || cells != self.lastGrid
	self.lastGrid = cells

	before := self.glyphs.Stats()
	frame := FrameStats{}
	var err error
	for frame.Attempts < MaxPresentAttempts {
		frame.Attempts += 1
		if full { region = grid.FullRegion(cells.Width(), cells.Height()) }
		frame.Full = full
		var rects []image.Rectangle
		frame.CellsRepainted, rects = self.paint(cells, region, frame.CellsRepainted)
		err = self.surface.Present(self.back, rects)
		if err == nil || !errors.Is(err, ErrSurfaceLost) { break }
		self.logger.Debug("surface lost", "attempt", frame.Attempts, "error", err)
		full = true
	}

	delta := self.glyphs.Stats().Since(before)
	frame.CacheHits, frame.CacheMisses = delta.Hits, delta.Misses
	self.lastFrame = frame

	switch {
	case err == nil:
		self.forceFull = false
		return nil
	case errors.Is(err, ErrSurfaceLost):
		self.forceFull = true
		self.logger.Warn("surface still lost after retries", "attempts", frame.Attempts, "error", err)
		return fmt.Errorf("present failed after %d attempts: %w", frame.Attempts, err)
	default:
		self.forceFull = true
		return fmt.Errorf("present failed: %w", err)
	}
}

// Makes sure the back buffer matches the grid size. Returns true if
// it had to be reallocated.
func (self *Renderer) ensureBackBuffer(cells *grid.Grid) bool {
	bounds := image.Rect(0, 0, cells.Width()*self.cellWidth, cells.Height()*self.cellHeight)
	if self.back != nil && self.back.Rect == bounds { return false }
	self.back = image.NewRGBA(bounds)
	return true
}

// Paints the region (extended to glyph spans) into the back buffer and
// returns the updated repaint count and the pixel rects to present.
func (self *Renderer) paint(cells *grid.Grid, region grid.Region, count int) (int, []image.Rectangle) {
	region = cells.ExpandToSpans(region)
	if region.Len() == 0 { return count, nil }

	// backgrounds first, so wide glyphs are not overwritten by the
	// backgrounds of their continuation cells
	region.Each(func(x, y int) {
		cell, _ := cells.Cell(x, y)
		paint.Fill(self.back, self.cellRect(x, y, 1), flatten(cell.Background, self.clearColor))
	})

	region.Each(func(x, y int) {
		span := cells.SpanAt(x, y)
		if span == 0 { return } // continuation
		cell, _ := cells.Cell(x, y)
		key := cache.KeyOf(cell).Quantized(self.quantization)
		glyph := self.glyphs.GetOrRender(key)
		clip := self.back.SubImage(self.cellRect(x, y, span)).(*image.RGBA)
		paint.Blit(clip, glyph, clip.Rect.Min)
	})

	cellRects := region.Rects()
	rects := make([]image.Rectangle, len(cellRects))
	for i, rect := range cellRects {
		rects[i] = image.Rect(
			rect.Min.X*self.cellWidth, rect.Min.Y*self.cellHeight,
			rect.Max.X*self.cellWidth, rect.Max.Y*self.cellHeight,
		)
	}
	return count + region.Len(), rects
}

func (self *Renderer) cellRect(x, y, span int) image.Rectangle {
	origin := image.Pt(x*self.cellWidth, y*self.cellHeight)
	return image.Rectangle{ Min: origin, Max: origin.Add(image.Pt(span*self.cellWidth, self.cellHeight)) }
}

// Composites the (premultiplied) color over an opaque base.
func flatten(clr, base color.RGBA) color.RGBA {
	if clr.A == 255 { return clr }
	inv := 255 - uint32(clr.A)
	over := func(top, bottom uint8) uint8 {
		return uint8(uint32(top) + (uint32(bottom)*inv + 127)/255)
	}
	return color.RGBA{ over(clr.R, base.R), over(clr.G, base.G), over(clr.B, base.B), over(clr.A, base.A) }
}
