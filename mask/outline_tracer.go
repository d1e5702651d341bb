package mask

import "image"
import "image/draw"

import "golang.org/x/image/vector"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

// A thin wrapper around [vector.Rasterizer] that draws sfnt outlines
// translated by a floating point offset. The x/image/vector rasterizer
// expects coordinates in the positive quadrant, which is what the
// offset is for.
type outlineTracer struct {
	rasterizer vector.Rasterizer
	offsetX float32
	offsetY float32
}

func (self *outlineTracer) point(point fixed.Point26_6) (float32, float32) {
	return float32(point.X)/64 + self.offsetX, float32(point.Y)/64 + self.offsetY
}

// Rasterizes the outline into a new alpha mask of the given size.
// The outline origin (dot) is placed at the tracer offset.
func (self *outlineTracer) Rasterize(outline sfnt.Segments, width, height int) *image.Alpha {
	self.rasterizer.Reset(width, height)
	self.rasterizer.DrawOp = draw.Src
	mask := image.NewAlpha(image.Rect(0, 0, width, height))

	// outlines without lines or curves (e.g. spaces) leave the mask empty
	drawable := false
	for _, segment := range outline {
		if segment.Op != sfnt.SegmentOpMoveTo { drawable = true ; break }
	}
	if !drawable { return mask }

	for _, segment := range outline {
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := self.point(segment.Args[0])
			self.rasterizer.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := self.point(segment.Args[0])
			self.rasterizer.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := self.point(segment.Args[0])
			tx, ty := self.point(segment.Args[1])
			self.rasterizer.QuadTo(cx, cy, tx, ty)
		case sfnt.SegmentOpCubeTo:
			cax, cay := self.point(segment.Args[0])
			cbx, cby := self.point(segment.Args[1])
			tx , ty  := self.point(segment.Args[2])
			self.rasterizer.CubeTo(cax, cay, cbx, cby, tx, ty)
		default:
			panic("unexpected segment.Op case")
		}
	}

	// the source is uniform, so the sampling point is irrelevant
	self.rasterizer.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
