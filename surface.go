package tgrid

import "image"
import "errors"
import "sync/atomic"

// Returned (wrapped) by surfaces when the visible buffer has been lost
// or invalidated during a present (e.g. the window was resized). The
// renderer retries the frame with a full repaint when it sees it.
var ErrSurfaceLost = errors.New("surface lost")

// A Surface is the visible side of a double buffered renderer.
//
// Present must copy the given rects of the back buffer to the visible
// buffer. The rects are always contained in the back buffer bounds, and
// the back buffer must not be retained after Present returns. If the
// visible buffer was lost, the returned error must wrap [ErrSurfaceLost].
type Surface interface {
	Present(back *image.RGBA, rects []image.Rectangle) error
}

var _ Surface = (*ImageSurface)(nil)

// An in-memory [Surface]. Useful for tests, screenshots and any
// offscreen rendering.
type ImageSurface struct {
	front    *image.RGBA
	presents int
	losses   atomic.Int32
}

// Creates an empty image surface. The front buffer is allocated on
// the first present.
func NewImageSurface() *ImageSurface {
	return &ImageSurface{ front: image.NewRGBA(image.Rectangle{}) }
}

// Returns the visible buffer. It must be treated as read-only.
func (self *ImageSurface) Image() *image.RGBA { return self.front }

// Returns the number of successful presents.
func (self *ImageSurface) Presents() int { return self.presents }

// Makes the next n presents fail with [ErrSurfaceLost]. The front
// buffer is discarded on each lost present, like a real surface would
// do on a resize.
func (self *ImageSurface) LoseNext(n int) { self.losses.Store(int32(n)) }

// Implements [Surface].Present().
func (self *ImageSurface) Present(back *image.RGBA, rects []image.Rectangle) error {
	if self.losses.Load() > 0 {
		self.losses.Add(-1)
		self.front = image.NewRGBA(back.Rect)
		return ErrSurfaceLost
	}

	if self.front.Rect != back.Rect {
		self.front = image.NewRGBA(back.Rect)
		rects = []image.Rectangle{ back.Rect }
	}
	for _, rect := range rects {
		rect = rect.Intersect(back.Rect)
		width := rect.Dx()*4
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			src, dst := back.PixOffset(rect.Min.X, y), self.front.PixOffset(rect.Min.X, y)
			copy(self.front.Pix[dst : dst + width], back.Pix[src : src + width])
		}
	}
	self.presents += 1
	return nil
}
