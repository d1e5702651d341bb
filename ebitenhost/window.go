// The ebitenhost subpackage presents tgrid renderers on an Ebitengine
// window.
//
// The [Window] is both the ebiten.Game and the tgrid.Surface: create a
// renderer that presents to it, and set a frame function that updates
// your grids and calls Present. The frame function runs on each tick
// on the game goroutine, so grids never need to be locked.
package ebitenhost

import "fmt"
import "image"
import "sync/atomic"

import "github.com/hajimehoshi/ebiten/v2"

import "github.com/tinne26/tgrid"
import "github.com/tinne26/tgrid/paint"

var _ ebiten.Game = (*Window)(nil)
var _ tgrid.Surface = (*Window)(nil)

// An ebiten.Game that displays the frames presented to it, scaled by
// the largest integer factor that fits the window.
type Window struct {
	frame  func() error
	front  *ebiten.Image
	buffer []byte

	layoutWidth  atomic.Int32
	layoutHeight atomic.Int32
	generation   atomic.Uint64 // incremented on layout size changes
}

// Creates a new window that calls the given frame function on each
// update. If the function returns an error, the game loop stops and
// ebiten.RunGame() returns that error.
func New(frame func() error) *Window {
	return &Window{ frame: frame }
}

// Runs the game loop until the window is closed or the frame function
// fails. The initial window size is the grid size in pixels times the
// given scale.
func (self *Window) Run(title string, width, height, scale int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width*max(scale, 1), height*max(scale, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(self)
}

// Implements ebiten.Game.Layout().
func (self *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	prevWidth  := self.layoutWidth.Swap(int32(outsideWidth))
	prevHeight := self.layoutHeight.Swap(int32(outsideHeight))
	if int(prevWidth) != outsideWidth || int(prevHeight) != outsideHeight {
		self.generation.Add(1)
	}
	return outsideWidth, outsideHeight
}

// Implements ebiten.Game.Update().
func (self *Window) Update() error {
	if self.frame == nil { return nil }
	return self.frame()
}

// Implements ebiten.Game.Draw().
func (self *Window) Draw(screen *ebiten.Image) {
	if self.front == nil { return }
	screenSize := screen.Bounds().Size()
	frontSize  := self.front.Bounds().Size()
	scale := min(screenSize.X/max(frontSize.X, 1), screenSize.Y/max(frontSize.Y, 1))
	if scale < 1 { scale = 1 }

	var opts ebiten.DrawImageOptions
	opts.GeoM.Scale(float64(scale), float64(scale))
	opts.GeoM.Translate(
		float64((screenSize.X - frontSize.X*scale)/2),
		float64((screenSize.Y - frontSize.Y*scale)/2),
	)
	opts.Filter = ebiten.FilterNearest
	screen.DrawImage(self.front, &opts)
}

// Implements [tgrid.Surface].Present(). If the window layout changes
// while presenting, the error wraps [tgrid.ErrSurfaceLost].
func (self *Window) Present(back *image.RGBA, rects []image.Rectangle) error {
	generation := self.generation.Load()
	if back.Rect.Empty() { return nil }
	if self.front == nil || self.front.Bounds() != back.Rect {
		if self.front != nil { self.front.Deallocate() }
		self.front = ebiten.NewImage(back.Rect.Dx(), back.Rect.Dy())
		rects = []image.Rectangle{ back.Rect }
	}

	for _, rect := range rects {
		rect = rect.Intersect(back.Rect)
		if rect.Empty() { continue }
		pixels := paint.RectPixels(back, rect, self.buffer)
		if rect.Dx()*4 != back.Stride { self.buffer = pixels } // reuse the copy buffer
		self.front.SubImage(rect).(*ebiten.Image).WritePixels(pixels)
	}

	if self.generation.Load() != generation {
		return fmt.Errorf("window layout changed while presenting: %w", tgrid.ErrSurfaceLost)
	}
	return nil
}
