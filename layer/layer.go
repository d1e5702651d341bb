// The layer subpackage composes floating grids (status bars, popups,
// menus) over a base grid.
//
// Layers can be pushed and removed from any goroutine, while the render
// goroutine composes them. Since composition goes through the grid
// dirty tracking, only the cells that actually changed are repainted.
package layer

import "image"
import "sync"
import "sync/atomic"

import "github.com/tinne26/tgrid/grid"

// A grid placed at an offset over the base grid.
//
// Layer fields are guarded by the lock of the stack the layer has been
// pushed to. Before that, layers must not be used concurrently.
type Layer struct {
	cells  *grid.Grid
	at     image.Point
	hidden bool
	owner  atomic.Pointer[Stack]
}

// Creates a new visible layer showing the given grid at the given
// offset (in cells) from the base grid origin. The layer grid must
// only be mutated from the goroutine that composes the stack.
func New(cells *grid.Grid, at image.Point) *Layer {
	if cells == nil { panic("nil grid") }
	return &Layer{ cells: cells, at: at }
}

// Returns the layer grid.
func (self *Layer) Grid() *grid.Grid { return self.cells }

// Shows or hides the layer.
func (self *Layer) SetVisible(visible bool) {
	defer self.lock()()
	self.hidden = !visible
}

// Whether the layer is visible.
func (self *Layer) Visible() bool {
	defer self.rlock()()
	return !self.hidden
}

// Moves the layer to the given offset.
func (self *Layer) MoveTo(at image.Point) {
	defer self.lock()()
	self.at = at
}

// Returns the layer offset.
func (self *Layer) Position() image.Point {
	defer self.rlock()()
	return self.at
}

func (self *Layer) lock() func() {
	stack := self.owner.Load()
	if stack == nil { return func() {} }
	stack.mutex.Lock()
	return stack.mutex.Unlock
}

func (self *Layer) rlock() func() {
	stack := self.owner.Load()
	if stack == nil { return func() {} }
	stack.mutex.RLock()
	return stack.mutex.RUnlock
}

// An ordered list of layers. Later layers are drawn on top. Stacks are
// safe for concurrent use.
type Stack struct {
	layers  []*Layer
	mutex   sync.RWMutex

	scratch      *grid.Grid
	scratchMutex sync.Mutex
}

// Creates a new empty stack.
func NewStack() *Stack { return &Stack{} }

// Adds the layer on top of the stack. Pushing a layer that already
// belongs to a stack will panic.
func (self *Stack) Push(layer *Layer) {
	if !layer.owner.CompareAndSwap(nil, self) { panic("layer already in a stack") }
	self.mutex.Lock()
	self.layers = append(self.layers, layer)
	self.mutex.Unlock()
}

// Removes the layer from the stack. Returns false if the layer
// wasn't in the stack.
func (self *Stack) Remove(layer *Layer) bool {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	for i, candidate := range self.layers {
		if candidate != layer { continue }
		self.layers = append(self.layers[:i], self.layers[i + 1:]...)
		layer.owner.Store(nil)
		return true
	}
	return false
}

// Returns the number of layers in the stack.
func (self *Stack) Len() int {
	self.mutex.RLock()
	defer self.mutex.RUnlock()
	return len(self.layers)
}

// Composes the base grid and all the visible layers onto dst, which
// must have the same size as base. Only the dst cells whose final value
// changes are marked dirty, so a cell covered by the same layer frame
// after frame is never repainted, and removing a layer dirties exactly
// the cells it used to cover. Returns the number of changed cells.
func (self *Stack) Compose(base, dst *grid.Grid) int {
	self.scratchMutex.Lock()
	defer self.scratchMutex.Unlock()
	if self.scratch == nil || self.scratch.Bounds() != base.Bounds() {
		self.scratch = grid.New(base.Width(), base.Height())
	}

	base.CopyOnto(self.scratch, image.Point{})
	self.mutex.RLock()
	for _, layer := range self.layers {
		if layer.hidden { continue }
		layer.cells.CopyOnto(self.scratch, layer.at)
	}
	self.mutex.RUnlock()
	self.scratch.TakeDirty()

	return self.scratch.CopyOnto(dst, image.Point{})
}
