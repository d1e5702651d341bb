package cache

import "image"
import "sync"
import "sync/atomic"

// A Store holds rendered glyph images. Stores must be safe for
// concurrent use. Racing puts for the same key are last-write-wins.
type Store interface {
	// Returns the image stored under the key, if any.
	Get(key Key) (*image.RGBA, bool)

	// Like Get, but without counting as a use of the entry.
	Peek(key Key) (*image.RGBA, bool)

	// Stores the image under the key. The previous image for the same
	// key (if any) is returned as replaced. If the store had to drop a
	// different entry to make room, its image is returned as evicted.
	Put(key Key, img *image.RGBA) (replaced, evicted *image.RGBA)

	// Returns the number of stored entries.
	Len() int

	// Removes all the entries.
	Clear()
}

var _ Store = (*unboundedStore)(nil)

type unboundedStore struct {
	entries sync.Map // Key => *image.RGBA
	count   atomic.Int64
}

// Creates a store without any size limit. Once an entry is present,
// reads don't take any locks.
func NewUnbounded() Store {
	return &unboundedStore{}
}

func (self *unboundedStore) Get(key Key) (*image.RGBA, bool) {
	value, found := self.entries.Load(key)
	if !found { return nil, false }
	return value.(*image.RGBA), true
}

func (self *unboundedStore) Peek(key Key) (*image.RGBA, bool) {
	return self.Get(key)
}

func (self *unboundedStore) Put(key Key, img *image.RGBA) (replaced, evicted *image.RGBA) {
	previous, loaded := self.entries.Swap(key, img)
	if !loaded {
		self.count.Add(1)
		return nil, nil
	}
	return previous.(*image.RGBA), nil
}

func (self *unboundedStore) Len() int { return int(self.count.Load()) }

func (self *unboundedStore) Clear() {
	self.entries.Range(func(key, _ any) bool {
		if _, deleted := self.entries.LoadAndDelete(key); deleted {
			self.count.Add(-1)
		}
		return true
	})
}
