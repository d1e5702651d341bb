package cache

import "image"
import "sync"

import "github.com/hashicorp/golang-lru/v2/simplelru"

var _ Store = (*lruStore)(nil)

// All accesses to entries hold the mutex. The eviction callback runs
// inside Add, so evicted is only set while Put holds the lock.
type lruStore struct {
	entries  *simplelru.LRU[Key, *image.RGBA]
	evicted  *image.RGBA
	clearing bool
	mutex    sync.Mutex
}

// Creates a store holding at most capacity entries. When a new key is
// added to a full store, the least recently used entry is evicted.
// Non-positive capacities will panic.
func NewLRU(capacity int) Store {
	if capacity <= 0 { panic("capacity <= 0") }
	store := &lruStore{}
	entries, err := simplelru.NewLRU[Key, *image.RGBA](capacity, store.onEvict)
	if err != nil { panic(err) }
	store.entries = entries
	return store
}

func (self *lruStore) onEvict(_ Key, img *image.RGBA) {
	if self.clearing { return }
	self.evicted = img
}

func (self *lruStore) Get(key Key) (*image.RGBA, bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.entries.Get(key)
}

func (self *lruStore) Peek(key Key) (*image.RGBA, bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.entries.Peek(key)
}

func (self *lruStore) Put(key Key, img *image.RGBA) (replaced, evicted *image.RGBA) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	replaced, _ = self.entries.Peek(key)
	self.evicted = nil
	self.entries.Add(key, img)
	evicted, self.evicted = self.evicted, nil
	return replaced, evicted
}

func (self *lruStore) Len() int {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.entries.Len()
}

func (self *lruStore) Clear() {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.clearing = true
	self.entries.Purge()
	self.clearing = false
}
