package cache

import "image"

// Approximate memory overhead for each cache entry, on top of the
// image pixels (image header, key, map and list bookkeeping).
const EntryOverhead = 96

// Returns the approximate number of bytes used to cache the given
// image. Nil images take 0 bytes.
func ImageByteSize(img *image.RGBA) int64 {
	if img == nil { return 0 }
	size := img.Rect.Size()
	return int64(4*size.X*size.Y) + EntryOverhead
}

// A snapshot of the cache statistics.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Entries     int
	ApproxBytes int64
}

// Returns the ratio of hits over total lookups, or 0 if there
// haven't been any lookups yet.
func (self Stats) HitRate() float64 {
	total := self.Hits + self.Misses
	if total == 0 { return 0 }
	return float64(self.Hits)/float64(total)
}

// Returns the difference between two snapshots. Entries and
// ApproxBytes are taken from the newer snapshot.
func (self Stats) Since(older Stats) Stats {
	return Stats{
		Hits:        self.Hits - older.Hits,
		Misses:      self.Misses - older.Misses,
		Evictions:   self.Evictions - older.Evictions,
		Entries:     self.Entries,
		ApproxBytes: self.ApproxBytes,
	}
}

// Returns the current cache statistics. Counters are read individually,
// so under concurrent use the snapshot may be slightly inconsistent.
func (self *GlyphCache) Stats() Stats {
	return Stats{
		Hits:        self.hits.Load(),
		Misses:      self.misses.Load(),
		Evictions:   self.evictions.Load(),
		Entries:     self.store.Len(),
		ApproxBytes: self.bytes.Load(),
	}
}
