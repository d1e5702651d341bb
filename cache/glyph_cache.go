package cache

import "image"
import "errors"
import "sync"
import "sync/atomic"
import "log/slog"

import "github.com/tinne26/tgrid/mask"
import "github.com/tinne26/tgrid/paint"
import "github.com/tinne26/tgrid/internal/nolog"

// Configuration for [New]. The zero value is a valid configuration.
type Options struct {
	// Maximum number of cached glyph images. Zero means unbounded.
	// Positive values select an LRU store.
	Capacity int

	// Store to use instead of the one selected by Capacity.
	Store Store

	// Logger for unsupported glyphs, invalid transform chains and
	// evictions. Nil disables logging.
	Logger *slog.Logger
}

// A GlyphCache renders and caches glyph images for a single sheet.
// It's safe for concurrent use.
//
// Returned images are shared and must be treated as read-only.
type GlyphCache struct {
	sheet  mask.Sheet
	store  Store
	logger *slog.Logger

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	bytes     atomic.Int64

	loggedGlyphs sync.Map // rune => struct{}
	loggedChains sync.Map // string => struct{}
}

// Creates a new glyph cache for the given sheet. A nil sheet will panic.
func New(sheet mask.Sheet, opts Options) *GlyphCache {
	if sheet == nil { panic("nil sheet") }
	store := opts.Store
	if store == nil {
		if opts.Capacity < 0 { panic("negative capacity") }
		if opts.Capacity == 0 {
			store = NewUnbounded()
		} else {
			store = NewLRU(opts.Capacity)
		}
	}
	return &GlyphCache{
		sheet:  sheet,
		store:  store,
		logger: nolog.Or(opts.Logger),
	}
}

// Returns the sheet used to rasterize glyphs.
func (self *GlyphCache) Sheet() mask.Sheet { return self.sheet }

// Returns the glyph image for the given key. On a cache miss, the
// glyph is rasterized, colorized and transformed, and the result is
// stored before returning it, so a later hit returns the same image.
//
// Unsupported code points are rendered as a [paint.Placeholder] of the
// cell size. Transform chains are not applied to placeholders.
func (self *GlyphCache) GetOrRender(key Key) *image.RGBA {
	img, found := self.store.Get(key)
	if found {
		self.hits.Add(1)
		return img
	}
	self.misses.Add(1)

	img = self.render(key)
	replaced, evicted := self.store.Put(key, img)
	self.bytes.Add(ImageByteSize(img) - ImageByteSize(replaced) - ImageByteSize(evicted))
	if evicted != nil {
		self.evictions.Add(1)
		self.logger.Debug("glyph evicted", "entries", self.store.Len())
	}
	return img
}

// Whether the key is currently cached. Doesn't affect the statistics
// nor the LRU order.
func (self *GlyphCache) Contains(key Key) bool {
	_, found := self.store.Peek(key)
	return found
}

// Removes all the cached glyphs. Statistics are kept, except for the
// approximate size.
func (self *GlyphCache) Clear() {
	self.store.Clear()
	self.bytes.Store(0)
}

func (self *GlyphCache) render(key Key) *image.RGBA {
	alpha, err := mask.Rasterize(self.sheet, key.CodePoint)
	if err != nil {
		if _, logged := self.loggedGlyphs.LoadOrStore(key.CodePoint, struct{}{}); !logged {
			if errors.Is(err, mask.ErrUnsupportedGlyph) {
				self.logger.Debug("using placeholder glyph", "error", err)
			} else {
				self.logger.Warn("glyph rasterization failed", "error", err)
			}
		}
		return paint.Placeholder(self.sheet.CellSize())
	}

	if err := key.Chain.Validate(); err != nil {
		if _, logged := self.loggedChains.LoadOrStore(key.Chain.Key(), struct{}{}); !logged {
			self.logger.Debug("invalid transforms in chain", "chain", key.Chain.String(), "error", err)
		}
	}
	return key.Chain.Apply(paint.Colorize(alpha, key.Color))
}
