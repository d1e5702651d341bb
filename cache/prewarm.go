package cache

import "context"
import "runtime"

import "golang.org/x/sync/errgroup"

// Renders all the given keys concurrently so they are already cached
// when the first frames are drawn. At most workers goroutines are used
// (GOMAXPROCS if workers <= 0).
//
// Prewarm stops early and returns the context error if ctx is cancelled.
// If the cache has a capacity below len(keys), only part of the keys
// will remain cached.
func (self *GlyphCache) Prewarm(ctx context.Context, keys []Key, workers int) error {
	if workers <= 0 { workers = runtime.GOMAXPROCS(0) }
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, key := range keys {
		key := key
		if groupCtx.Err() != nil { break }
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil { return err }
			self.GetOrRender(key)
			return nil
		})
	}
	if err := group.Wait(); err != nil { return err }
	return ctx.Err()
}

// Returns one key for each code point and template pair, using the
// color and chain of the template. Useful to build [GlyphCache.Prewarm]
// inputs.
func KeysFor(codePoints []rune, templates ...Key) []Key {
	keys := make([]Key, 0, len(codePoints)*len(templates))
	for _, template := range templates {
		for _, codePoint := range codePoints {
			template.CodePoint = codePoint
			keys = append(keys, template)
		}
	}
	return keys
}
