// The cache subpackage provides the [GlyphCache] used by grid renderers
// to avoid rasterizing, colorizing and transforming the same glyph more
// than once.
//
// Glyphs are identified by a [Key]: code point, foreground color and
// transform chain. Backgrounds are painted separately by the renderer,
// so they are not part of the key. Two equal keys always produce the
// same image, which is what makes caching them valid at all.
//
// By default, caches are unbounded. This is fine for most terminal-like
// applications: the set of code points on screen is small and colors
// tend to come from a palette. If you use transform chains or colors that
// change every frame (animated glows, gradients, fades), the number of
// distinct keys can grow without limit, and you should set a capacity
// with [Options] to use an LRU store instead. Color quantization on the
// renderer side can also help a lot in these cases.
//
// To give a concrete size reference: a Go Mono cell at 16px is 10x20
// pixels, which takes 800 bytes as RGBA. Caching a full printable ASCII
// set in 8 colors takes around 600KiB. [GlyphCache.Stats] reports the
// approximate memory usage if you need to tune the capacity.
package cache
