// The mask subpackage defines the [Sheet] interface used to obtain glyph
// masks for grid cells and provides a few ready-to-use implementations.
//
// In this context, a "glyph mask" is an alpha image for a single code
// point, sized to fit an integer number of grid cells. A sheet determines
// the cell size from the glyphs themselves: the most frequent glyph size
// among all candidate glyphs (the "dominant" size) becomes the cell size,
// and any glyph whose size is not an integer multiple of it is excluded,
// so multi-cell glyphs always remain tile-aligned.
//
// Implementations:
//  - [OutlineSheet] rasterizes vector fonts through [golang.org/x/image/vector].
//  - [BitmapSheet] wraps pre-rendered masks.
//  - [NewTileSheet]() slices classic CP437 tileset images into a [BitmapSheet].
//
// Colorization, effects and caching happen later in the pipeline (see the
// paint, shader and cache subpackages).
package mask
