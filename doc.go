// tgrid is a package for drawing grids of character cells on raster
// surfaces, like terminals and roguelikes do, designed to be used mainly
// with the Ebitengine game engine.
//
// Common usage depends only on a few types. First, you create a glyph
// sheet and a cache for it:
//   sheet, err := mask.NewOutlineSheet(font.Default(), mask.OutlineOptions{ Size: 16 })
//   if err != nil { ... }
//   glyphs := cache.New(sheet, cache.Options{})
//
// Then you create a [Renderer] for your target [Surface] and a grid
// of the size you want:
//   renderer := tgrid.NewRenderer(sheet, glyphs, surface)
//   cells := grid.New(80, 25)
//
// Finally, you write cells and present them:
//   cells.PutString(0, 0, "Hello world!", white, black)
//   err := renderer.Present(cells)
//
// Only the cells that changed since the previous present are repainted,
// and only their pixels are copied to the surface. Cells may also have
// transform chains attached (see the shader subpackage) to blur, flip or
// make glyphs glow. The rendered glyphs are cached by code point, color
// and chain, so after the first frames most of the work is just copying
// pixels around.
package tgrid
