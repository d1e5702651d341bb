// The grid subpackage implements the cell grid that widgets write into
// and renderers read from.
//
// A [Grid] is a fixed-size, flat array of [Cell] values. Cells are plain
// comparable values overwritten in place, and each grid keeps a dirty
// bitset with the cells that changed since the last time the dirty state
// was taken with [Grid.TakeDirty](). Renderers use the resulting [Region]
// to repaint only what changed.
//
// Grids are not safe for concurrent mutation. See the layer subpackage
// for the recommended way to combine widgets updated from other goroutines.
package grid
