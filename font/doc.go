// The font subpackage contains helper functions to parse fonts and
// obtain information from them (name, family, missing glyphs, etc.),
// plus a bundled default font.
//
// Grids work best with monospaced fonts. Proportional fonts can still
// be used, but all glyphs will be centered in cells of the dominant
// advance, and glyphs with other advances will be excluded from the
// sheets created from them.
package font
