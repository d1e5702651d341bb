package mask

import "fmt"
import "image"
import "log/slog"

import "golang.org/x/text/encoding/charmap"

// Code page 437 graphic characters for the control range. The
// charmap decoder maps these bytes to control codes, but tilesets
// draw them as symbols.
var cp437Controls = [32]rune{
	0x0000, '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// Returns the code point drawn by the given tile index in a code
// page 437 tileset.
func CP437Rune(index byte) rune {
	if index < 0x20 { return cp437Controls[index] }
	if index == 0x7F { return '⌂' }
	return charmap.CodePage437.DecodeByte(index)
}

// Slices a classic code page 437 tileset (cols x rows tiles, laid out
// row by row in code page order) into a [BitmapSheet]. Tile 0 is skipped.
//
// The mask alpha for each pixel is its premultiplied luminance, which
// works both for white glyphs on transparent backgrounds and for white
// glyphs on opaque black backgrounds.
func NewTileSheet(tileset image.Image, cols, rows int, logger *slog.Logger) (*BitmapSheet, error) {
	if cols <= 0 || rows <= 0 || cols*rows > 256 {
		return nil, fmt.Errorf("invalid tileset layout %dx%d", cols, rows)
	}
	bounds := tileset.Bounds()
	if bounds.Dx() % cols != 0 || bounds.Dy() % rows != 0 {
		return nil, fmt.Errorf("tileset size %v not divisible into %dx%d tiles", bounds.Size(), cols, rows)
	}
	tileWidth, tileHeight := bounds.Dx()/cols, bounds.Dy()/rows

	masks := make(map[rune]*image.Alpha, cols*rows)
	for index := 1; index < cols*rows; index++ {
		ox := bounds.Min.X + (index % cols)*tileWidth
		oy := bounds.Min.Y + (index / cols)*tileHeight
		masks[CP437Rune(byte(index))] = tileMask(tileset, ox, oy, tileWidth, tileHeight)
	}
	return NewBitmapSheet(masks, logger)
}

func tileMask(tileset image.Image, ox, oy, width, height int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := tileset.At(ox + x, oy + y).RGBA()
			lum := (299*r + 587*g + 114*b)/1000
			mask.Pix[y*mask.Stride + x] = uint8(lum >> 8)
		}
	}
	return mask
}
