package cache

import "fmt"
import "image/color"

import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/shader"

// The structural identity of a rendered glyph. Keys are comparable and
// can be used directly as map keys. Equal keys always render to equal
// images.
type Key struct {
	CodePoint rune
	Color     color.RGBA // premultiplied foreground color
	Chain     shader.Chain
}

// Returns the key used to render the given cell's glyph.
func KeyOf(cell grid.Cell) Key {
	return Key{ CodePoint: cell.CodePoint, Color: cell.Foreground, Chain: cell.Chain }
}

// Returns the key with its color quantized to the given number of bits
// per channel. See [QuantizeColor].
func (self Key) Quantized(bits int) Key {
	self.Color = QuantizeColor(self.Color, bits)
	return self
}

func (self Key) String() string {
	return fmt.Sprintf("%U #%02X%02X%02X%02X %s", self.CodePoint,
		self.Color.R, self.Color.G, self.Color.B, self.Color.A, self.Chain.String())
}

// Keeps only the top bits of each color channel. Values of bits outside
// [1, 7] leave the color unchanged. Opaque colors stay opaque. Truncation
// is monotonic, so a valid premultiplied color stays valid.
//
// Quantizing colors reduces the number of distinct keys when colors are
// animated, at the cost of some color precision.
func QuantizeColor(clr color.RGBA, bits int) color.RGBA {
	if bits <= 0 || bits >= 8 { return clr }
	mask := uint8(0xFF << (8 - bits))
	alpha := clr.A
	if alpha != 255 { alpha &= mask }
	return color.RGBA{ clr.R & mask, clr.G & mask, clr.B & mask, alpha }
}
