// The paint subpackage contains the small pure functions that turn
// glyph masks into colored images and fill cell backgrounds.
package paint

import "image"
import "image/color"
import "image/draw"

// The color used for the placeholder of unsupported glyphs.
var PlaceholderColor = color.RGBA{255, 0, 255, 255}

// Tints the given alpha mask with the given color. For each mask
// pixel, the output is the color with its (premultiplied) channels
// scaled by the mask alpha. The result always starts at (0, 0).
//
// Colorize has no side effects and doesn't retain the mask, so it
// can be safely memoized.
func Colorize(mask *image.Alpha, clr color.RGBA) *image.RGBA {
	if mask == nil { return image.NewRGBA(image.Rectangle{}) }
	width, height := mask.Rect.Dx(), mask.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	if clr.A == 0 { return out }

	for y := 0; y < height; y++ {
		maskRow := mask.Pix[y*mask.Stride : y*mask.Stride + width]
		outRow  := out.Pix[y*out.Stride : y*out.Stride + width*4]
		for x, alpha := range maskRow {
			if alpha == 0 { continue }
			o := x*4
			outRow[o + 0] = scale(clr.R, alpha)
			outRow[o + 1] = scale(clr.G, alpha)
			outRow[o + 2] = scale(clr.B, alpha)
			outRow[o + 3] = scale(clr.A, alpha)
		}
	}
	return out
}

// Returns a solid [PlaceholderColor] block of the given size.
func Placeholder(width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	Fill(out, out.Rect, PlaceholderColor)
	return out
}

// Fills the given rect of the target with the color, replacing what
// was there (no blending).
func Fill(target draw.Image, rect image.Rectangle, clr color.RGBA) {
	if rgba, isRGBA := target.(*image.RGBA); isRGBA {
		fillRGBA(rgba, rect, clr)
		return
	}
	draw.Draw(target, rect, image.NewUniform(clr), image.Point{}, draw.Src)
}

// Draws the glyph image over the target with its top-left corner
// at the given point, using source-over blending.
func Blit(target draw.Image, glyph *image.RGBA, at image.Point) {
	if glyph == nil { return }
	rect := image.Rectangle{ Min: at, Max: at.Add(glyph.Rect.Size()) }
	draw.Draw(target, rect, glyph, glyph.Rect.Min, draw.Over)
}

func fillRGBA(target *image.RGBA, rect image.Rectangle, clr color.RGBA) {
	rect = rect.Intersect(target.Rect)
	if rect.Empty() { return }
	
	// fill the first row and replicate it
	first := target.PixOffset(rect.Min.X, rect.Min.Y)
	rowLen := rect.Dx()*4
	row := target.Pix[first : first + rowLen]
	row[0], row[1], row[2], row[3] = clr.R, clr.G, clr.B, clr.A
	for filled := 4; filled < rowLen; filled *= 2 {
		copy(row[filled:], row[:filled])
	}
	for y := rect.Min.Y + 1; y < rect.Max.Y; y++ {
		offset := target.PixOffset(rect.Min.X, y)
		copy(target.Pix[offset : offset + rowLen], row)
	}
}

// (value*alpha)/255 with rounding.
func scale(value, alpha uint8) uint8 {
	product := uint32(value)*uint32(alpha) + 128
	return uint8((product + (product >> 8)) >> 8)
}

// Returns the pixels of the given rect of img, packed row after row
// as expected by APIs like ebiten.Image.WritePixels(). The rect must
// be contained in the image bounds. If the rect spans whole rows, the
// image pixels are returned directly. Otherwise, they are copied into
// buffer (grown if needed), and the resliced buffer is returned.
func RectPixels(img *image.RGBA, rect image.Rectangle, buffer []byte) []byte {
	rowLen := rect.Dx()*4
	start := img.PixOffset(rect.Min.X, rect.Min.Y)
	if rowLen == img.Stride {
		return img.Pix[start : start + rowLen*rect.Dy()]
	}

	size := rowLen*rect.Dy()
	if cap(buffer) < size { buffer = make([]byte, size) }
	buffer = buffer[:size]
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		offset := img.PixOffset(rect.Min.X, y)
		copy(buffer[(y - rect.Min.Y)*rowLen:], img.Pix[offset : offset + rowLen])
	}
	return buffer
}
