package paint

import "image"
import "image/color"
import "testing"

func TestColorize(t *testing.T) {
	mask := image.NewAlpha(image.Rect(-2, -3, 2, 1))
	mask.SetAlpha(-2, -3, color.Alpha{255})
	mask.SetAlpha(1, 0, color.Alpha{128})

	clr := color.RGBA{200, 100, 50, 255}
	out := Colorize(mask, clr)
	if out.Rect != image.Rect(0, 0, 4, 4) { t.Fatalf("unexpected bounds %v", out.Rect) }
	if out.RGBAAt(0, 0) != clr { t.Fatalf("expected %v, got %v", clr, out.RGBAAt(0, 0)) }

	half := out.RGBAAt(3, 3)
	if half.A != 128 || half.R != 100 || half.G != 50 || half.B != 25 {
		t.Fatalf("unexpected half alpha pixel %v", half)
	}
	if out.RGBAAt(1, 1) != (color.RGBA{}) { t.Fatal("expected transparent pixel") }

	// purity: same input, same output
	again := Colorize(mask, clr)
	for i := range out.Pix {
		if out.Pix[i] != again.Pix[i] { t.Fatal("colorize is not deterministic") }
	}
}

func TestScaleMatchesExactDivision(t *testing.T) {
	for value := 0; value < 256; value++ {
		for alpha := 0; alpha < 256; alpha++ {
			want := uint8((value*alpha + 127)/255)
			got := scale(uint8(value), uint8(alpha))
			if got != want && got != want + 1 && got + 1 != want {
				t.Fatalf("scale(%d, %d): expected ~%d, got %d", value, alpha, want, got)
			}
			if alpha == 255 && got != uint8(value) { t.Fatalf("scale(%d, 255) = %d", value, got) }
			if alpha == 0 && got != 0 { t.Fatalf("scale(%d, 0) = %d", value, got) }
		}
	}
}

func TestFillAndPlaceholder(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 10, 10))
	clr := color.RGBA{1, 2, 3, 255}
	Fill(target, image.Rect(2, 3, 7, 5), clr)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 7 && y >= 3 && y < 5
			got := target.RGBAAt(x, y)
			if inside && got != clr { t.Fatalf("(%d, %d) not filled", x, y) }
			if !inside && got != (color.RGBA{}) { t.Fatalf("(%d, %d) filled outside rect", x, y) }
		}
	}

	Fill(target, image.Rect(8, 8, 20, 20), clr) // clipped
	if target.RGBAAt(9, 9) != clr { t.Fatal("clipped fill failed") }

	block := Placeholder(3, 2)
	if block.RGBAAt(2, 1) != PlaceholderColor { t.Fatal("expected magenta placeholder") }
}

func TestBlitBlendsOver(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Fill(target, target.Rect, color.RGBA{0, 0, 255, 255})
	glyph := image.NewRGBA(image.Rect(0, 0, 2, 2))
	glyph.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	Blit(target, glyph, image.Pt(1, 1))
	if target.RGBAAt(1, 1) != (color.RGBA{255, 0, 0, 255}) { t.Fatal("expected glyph pixel") }
	if target.RGBAAt(2, 2) != (color.RGBA{0, 0, 255, 255}) { t.Fatal("transparent pixel must keep background") }
}

func TestRectPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := range img.Pix { img.Pix[i] = uint8(i) }

	// whole rows are not copied
	rows := RectPixels(img, image.Rect(0, 1, 4, 3), nil)
	if len(rows) != 32 || &rows[0] != &img.Pix[16] { t.Fatal("expected a direct slice of the image pixels") }

	buffer := make([]byte, 0, 4)
	pixels := RectPixels(img, image.Rect(1, 1, 3, 3), buffer)
	if len(pixels) != 16 { t.Fatalf("expected 16 bytes, got %d", len(pixels)) }
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			expected := img.RGBAAt(1 + x, 1 + y)
			o := (y*2 + x)*4
			got := color.RGBA{pixels[o], pixels[o + 1], pixels[o + 2], pixels[o + 3]}
			if got != expected { t.Fatalf("pixel (%d, %d): expected %v, got %v", x, y, expected, got) }
		}
	}
}
