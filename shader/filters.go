package shader

import "math"
import "image"
import "image/draw"

import xdraw "golang.org/x/image/draw"

func flip(src *image.RGBA, horz, vert bool) *image.RGBA {
	if !horz && !vert { return src }

	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		sy := y
		if vert { sy = height - 1 - y }
		srcRow := src.Pix[sy*src.Stride : sy*src.Stride + width*4]
		outRow := out.Pix[y*out.Stride : y*out.Stride + width*4]
		if !horz {
			copy(outRow, srcRow)
			continue
		}
		for x := 0; x < width; x++ {
			copy(outRow[x*4 : x*4 + 4], srcRow[(width - 1 - x)*4:])
		}
	}
	return out
}

// The blurred copy goes below, scaled by amount, and the original
// is composited over it.
func glow(src *image.RGBA, amount, radius float64) *image.RGBA {
	halo := gaussianBlur(src, radius)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			h := y*halo.Stride + x*4
			o := y*out.Stride + x*4
			srcAlpha := float64(src.Pix[i + 3])
			for c := 0; c < 4; c++ {
				base := math.Min(255, float64(halo.Pix[h + c])*amount)
				value := float64(src.Pix[i + c]) + base*(255 - srcAlpha)/255
				out.Pix[o + c] = unitToByte(float32(value))
			}
		}
	}
	return out
}

// Unsharp mask: orig + amount*(orig - blur(orig, 1)).
func sharpen(src *image.RGBA, amount float64) *image.RGBA {
	blurred := gaussianBlur(src, 1)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			b := y*blurred.Stride + x*4
			o := y*out.Stride + x*4
			for c := 0; c < 4; c++ {
				orig := float64(src.Pix[i + c])
				value := orig + amount*(orig - float64(blurred.Pix[b + c]))
				out.Pix[o + c] = unitToByte(float32(value))
			}
			clampToAlpha(out.Pix[o : o + 4])
		}
	}
	return out
}

// Sobel gradient magnitude, computed independently on each
// premultiplied channel.
func edgeDetect(src *image.RGBA) *image.RGBA {
	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	sample := func(x, y, c int) float64 {
		x = clampInt(x, 0, width - 1)
		y = clampInt(y, 0, height - 1)
		return float64(src.Pix[y*src.Stride + x*4 + c])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := y*out.Stride + x*4
			for c := 0; c < 4; c++ {
				gx := -sample(x - 1, y - 1, c) - 2*sample(x - 1, y, c) - sample(x - 1, y + 1, c) +
				       sample(x + 1, y - 1, c) + 2*sample(x + 1, y, c) + sample(x + 1, y + 1, c)
				gy := -sample(x - 1, y - 1, c) - 2*sample(x, y - 1, c) - sample(x + 1, y - 1, c) +
				       sample(x - 1, y + 1, c) + 2*sample(x, y + 1, c) + sample(x + 1, y + 1, c)
				out.Pix[o + c] = unitToByte(float32(math.Sqrt(gx*gx + gy*gy)))
			}
			clampToAlpha(out.Pix[o : o + 4])
		}
	}
	return out
}

// Downscales by the block size and scales back up with nearest
// neighbor sampling, which yields the blocky look.
func pixelate(src *image.RGBA, size int) *image.RGBA {
	if size == 1 { return src }

	width, height := src.Rect.Dx(), src.Rect.Dy()
	smallWidth  := (width  + size - 1)/size
	smallHeight := (height + size - 1)/size
	small := image.NewRGBA(image.Rect(0, 0, smallWidth, smallHeight))
	xdraw.ApproxBiLinear.Scale(small, small.Rect, src, src.Rect, draw.Src, nil)

	out := image.NewRGBA(src.Rect)
	origin := src.Rect.Min
	target := image.Rect(origin.X, origin.Y, origin.X + smallWidth*size, origin.Y + smallHeight*size)
	xdraw.NearestNeighbor.Scale(out, target, small, small.Rect, draw.Src, nil)
	return out
}

// Maps luminance plus a vertical sheen through a cosine ramp. The
// result is a bluish gray with the original alpha.
func chrome(src *image.RGBA, bands float64) *image.RGBA {
	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		sheen := 0.0
		if height > 1 { sheen = float64(y)/float64(height - 1) }
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			alpha := float64(src.Pix[i + 3])
			if alpha == 0 { continue }

			r := float64(src.Pix[i + 0])/alpha
			g := float64(src.Pix[i + 1])/alpha
			b := float64(src.Pix[i + 2])/alpha
			lum := 0.299*r + 0.587*g + 0.114*b
			ramp := 0.5 + 0.5*math.Cos((lum + sheen)*bands*math.Pi)
			gray := 64 + 191*ramp

			o := y*out.Stride + x*4
			factor := alpha/255
			out.Pix[o + 0] = unitToByte(float32(gray*0.92*factor))
			out.Pix[o + 1] = unitToByte(float32(gray*0.96*factor))
			out.Pix[o + 2] = unitToByte(float32(gray*factor))
			out.Pix[o + 3] = uint8(alpha)
		}
	}
	return out
}

// In premultiplied space, inverting a channel is alpha - channel.
func invert(src *image.RGBA) *image.RGBA {
	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			o := y*out.Stride + x*4
			alpha := src.Pix[i + 3]
			out.Pix[o + 0] = alpha - src.Pix[i + 0]
			out.Pix[o + 1] = alpha - src.Pix[i + 1]
			out.Pix[o + 2] = alpha - src.Pix[i + 2]
			out.Pix[o + 3] = alpha
		}
	}
	return out
}

// Keeps the premultiplied invariant r, g, b <= a.
func clampToAlpha(pixel []uint8) {
	alpha := pixel[3]
	for c := 0; c < 3; c++ {
		if pixel[c] > alpha { pixel[c] = alpha }
	}
}
