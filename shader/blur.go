package shader

import "math"
import "image"

// Returns a normalized 1D gaussian kernel using the radius as sigma.
// The kernel size is 2*ceil(3*radius) + 1, which covers 99.7% of the
// distribution. The radius is clamped to [MaxExtent].
func gaussianKernel(radius float64) []float32 {
	radius = math.Min(radius, MaxExtent)
	halfSize := int(math.Ceil(radius*3))
	kernel := make([]float32, halfSize*2 + 1)
	twoSigmaSq := 2*radius*radius
	sum := 0.0
	for i := range kernel {
		x := float64(i - halfSize)
		value := math.Exp(-(x*x)/twoSigmaSq)
		kernel[i] = float32(value)
		sum += value
	}
	invSum := float32(1.0/sum)
	for i := range kernel { kernel[i] *= invSum }
	return kernel
}

// Separable gaussian blur with edge extension. Horizontal pass
// into a float buffer, vertical pass into the output.
func gaussianBlur(src *image.RGBA, radius float64) *image.RGBA {
	kernel := gaussianKernel(radius)
	half := len(kernel)/2
	width, height := src.Rect.Dx(), src.Rect.Dy()

	temp := make([]float32, width*height*4)
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride + width*4]
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				i := clampInt(x + k - half, 0, width - 1)*4
				r += float32(row[i + 0])*weight
				g += float32(row[i + 1])*weight
				b += float32(row[i + 2])*weight
				a += float32(row[i + 3])*weight
			}
			t := (y*width + x)*4
			temp[t + 0], temp[t + 1], temp[t + 2], temp[t + 3] = r, g, b, a
		}
	}

	out := image.NewRGBA(src.Rect)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				t := (clampInt(y + k - half, 0, height - 1)*width + x)*4
				r += temp[t + 0]*weight
				g += temp[t + 1]*weight
				b += temp[t + 2]*weight
				a += temp[t + 3]*weight
			}
			o := y*out.Stride + x*4
			out.Pix[o + 0] = unitToByte(r)
			out.Pix[o + 1] = unitToByte(g)
			out.Pix[o + 2] = unitToByte(b)
			out.Pix[o + 3] = unitToByte(a)
		}
	}
	return out
}

// Averages ceil(distance) + 1 copies of the image, each shifted one
// more pixel along the given angle. Samples that fall outside the
// image count as transparent, so the trail fades at the borders.
// The distance is clamped to [MaxExtent].
func motionBlur(src *image.RGBA, angle, distance float64) *image.RGBA {
	steps := int(math.Ceil(math.Min(distance, MaxExtent)))
	radians := angle*math.Pi/180
	cos, sin := math.Cos(radians), math.Sin(radians)
	offsets := make([]image.Point, steps + 1)
	for i := range offsets {
		offsets[i].X = int(math.Round(float64(i)*cos))
		offsets[i].Y = int(math.Round(float64(i)*sin))
	}

	width, height := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(src.Rect)
	norm := float32(1.0)/float32(len(offsets))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for _, offset := range offsets {
				sx, sy := x - offset.X, y - offset.Y
				if sx < 0 || sx >= width || sy < 0 || sy >= height { continue }
				i := sy*src.Stride + sx*4
				r += float32(src.Pix[i + 0])
				g += float32(src.Pix[i + 1])
				b += float32(src.Pix[i + 2])
				a += float32(src.Pix[i + 3])
			}
			o := y*out.Stride + x*4
			out.Pix[o + 0] = unitToByte(r*norm)
			out.Pix[o + 1] = unitToByte(g*norm)
			out.Pix[o + 2] = unitToByte(b*norm)
			out.Pix[o + 3] = unitToByte(a*norm)
		}
	}
	return out
}

func clampInt(value, low, high int) int {
	if value < low  { return low  }
	if value > high { return high }
	return value
}

// Rounds and clamps a [0, 255] float to a byte.
func unitToByte(value float32) uint8 {
	if value <= 0 { return 0 }
	if value >= 255 { return 255 }
	return uint8(value + 0.5)
}
