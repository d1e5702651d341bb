package mask

import "image"

// Returns the most frequent size among the given ones. Ties are
// broken in favor of the smallest area, then the smallest width,
// so the result doesn't depend on map iteration order.
func dominantSize(sizes map[rune]image.Point) image.Point {
	counts := make(map[image.Point]int, 4)
	for _, size := range sizes {
		if size.X <= 0 || size.Y <= 0 { continue }
		counts[size] += 1
	}

	var best image.Point
	bestCount := 0
	for size, count := range counts {
		if count > bestCount || (count == bestCount && smallerSize(size, best)) {
			best, bestCount = size, count
		}
	}
	return best
}

func smallerSize(a, b image.Point) bool {
	areaA, areaB := a.X*a.Y, b.X*b.Y
	if areaA != areaB { return areaA < areaB }
	return a.X < b.X
}

// Whether the size is a positive integer multiple of the cell size
// on both axes.
func isTileAligned(size, cell image.Point) bool {
	if cell.X <= 0 || cell.Y <= 0 { return false }
	if size.X <= 0 || size.Y <= 0 { return false }
	return size.X % cell.X == 0 && size.Y % cell.Y == 0
}

// Returns a copy of the mask with its bounds moved to (0, 0).
func normalizeMask(mask *image.Alpha) *image.Alpha {
	width, height := mask.Rect.Dx(), mask.Rect.Dy()
	out := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(out.Pix[y*out.Stride : y*out.Stride + width], mask.Pix[y*mask.Stride:])
	}
	return out
}
