package shader

import "fmt"
import "math"
import "image"
import "errors"

// Reported by [Transform.Validate]() and [Chain.Validate]() when a
// transform has a parameter that will make it act as a no-op.
var ErrInvalidParameter = errors.New("invalid transform parameter")

// Upper limit for blur radii, motion distances and pixelation sizes.
// Larger values are reported as invalid and make the transform a no-op.
const MaxExtent = 1024

// The closed set of transform kinds.
type Kind uint8

const (
	KindNone Kind = iota
	KindGaussianBlur
	KindMotionBlur
	KindFlip
	KindGlow
	KindSharpen
	KindEdgeDetect
	KindPixelate
	KindChrome
	KindInvert
	kindSentinel // keep last
)

func (self Kind) String() string {
	switch self {
	case KindNone         : return "None"
	case KindGaussianBlur : return "GaussianBlur"
	case KindMotionBlur   : return "MotionBlur"
	case KindFlip         : return "Flip"
	case KindGlow         : return "Glow"
	case KindSharpen      : return "Sharpen"
	case KindEdgeDetect   : return "EdgeDetect"
	case KindPixelate     : return "Pixelate"
	case KindChrome       : return "Chrome"
	case KindInvert       : return "Invert"
	default:
		return "Kind(" + fmt.Sprint(uint8(self)) + ")"
	}
}

// A parameterized image operation. Transforms are plain comparable
// values: two transforms are equal if their kind and parameters are
// equal. Use the constructor functions to create them.
type Transform struct {
	kind Kind
	a, b, c, d float32
}

// Gaussian blur with the given radius (standard deviation) in pixels.
func GaussianBlur(radius float32) Transform {
	return Transform{ kind: KindGaussianBlur, a: radius }
}

// Directional blur that accumulates copies of the image offset along
// the given angle (degrees, 0 pointing right, clockwise in screen space)
// up to the given distance in pixels.
func MotionBlur(angle, distance float32) Transform {
	return Transform{ kind: KindMotionBlur, a: angle, b: distance }
}

// Mirrors the image horizontally and/or vertically.
func Flip(horz, vert bool) Transform {
	return Transform{ kind: KindFlip, a: boolToF32(horz), b: boolToF32(vert) }
}

// Additively blends a blurred copy of the image under the original.
// Amount scales the blurred copy's intensity.
func Glow(amount, radius float32) Transform {
	return Transform{ kind: KindGlow, a: amount, b: radius }
}

// Unsharp masking with the given amount.
func Sharpen(amount float32) Transform {
	return Transform{ kind: KindSharpen, a: amount }
}

// Sobel edge detection. Only the edges of the glyph remain visible.
func EdgeDetect() Transform {
	return Transform{ kind: KindEdgeDetect }
}

// Averages blocks of size x size pixels.
func Pixelate(size int) Transform {
	return Transform{ kind: KindPixelate, a: float32(size) }
}

// Metallic look. Bands controls how many light/dark stripes the
// luminance ramp goes through.
func Chrome(bands float32) Transform {
	return Transform{ kind: KindChrome, a: bands }
}

// Inverts the colors of the image, preserving alpha.
func Invert() Transform {
	return Transform{ kind: KindInvert }
}

// Returns the kind of the transform.
func (self Transform) Kind() Kind { return self.kind }

// Returns the raw parameters of the transform. Their meaning
// depends on the kind, following the constructor argument order.
func (self Transform) Params() [4]float32 {
	return [4]float32{self.a, self.b, self.c, self.d}
}

// Returns nil if the transform will do its work, or an error wrapping
// [ErrInvalidParameter] if it will behave as a no-op.
func (self Transform) Validate() error {
	switch self.kind {
	case KindGaussianBlur:
		return bounded(self, "radius", self.a)
	case KindMotionBlur:
		if !finite(self.a) { return invalid(self, "angle", self.a) }
		return bounded(self, "distance", self.b)
	case KindFlip, KindEdgeDetect, KindInvert:
		return nil
	case KindGlow:
		if err := positive(self, "amount", self.a); err != nil { return err }
		return bounded(self, "radius", self.b)
	case KindSharpen:
		return positive(self, "amount", self.a)
	case KindPixelate:
		if !finite(self.a) || self.a < 1 || self.a > MaxExtent {
			return invalid(self, "size", self.a)
		}
		return nil
	case KindChrome:
		return positive(self, "bands", self.a)
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidParameter, self.kind)
	}
}

// Applies the transform to the given image and returns the result.
// The source is never modified. When the transform has no effect
// (invalid parameters, a flip on no axis...), the source itself
// is returned.
func (self Transform) Apply(src *image.RGBA) *image.RGBA {
	if src == nil || src.Rect.Empty() { return src }
	if self.Validate() != nil { return src }

	switch self.kind {
	case KindGaussianBlur:
		return gaussianBlur(src, float64(self.a))
	case KindMotionBlur:
		return motionBlur(src, float64(self.a), float64(self.b))
	case KindFlip:
		return flip(src, self.a != 0, self.b != 0)
	case KindGlow:
		return glow(src, float64(self.a), float64(self.b))
	case KindSharpen:
		return sharpen(src, float64(self.a))
	case KindEdgeDetect:
		return edgeDetect(src)
	case KindPixelate:
		return pixelate(src, int(self.a))
	case KindChrome:
		return chrome(src, float64(self.a))
	case KindInvert:
		return invert(src)
	default:
		panic("unhandled transform kind " + self.kind.String())
	}
}

func (self Transform) String() string {
	switch self.kind {
	case KindGaussianBlur:
		return fmt.Sprintf("GaussianBlur{%g}", self.a)
	case KindMotionBlur:
		return fmt.Sprintf("MotionBlur{%g, %g}", self.a, self.b)
	case KindFlip:
		return fmt.Sprintf("Flip{%t, %t}", self.a != 0, self.b != 0)
	case KindGlow:
		return fmt.Sprintf("Glow{%g, %g}", self.a, self.b)
	case KindSharpen:
		return fmt.Sprintf("Sharpen{%g}", self.a)
	case KindPixelate:
		return fmt.Sprintf("Pixelate{%g}", self.a)
	case KindChrome:
		return fmt.Sprintf("Chrome{%g}", self.a)
	default:
		return self.kind.String() + "{}"
	}
}

// ---- helpers ----

func boolToF32(value bool) float32 {
	if value { return 1 }
	return 0
}

func finite(value float32) bool {
	return !math.IsNaN(float64(value)) && !math.IsInf(float64(value), 0)
}

func positive(t Transform, name string, value float32) error {
	if !finite(value) || value <= 0 { return invalid(t, name, value) }
	return nil
}

func bounded(t Transform, name string, value float32) error {
	if err := positive(t, name, value); err != nil { return err }
	if value > MaxExtent { return invalid(t, name, value) }
	return nil
}

func invalid(t Transform, name string, value float32) error {
	return fmt.Errorf("%w: %s %s = %g", ErrInvalidParameter, t.kind, name, value)
}
