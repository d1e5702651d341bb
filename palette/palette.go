// The palette subpackage loads named colors from TOML files, so
// color themes can be edited (and hot reloaded) without recompiling.
//
// Palette files look like this:
//   name = "dusk"
//
//   [colors]
//   fg     = "#c8c8d0"
//   bg     = "#101018"
//   shadow = "#00000080"
//
// Colors are hex strings in #rgb, #rrggbb or #rrggbbaa form. Parsed
// colors are premultiplied, like everything else in tgrid.
package palette

import "fmt"
import "os"
import "sort"
import "strconv"
import "errors"
import "image/color"

import "github.com/pelletier/go-toml/v2"
import "github.com/lucasb-eyer/go-colorful"

// Returned (wrapped) when a palette doesn't define a requested color.
var ErrUnknownColor = errors.New("unknown color")

// Returned (wrapped) when a color string can't be parsed.
var ErrInvalidColor = errors.New("invalid color")

// A named set of colors.
type Palette struct {
	Name   string
	colors map[string]color.RGBA
}

type paletteFile struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// Creates an empty palette.
func New(name string) *Palette {
	return &Palette{ Name: name, colors: make(map[string]color.RGBA, 8) }
}

// Returns the color with the given name, or an error wrapping
// [ErrUnknownColor].
func (self *Palette) Color(name string) (color.RGBA, error) {
	clr, found := self.colors[name]
	if !found { return clr, fmt.Errorf("%w %q in palette %q", ErrUnknownColor, name, self.Name) }
	return clr, nil
}

// Like [Palette.Color](), but returns the fallback color if the
// palette doesn't define the given name.
func (self *Palette) ColorOr(name string, fallback color.RGBA) color.RGBA {
	clr, found := self.colors[name]
	if !found { return fallback }
	return clr
}

// Like [Palette.Color](), but panics if the color is not defined.
func (self *Palette) MustColor(name string) color.RGBA {
	clr, err := self.Color(name)
	if err != nil { panic(err) }
	return clr
}

// Defines or redefines a color.
func (self *Palette) Set(name string, clr color.RGBA) {
	self.colors[name] = clr
}

// Returns the sorted names of all the colors in the palette.
func (self *Palette) Names() []string {
	names := make([]string, 0, len(self.colors))
	for name := range self.colors { names = append(names, name) }
	sort.Strings(names)
	return names
}

// Parses a palette from TOML data.
func Parse(data []byte) (*Palette, error) {
	var file paletteFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	palette := New(file.Name)
	for name, hex := range file.Colors {
		clr, err := ParseHex(hex)
		if err != nil { return nil, fmt.Errorf("palette color %q: %w", name, err) }
		palette.colors[name] = clr
	}
	return palette, nil
}

// Loads a palette from a TOML file. If the palette file doesn't
// define a name, the path is used instead.
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil { return nil, fmt.Errorf("reading palette file %s: %w", path, err) }
	palette, err := Parse(data)
	if err != nil { return nil, fmt.Errorf("%s: %w", path, err) }
	if palette.Name == "" { palette.Name = path }
	return palette, nil
}

// Parses a hex color string (#rgb, #rrggbb or #rrggbbaa) into a
// premultiplied color.
func ParseHex(hex string) (color.RGBA, error) {
	alpha := uint8(255)
	if len(hex) == 9 {
		value, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil { return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex) }
		alpha, hex = uint8(value), hex[:7]
	}
	if len(hex) != 4 && len(hex) != 7 { return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex) }
	parsed, err := colorful.Hex(hex)
	if err != nil { return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex) }
	r, g, b := parsed.RGB255()
	return premultiply(r, g, b, alpha), nil
}

// Returns the given number of colors going from a to b, both included,
// blended in the CIE L*a*b* color space. Alpha is interpolated linearly.
func Gradient(a, b color.RGBA, steps int) []color.RGBA {
	if steps <= 0 { return nil }
	if steps == 1 { return []color.RGBA{ a } }

	from, _ := colorful.MakeColor(a)
	to, _   := colorful.MakeColor(b)
	colors := make([]color.RGBA, steps)
	for i := range colors {
		t := float64(i)/float64(steps - 1)
		red, green, blue := from.BlendLab(to, t).Clamped().RGB255()
		alpha := float64(a.A) + (float64(b.A) - float64(a.A))*t
		colors[i] = premultiply(red, green, blue, uint8(alpha + 0.5))
	}
	colors[0], colors[steps - 1] = a, b
	return colors
}

func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 { return color.RGBA{ r, g, b, 255 } }
	scale := func(value uint8) uint8 {
		return uint8((uint32(value)*uint32(a) + 127)/255)
	}
	return color.RGBA{ scale(r), scale(g), scale(b), a }
}
