package font

import "errors"
import "sync/atomic"

import "golang.org/x/image/math/fixed"
import "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"

var ErrNotFound = errors.New("font property not found or empty")

// One shared sfnt.Buffer for property lookups. Buffers can't be used
// concurrently, so it's only used when nobody else holds it; otherwise
// sfnt allocates a temporary one.
var sfntBuffer sfnt.Buffer
var usingSfntBuffer atomic.Bool

func getSfntBuffer() *sfnt.Buffer {
	if !usingSfntBuffer.CompareAndSwap(false, true) { return nil }
	return &sfntBuffer
}

func releaseSfntBuffer(buffer *sfnt.Buffer) {
	if buffer != nil { usingSfntBuffer.Store(false) }
}

// Returns the requested font property for the given font.
// The returned property string might be empty even when error is nil.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(font *sfnt.Font, property sfnt.NameID) (string, error) {
	buffer := getSfntBuffer()
	str, err := font.Name(buffer, property)
	releaseSfntBuffer(buffer)
	if errors.Is(err, sfnt.ErrNotFound) { return "", ErrNotFound }
	return str, err
}

// Returns the family name of the given font.
func GetFamily(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFamily)
}

// Returns the full name of the given font. If the information is
// missing, [ErrNotFound] will be returned. Other errors are also
// possible (e.g., if the font naming table is invalid).
func GetName(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFull)
}

// Returns the runes in the given text that can't be represented by the
// font. If runes are repeated in the input text, the returned slice may
// contain them multiple times too.
//
// Code points without glyphs are drawn as placeholders on grids, so
// it's good practice to check the runes you need when fonts are loaded
// dynamically.
func GetMissingRunes(font *sfnt.Font, text string) ([]rune, error) {
	buffer := getSfntBuffer()
	defer releaseSfntBuffer(buffer)

	missing := make([]rune, 0)
	for _, codePoint := range text {
		index, err := font.GlyphIndex(buffer, codePoint)
		if err != nil { return missing, err }
		if index == 0 { missing = append(missing, codePoint) }
	}
	return missing, nil
}

// Reports whether all the runes in the given sample that the font
// supports have the same advance. Missing runes are ignored.
func IsMonospaced(sfntFont *sfnt.Font, sample string) (bool, error) {
	buffer := getSfntBuffer()
	defer releaseSfntBuffer(buffer)

	const ppem = fixed.Int26_6(64*64)
	var first fixed.Int26_6 = -1
	for _, codePoint := range sample {
		index, err := sfntFont.GlyphIndex(buffer, codePoint)
		if err != nil { return false, err }
		if index == 0 { continue }
		advance, err := sfntFont.GlyphAdvance(buffer, index, ppem, font.HintingNone)
		if err != nil { return false, err }
		if first == -1 { first = advance }
		if advance != first { return false, nil }
	}
	return true, nil
}
