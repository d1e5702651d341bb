package font

import "os"
import "io"
import "io/fs"
import "fmt"
import "sync"
import "errors"
import "strings"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/gomono"

// Returned (wrapped) when trying to parse a font from a path that
// doesn't end in .ttf or .otf.
var ErrInvalidPath = errors.New("invalid font path")

// Similar to [sfnt.Parse](), but also including the font name
// in the returned values. The bytes must not be modified while
// the font is in use.
//
// [sfnt.Parse]: https://pkg.go.dev/golang.org/x/image/font/sfnt#Parse.
func ParseFromBytes(fontBytes []byte) (*sfnt.Font, string, error) {
	font, err := sfnt.Parse(fontBytes)
	if err != nil { return nil, "", err }
	name, err := GetName(font)
	return font, name, err
}

// Parses the font at the given path and returns it along its name.
// Supported formats are .ttf and .otf.
func ParseFromPath(path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) { return nil, "", fmt.Errorf("%w '%s'", ErrInvalidPath, path) }
	file, err := os.Open(path)
	if err != nil { return nil, "", err }
	return parseFontFileAndClose(file)
}

// Same as [ParseFromPath](), but for embedded filesystems.
func ParseFromFS(filesys fs.FS, path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) { return nil, "", fmt.Errorf("%w '%s'", ErrInvalidPath, path) }
	file, err := filesys.Open(path)
	if err != nil { return nil, "", err }
	return parseFontFileAndClose(file)
}

var defaultFont = sync.OnceValue(func() *sfnt.Font {
	font, err := sfnt.Parse(gomono.TTF)
	if err != nil { panic(err) } // bundled font, can't fail
	return font
})

// Returns the bundled Go Mono font. The font is parsed only once,
// and the same value is returned on each call.
func Default() *sfnt.Font { return defaultFont() }

// ---- helpers ----

func parseFontFileAndClose(file io.ReadCloser) (*sfnt.Font, string, error) {
	fontBytes, err := io.ReadAll(file)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	if err = file.Close(); err != nil { return nil, "", err }
	return ParseFromBytes(fontBytes)
}

// Whether the font path ends in .ttf or .otf (case insensitive).
func hasValidFontExtension(path string) bool {
	if len(path) < 5 { return false } // a name is required
	ext := strings.ToLower(path[len(path) - 4:])
	return ext == ".ttf" || ext == ".otf"
}
