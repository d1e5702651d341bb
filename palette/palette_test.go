package palette

import "context"
import "errors"
import "image/color"
import "os"
import "path/filepath"
import "testing"
import "time"

const testPalette = `
name = "dusk"

[colors]
fg     = "#c8c8d0"
bg     = "#101018"
gold   = "#fc0"
shadow = "#00000080"
glass  = "#ffffff80"
`

func TestParse(t *testing.T) {
	palette, err := Parse([]byte(testPalette))
	if err != nil { t.Fatal(err) }
	if palette.Name != "dusk" { t.Fatalf("unexpected name %q", palette.Name) }

	tests := []struct {
		name string
		clr  color.RGBA
	}{
		{"fg", color.RGBA{0xC8, 0xC8, 0xD0, 0xFF}},
		{"bg", color.RGBA{0x10, 0x10, 0x18, 0xFF}},
		{"gold", color.RGBA{0xFF, 0xCC, 0x00, 0xFF}},
		{"shadow", color.RGBA{0, 0, 0, 0x80}},
		{"glass", color.RGBA{0x80, 0x80, 0x80, 0x80}},
	}
	for _, test := range tests {
		clr, err := palette.Color(test.name)
		if err != nil { t.Fatal(err) }
		if clr != test.clr { t.Fatalf("color %q: expected %v, got %v", test.name, test.clr, clr) }
	}

	names := palette.Names()
	if len(names) != 5 || names[0] != "bg" || names[4] != "shadow" { t.Fatalf("unexpected names %v", names) }

	if _, err := palette.Color("nope"); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
	if palette.ColorOr("nope", color.RGBA{1, 2, 3, 255}) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatal("expected fallback color")
	}
	palette.Set("nope", color.RGBA{9, 9, 9, 255})
	if palette.MustColor("nope") != (color.RGBA{9, 9, 9, 255}) { t.Fatal("Set didn't define the color") }
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("[colors]\nfg = \"#12345\"\n"))
	if !errors.Is(err, ErrInvalidColor) { t.Fatalf("expected ErrInvalidColor, got %v", err) }
	_, err = Parse([]byte("[colors]\nfg = \"#123456zz\"\n"))
	if !errors.Is(err, ErrInvalidColor) { t.Fatalf("expected ErrInvalidColor, got %v", err) }
	if _, err = Parse([]byte("name = ")); err == nil { t.Fatal("expected TOML syntax error") }
	if _, err = Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}

	defer func() {
		if recover() == nil { t.Fatal("expected panic") }
	}()
	New("empty").MustColor("fg")
}

func TestLoadDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("[colors]\nfg = \"#fff\"\n"), 0o644); err != nil { t.Fatal(err) }
	palette, err := Load(path)
	if err != nil { t.Fatal(err) }
	if palette.Name != path { t.Fatalf("expected name %q, got %q", path, palette.Name) }
}

func TestGradient(t *testing.T) {
	from, to := color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}
	colors := Gradient(from, to, 5)
	if len(colors) != 5 { t.Fatalf("expected 5 colors, got %d", len(colors)) }
	if colors[0] != from || colors[4] != to { t.Fatal("gradient must include both ends") }
	for i, clr := range colors {
		if clr.A != 255 { t.Fatalf("color %d: expected opaque, got %v", i, clr) }
	}
	if colors[2].R == 0 || colors[2].B == 0 { t.Fatalf("unexpected gradient midpoint %v", colors[2]) }

	fade := Gradient(color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 0}, 3)
	if fade[1].A != 128 || fade[1].R > fade[1].A { t.Fatalf("unexpected fade midpoint %v", fade[1]) }
	if Gradient(from, to, 0) != nil || len(Gradient(from, to, 1)) != 1 { t.Fatal("unexpected short gradients") }
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(testPalette), 0o644); err != nil { t.Fatal(err) }

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan *Palette, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(palette *Palette, err error) {
			if err == nil { changes <- palette }
		})
	}()

	// the watcher may not be ready yet, so keep writing until it notices
	updated := []byte("name = \"dawn\"\n[colors]\nfg = \"#000\"\n")
	timeout := time.After(10*time.Second)
	ticker := time.NewTicker(250*time.Millisecond)
	defer ticker.Stop()
	var palette *Palette
	for palette == nil {
		select {
		case palette = <-changes:
		case <-ticker.C:
			if err := os.WriteFile(path, updated, 0o644); err != nil { t.Fatal(err) }
		case <-timeout:
			t.Fatal("palette change not detected")
		}
	}
	if palette.Name != "dawn" { t.Fatalf("expected reloaded palette, got %q", palette.Name) }

	cancel()
	select {
	case err := <-done:
		if err != nil { t.Fatal(err) }
	case <-time.After(5*time.Second):
		t.Fatal("Watch didn't return after cancellation")
	}
}
