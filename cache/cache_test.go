package cache

import "bytes"
import "context"
import "errors"
import "image"
import "image/color"
import "sync"
import "sync/atomic"
import "testing"

import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/mask"
import "github.com/tinne26/tgrid/paint"
import "github.com/tinne26/tgrid/shader"

const testCellWidth, testCellHeight = 4, 6

var testRed = color.RGBA{255, 0, 0, 255}

// Sheet wrapper that counts the number of masks requested.
type countingSheet struct {
	*mask.BitmapSheet
	requests atomic.Int64
}

func (self *countingSheet) GlyphMask(codePoint rune) (*image.Alpha, error) {
	self.requests.Add(1)
	return self.BitmapSheet.GlyphMask(codePoint)
}

// Creates a sheet with printable ASCII glyphs plus a wide '漢'. Each
// mask has a pattern derived from its code point.
func newTestSheet(t testing.TB) *countingSheet {
	masks := make(map[rune]*image.Alpha, 96)
	for codePoint := rune(0x20); codePoint < 0x7F; codePoint++ {
		masks[codePoint] = patternMask(codePoint, testCellWidth, testCellHeight)
	}
	masks['漢'] = patternMask('漢', testCellWidth*2, testCellHeight)
	sheet, err := mask.NewBitmapSheet(masks, nil)
	if err != nil { t.Fatal(err) }
	return &countingSheet{ BitmapSheet: sheet }
}

func patternMask(codePoint rune, width, height int) *image.Alpha {
	out := image.NewAlpha(image.Rect(0, 0, width, height))
	for i := range out.Pix {
		out.Pix[i] = uint8((int(codePoint)*37 + i*11) % 256)
	}
	return out
}

func TestGetOrRenderIdempotence(t *testing.T) {
	sheet := newTestSheet(t)
	glyphs := New(sheet, Options{})
	key := Key{ CodePoint: 'g', Color: testRed, Chain: shader.NewChain(shader.GaussianBlur(1)) }

	miss := glyphs.GetOrRender(key)
	hit  := glyphs.GetOrRender(key)
	if miss != hit { t.Fatal("expected the cached image on a hit") }
	if sheet.requests.Load() != 1 { t.Fatalf("expected 1 rasterization, got %d", sheet.requests.Load()) }

	// an independent cache must produce the same pixels
	other := New(newTestSheet(t), Options{ Capacity: 8 }).GetOrRender(key)
	if !bytes.Equal(miss.Pix, other.Pix) || miss.Rect != other.Rect {
		t.Fatal("equal keys must render to equal images")
	}

	stats := glyphs.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.HitRate() != 0.5 { t.Fatalf("expected 0.5 hit rate, got %f", stats.HitRate()) }
	if stats.ApproxBytes != ImageByteSize(miss) { t.Fatalf("unexpected size %d", stats.ApproxBytes) }
}

func TestKeyOf(t *testing.T) {
	cell := grid.NewCell('x', testRed, color.RGBA{0, 0, 255, 255})
	key := KeyOf(cell)
	if key.CodePoint != 'x' || key.Color != testRed || !key.Chain.IsEmpty() {
		t.Fatalf("unexpected key %v", key)
	}

	// background doesn't matter
	other := cell
	other.Background = color.RGBA{}
	if KeyOf(other) != key { t.Fatal("background must not be part of the key") }

	// later mutation of the cell doesn't affect the key
	cell = cell.WithTransforms(shader.Invert())
	if key.Chain.Len() != 0 { t.Fatal("key changed after mutating the cell") }
	if KeyOf(cell) == key { t.Fatal("chain must be part of the key") }
}

func TestChainsGiveDifferentKeys(t *testing.T) {
	once  := Key{ CodePoint: 'F', Color: testRed, Chain: shader.NewChain(shader.Flip(true, false)) }
	twice := Key{ CodePoint: 'F', Color: testRed, Chain: shader.NewChain(shader.Flip(true, false), shader.Flip(true, false)) }
	if once == twice { t.Fatal("chains of different lengths must give different keys") }

	glyphs := New(newTestSheet(t), Options{})
	plain := glyphs.GetOrRender(Key{ CodePoint: 'F', Color: testRed })
	flipped := glyphs.GetOrRender(once)
	restored := glyphs.GetOrRender(twice)
	if glyphs.Stats().Entries != 3 { t.Fatalf("expected 3 entries, got %d", glyphs.Stats().Entries) }
	if bytes.Equal(plain.Pix, flipped.Pix) { t.Fatal("broken test: pattern is symmetric") }
	if !bytes.Equal(plain.Pix, restored.Pix) { t.Fatal("flipping twice must restore the glyph") }
}

func TestLRUEviction(t *testing.T) {
	const capacity = 4
	sheet := newTestSheet(t)
	glyphs := New(sheet, Options{ Capacity: capacity })

	keys := KeysFor([]rune("abcde"), Key{ Color: testRed })
	for _, key := range keys { glyphs.GetOrRender(key) }

	stats := glyphs.Stats()
	if stats.Entries != capacity || stats.Evictions != 1 {
		t.Fatalf("expected %d entries and 1 eviction, got %+v", capacity, stats)
	}
	if glyphs.Contains(keys[0]) { t.Fatal("expected the least recently used key to be evicted") }

	requests := sheet.requests.Load()
	for _, key := range keys[1:] {
		if !glyphs.Contains(key) { t.Fatalf("expected %v to be cached", key) }
		glyphs.GetOrRender(key)
	}
	if sheet.requests.Load() != requests { t.Fatal("cached keys must not be recomputed") }

	// touching 'b' makes 'c' the least recently used one
	store := NewLRU(3)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, key := range keys[:3] { store.Put(key, img) }
	store.Get(keys[0])
	if _, evicted := store.Put(keys[3], img); evicted != img { t.Fatal("expected an eviction") }
	if _, found := store.Get(keys[1]); found { t.Fatal("expected 'b' to be evicted") }
	if _, found := store.Get(keys[0]); !found { t.Fatal("expected 'a' to survive") }

	// replacing doesn't evict
	if replaced, evicted := store.Put(keys[0], img); replaced != img || evicted != nil {
		t.Fatal("expected a replacement without eviction")
	}
	store.Clear()
	if store.Len() != 0 { t.Fatal("expected empty store after Clear") }
}

func TestContainsKeepsLRUOrder(t *testing.T) {
	glyphs := New(newTestSheet(t), Options{ Capacity: 2 })
	keys := KeysFor([]rune("abc"), Key{ Color: testRed })
	glyphs.GetOrRender(keys[0])
	glyphs.GetOrRender(keys[1])
	if !glyphs.Contains(keys[0]) { t.Fatal("expected 'a' to be cached") }

	// 'a' is still the least recently used key, so 'c' evicts it
	glyphs.GetOrRender(keys[2])
	if glyphs.Contains(keys[0]) { t.Fatal("Contains must not refresh the entry") }
	if !glyphs.Contains(keys[1]) { t.Fatal("expected 'b' to survive") }
	if stats := glyphs.Stats(); stats.Hits != 0 || stats.Misses != 3 {
		t.Fatalf("Contains must not affect stats: %+v", stats)
	}
}

func TestConcurrentGetOrRenderSameKey(t *testing.T) {
	const workers = 32
	stores := map[string]func() Store{
		"unbounded": NewUnbounded,
		"lru": func() Store { return NewLRU(8) },
	}
	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			glyphs := New(newTestSheet(t), Options{ Store: newStore() })
			key := Key{ CodePoint: 'Q', Color: testRed, Chain: shader.NewChain(shader.Glow(1, 1)) }

			results := make([]*image.RGBA, workers)
			var start sync.WaitGroup
			var done sync.WaitGroup
			start.Add(1)
			for i := 0; i < workers; i++ {
				i := i
				done.Add(1)
				go func() {
					defer done.Done()
					start.Wait()
					results[i] = glyphs.GetOrRender(key)
				}()
			}
			start.Done()
			done.Wait()

			stats := glyphs.Stats()
			if stats.Entries != 1 { t.Fatalf("expected 1 entry, got %d", stats.Entries) }
			if stats.Hits + stats.Misses != workers {
				t.Fatalf("expected %d lookups, got %+v", workers, stats)
			}
			if stats.ApproxBytes != ImageByteSize(results[0]) {
				t.Fatalf("expected %d bytes, got %d", ImageByteSize(results[0]), stats.ApproxBytes)
			}
			for i, img := range results {
				if img.Rect != results[0].Rect || !bytes.Equal(img.Pix, results[0].Pix) {
					t.Fatalf("result %d differs from result 0", i)
				}
			}
			if cached := glyphs.GetOrRender(key); !bytes.Equal(cached.Pix, results[0].Pix) {
				t.Fatal("cached image differs from the racing results")
			}
		})
	}
}

func TestApproxBytesWithEvictions(t *testing.T) {
	glyphs := New(newTestSheet(t), Options{ Capacity: 2 })
	for _, key := range KeysFor([]rune("xyz"), Key{ Color: testRed }) {
		glyphs.GetOrRender(key)
	}
	expected := 2*(4*testCellWidth*testCellHeight + EntryOverhead)
	if got := glyphs.Stats().ApproxBytes; got != int64(expected) {
		t.Fatalf("expected %d bytes, got %d", expected, got)
	}
	glyphs.Clear()
	if stats := glyphs.Stats(); stats.Entries != 0 || stats.ApproxBytes != 0 {
		t.Fatalf("unexpected stats after Clear: %+v", stats)
	}
}

func TestUnsupportedPlaceholder(t *testing.T) {
	sheet := newTestSheet(t)
	glyphs := New(sheet, Options{})
	key := Key{ CodePoint: 'Ω', Color: testRed, Chain: shader.NewChain(shader.Invert()) }
	img := glyphs.GetOrRender(key)

	expected := paint.Placeholder(testCellWidth, testCellHeight)
	if !bytes.Equal(img.Pix, expected.Pix) || img.Rect != expected.Rect {
		t.Fatal("unsupported glyphs must render as the untransformed placeholder")
	}
	if glyphs.GetOrRender(key) != img { t.Fatal("placeholders must be cached") }
	if _, err := mask.Rasterize(sheet, 'Ω'); !errors.Is(err, mask.ErrUnsupportedGlyph) {
		t.Fatalf("expected ErrUnsupportedGlyph, got %v", err)
	}
}

func TestWideGlyph(t *testing.T) {
	glyphs := New(newTestSheet(t), Options{})
	img := glyphs.GetOrRender(Key{ CodePoint: '漢', Color: testRed })
	if img.Rect != image.Rect(0, 0, testCellWidth*2, testCellHeight) {
		t.Fatalf("unexpected wide glyph bounds %v", img.Rect)
	}
}

func TestInvalidChainIsNoOp(t *testing.T) {
	glyphs := New(newTestSheet(t), Options{})
	plain   := glyphs.GetOrRender(Key{ CodePoint: 'q', Color: testRed })
	invalid := glyphs.GetOrRender(Key{ CodePoint: 'q', Color: testRed, Chain: shader.NewChain(shader.GaussianBlur(-1)) })
	if !bytes.Equal(plain.Pix, invalid.Pix) { t.Fatal("invalid transforms must not modify the glyph") }
}

func TestPrewarm(t *testing.T) {
	sheet := newTestSheet(t)
	glyphs := New(sheet, Options{})
	codePoints := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	keys := KeysFor(codePoints, Key{ Color: testRed }, Key{ Color: testRed, Chain: shader.NewChain(shader.Glow(1, 1)) })

	err := glyphs.Prewarm(context.Background(), keys, 4)
	if err != nil { t.Fatal(err) }
	stats := glyphs.Stats()
	if stats.Entries != len(keys) || stats.Misses != uint64(len(keys)) {
		t.Fatalf("expected %d entries and misses, got %+v", len(keys), stats)
	}
	for _, key := range keys {
		if !glyphs.Contains(key) { t.Fatalf("key %v not prewarmed", key) }
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fresh := New(sheet, Options{})
	err = fresh.Prewarm(ctx, keys, 2)
	if !errors.Is(err, context.Canceled) { t.Fatalf("expected context.Canceled, got %v", err) }
	if fresh.Stats().Entries != 0 { t.Fatal("cancelled prewarm must not render anything") }
}

func TestQuantizeColor(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		bits int
		out  color.RGBA
	}{
		{color.RGBA{0xFF, 0x81, 0x40, 0xFF}, 8, color.RGBA{0xFF, 0x81, 0x40, 0xFF}},
		{color.RGBA{0xFF, 0x81, 0x40, 0xFF}, 0, color.RGBA{0xFF, 0x81, 0x40, 0xFF}},
		{color.RGBA{0xFF, 0x81, 0x40, 0xFF}, 4, color.RGBA{0xF0, 0x80, 0x40, 0xFF}},
		{color.RGBA{0x7F, 0x3F, 0x10, 0x80}, 1, color.RGBA{0x00, 0x00, 0x00, 0x80}},
	}
	for i, test := range tests {
		got := QuantizeColor(test.in, test.bits)
		if got != test.out { t.Fatalf("test #%d: expected %v, got %v", i, test.out, got) }
		if got.R > got.A || got.G > got.A || got.B > got.A {
			t.Fatalf("test #%d: invalid premultiplied color %v", i, got)
		}
	}

	key := Key{ CodePoint: 'a', Color: color.RGBA{0xF1, 0x0F, 0x00, 0xFF} }
	if key.Quantized(4) != (Key{ CodePoint: 'a', Color: color.RGBA{0xF0, 0x00, 0x00, 0xFF} }) {
		t.Fatal("unexpected quantized key")
	}
}

func BenchmarkGetOrRenderHit(b *testing.B) {
	glyphs := New(newTestSheet(b), Options{})
	key := Key{ CodePoint: 'M', Color: testRed, Chain: shader.NewChain(shader.Glow(1, 2)) }
	glyphs.GetOrRender(key)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		glyphs.GetOrRender(key)
	}
}

func BenchmarkGetOrRenderMiss(b *testing.B) {
	glyphs := New(newTestSheet(b), Options{})
	key := Key{ CodePoint: 'M', Color: testRed, Chain: shader.NewChain(shader.Glow(1, 2)) }
	for i := 0; i < b.N; i++ {
		glyphs.Clear()
		glyphs.GetOrRender(key)
	}
}

func BenchmarkLRUHit(b *testing.B) {
	glyphs := New(newTestSheet(b), Options{ Capacity: 64 })
	keys := KeysFor([]rune("abcdefgh"), Key{ Color: testRed })
	for _, key := range keys { glyphs.GetOrRender(key) }
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		glyphs.GetOrRender(keys[i % len(keys)])
	}
}
