package mask

// Returns the default candidate code points for vector font sheets:
// printable ASCII, Latin-1, box drawing, block elements and the full
// code page 437 repertoire, without duplicates.
func DefaultRepertoire() []rune {
	runes := make([]rune, 0, 512)
	seen  := make(map[rune]struct{}, 512)
	add := func(codePoint rune) {
		if _, found := seen[codePoint]; found { return }
		seen[codePoint] = struct{}{}
		runes = append(runes, codePoint)
	}

	for r := rune(0x20); r <= 0x7E; r++ { add(r) }
	for r := rune(0xA0); r <= 0xFF; r++ { add(r) }
	for r := rune(0x2500); r <= 0x259F; r++ { add(r) } // box drawing + blocks
	for i := 1; i < 256; i++ { add(CP437Rune(byte(i))) }
	return runes
}
