// Package demo contains the small dungeon scene drawn by tgrid-demo.
// It only deals with grids and layers, so it runs the same on any host.
package demo

import "fmt"
import "image"
import "image/color"
import "math/rand"

import _ "embed"

import "github.com/tinne26/tgrid/cache"
import "github.com/tinne26/tgrid/grid"
import "github.com/tinne26/tgrid/layer"
import "github.com/tinne26/tgrid/palette"
import "github.com/tinne26/tgrid/shader"

//go:embed theme.toml
var defaultTheme []byte

// Number of ticks between animation steps.
const AnimationPeriod = 15

var glowLevels = []float32{0.5, 1.0, 1.5, 2.0, 1.5, 1.0}

type tile uint8

const (
	tileFloor tile = iota
	tileWall
	tileWater
	tileGold
)

// Returns the palette embedded in the demo. Panics if it's invalid.
func DefaultPalette() *palette.Palette {
	colors, err := palette.Parse(defaultTheme)
	if err != nil { panic(err) }
	return colors
}

// A dungeon map with a player and a floating status bar.
type Scene struct {
	tiles  []tile
	world  *grid.Grid
	screen *grid.Grid
	stack  *layer.Stack
	status *layer.Layer
	colors *palette.Palette

	player image.Point
	gold   int
	tick   int
}

// Creates a new scene of the given size in cells. The map is generated
// from the seed, so equal seeds give equal maps.
func NewScene(cols, rows int, colors *palette.Palette, seed int64) *Scene {
	if cols < 8 || rows < 4 { panic("scene too small") }
	scene := &Scene{
		tiles:  make([]tile, cols*rows),
		world:  grid.New(cols, rows),
		screen: grid.New(cols, rows),
		stack:  layer.NewStack(),
		colors: colors,
		player: image.Pt(cols/2, rows/2),
	}
	scene.generate(rand.New(rand.NewSource(seed)))
	scene.status = layer.New(grid.New(cols, 1), image.Pt(0, rows - 1))
	scene.stack.Push(scene.status)
	scene.redraw()
	return scene
}

func (self *Scene) generate(rng *rand.Rand) {
	cols, rows := self.world.Width(), self.world.Height()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			kind := tileFloor
			switch {
			case x == 0 || y == 0 || x == cols - 1 || y == rows - 2:
				kind = tileWall
			case y == rows - 1:
				kind = tileFloor // under the status bar
			case rng.Intn(100) < 8:
				kind = tileWall
			case rng.Intn(100) < 3:
				kind = tileGold
			}
			self.tiles[y*cols + x] = kind
		}
	}

	// a pond in the top left quadrant
	pond := image.Rect(2, 2, 2 + cols/5, 2 + rows/5).Intersect(image.Rect(1, 1, cols - 1, rows - 2))
	for y := pond.Min.Y; y < pond.Max.Y; y++ {
		for x := pond.Min.X; x < pond.Max.X; x++ { self.tiles[y*cols + x] = tileWater }
	}
	self.tiles[self.player.Y*cols + self.player.X] = tileFloor
}

// Returns the composed screen grid. Only the cells that changed since
// the previous call are dirty.
func (self *Scene) Compose() *grid.Grid {
	self.stack.Compose(self.world, self.screen)
	return self.screen
}

// Returns the player position.
func (self *Scene) Player() image.Point { return self.player }

// Returns the gold collected so far.
func (self *Scene) Gold() int { return self.gold }

// Moves the player by the given offset. Walls and water block the way.
// Returns whether the player moved.
func (self *Scene) Move(dx, dy int) bool {
	target := self.player.Add(image.Pt(dx, dy))
	if !self.world.InBounds(target.X, target.Y) { return false }
	switch self.tileAt(target) {
	case tileWall, tileWater:
		return false
	case tileGold:
		self.gold += 1
		self.tiles[target.Y*self.world.Width() + target.X] = tileFloor
	}

	previous := self.player
	self.player = target
	self.drawTile(previous)
	self.drawTile(target)
	self.drawStatus()
	return true
}

// Shows or hides the status bar.
func (self *Scene) ToggleStatus() {
	self.status.SetVisible(!self.status.Visible())
}

// Advances the animations by one tick.
func (self *Scene) Tick() {
	self.tick += 1
	if self.tick % AnimationPeriod != 0 { return }
	for i, kind := range self.tiles {
		if kind == tileWater || kind == tileGold {
			self.drawTile(image.Pt(i % self.world.Width(), i / self.world.Width()))
		}
	}
}

// Replaces the palette and redraws everything with it.
func (self *Scene) SetPalette(colors *palette.Palette) {
	self.colors = colors
	self.redraw()
}

// Returns the glyph keys the scene will use, for cache prewarming.
func (self *Scene) Keys() []cache.Key {
	keys := make([]cache.Key, 0, 64)
	seen := make(map[cache.Key]struct{}, 64)
	add := func(cell grid.Cell) {
		key := cache.KeyOf(cell)
		if _, found := seen[key]; found { return }
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, kind := range []tile{tileFloor, tileWall} { add(self.tileCell(kind, 0)) }
	for phase := 0; phase < len(glowLevels); phase++ {
		add(self.tileCell(tileWater, phase))
		add(self.tileCell(tileGold, phase))
	}
	add(self.playerCell())
	for _, codePoint := range self.statusText() {
		add(grid.NewCell(codePoint, self.color("status_fg"), self.color("status_bg")))
	}
	return keys
}

func (self *Scene) redraw() {
	cols, rows := self.world.Width(), self.world.Height()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ { self.drawTile(image.Pt(x, y)) }
	}
	self.drawStatus()
}

func (self *Scene) tileAt(pt image.Point) tile {
	return self.tiles[pt.Y*self.world.Width() + pt.X]
}

func (self *Scene) drawTile(pt image.Point) {
	cell := self.tileCell(self.tileAt(pt), self.tick/AnimationPeriod)
	if pt == self.player { cell = self.playerCell() }
	_ = self.world.SetCell(pt.X, pt.Y, cell)
}

func (self *Scene) tileCell(kind tile, phase int) grid.Cell {
	switch kind {
	case tileWall:
		return grid.NewCell('#', self.color("wall"), self.color("wall_bg"))
	case tileWater:
		angle := float32(0)
		if phase % 2 == 1 { angle = 180 }
		cell := grid.NewCell('~', self.color("water"), self.color("water_bg"))
		return cell.WithTransforms(shader.MotionBlur(angle, 2))
	case tileGold:
		level := glowLevels[phase % len(glowLevels)]
		cell := grid.NewCell('$', self.color("gold"), self.color("floor_bg"))
		return cell.WithTransforms(shader.Glow(level, 2))
	default:
		return grid.NewCell('.', self.color("floor"), self.color("floor_bg"))
	}
}

func (self *Scene) playerCell() grid.Cell {
	cell := grid.NewCell('@', self.color("player"), self.color("floor_bg"))
	return cell.WithTransforms(shader.Glow(1.5, 2))
}

func (self *Scene) statusText() string {
	return fmt.Sprintf(" tgrid  $ %d  arrows: move  tab: status  q: quit", self.gold)
}

func (self *Scene) drawStatus() {
	bar := self.status.Grid()
	fg, bg := self.color("status_fg"), self.color("status_bg")
	bar.Clear(grid.NewCell(' ', fg, bg))
	_, _ = bar.PutString(0, 0, self.statusText(), fg, bg)
	for x := 1; x <= 5; x++ { // title
		cell, _ := bar.Cell(x, 0)
		cell.Foreground = self.color("title")
		_ = bar.SetCell(x, 0, cell.WithTransforms(shader.Chrome(3)))
	}
}

func (self *Scene) color(name string) color.RGBA {
	return self.colors.ColorOr(name, color.RGBA{255, 0, 255, 255})
}
