//go:build !headless

package frontend

import (
	"context"
	"fmt"
	"image/color"
	"io/fs"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var (
	keypadColor   = color.RGBA{R: 0x20, G: 0x20, B: 0x40, A: 0xD0}
	selectedColor = color.RGBA{R: 0xC0, G: 0x80, B: 0x20, A: 0xE0}
)

// Run opens the window and runs one driver frame per tick until the window
// is closed, ESC is pressed, the context is cancelled or the machine fails.
// F1 toggles the key remap mode, changed mappings are saved to keymapFile.
// A ROM file dropped on the window replaces the running program.
// It has to be called from the main goroutine.
func (w *Window) Run(ctx context.Context, d *driver.Driver, km keymap.Keymap, keymapFile string) error {
	game := newGame(ctx, w, d, newRemapper(w.logger, km, keymapFile))
	game.bindKeys(km)

	width, height := w.size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetTPS(driver.FrameRate)

	err := ebiten.RunGame(game)
	game.remap.finish()
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// game implements ebiten.Game. Update is the only caller of the driver
// while the window is open.
type game struct {
	ctx    context.Context
	window *Window
	driver *driver.Driver
	loader *loader.Loader
	remap  *remapper
	input  ebitenInput

	keys   [vm.KeyCount]ebiten.Key
	mapped [vm.KeyCount]bool

	image   *ebiten.Image
	cell    *ebiten.Image
	pixels  []byte
	refresh bool
}

func newGame(ctx context.Context, w *Window, d *driver.Driver, remap *remapper) *game {
	width, height := w.size()
	return &game{
		ctx:    ctx,
		window: w,
		driver: d,
		loader: loader.New(),
		remap:  remap,
		input:  ebitenInput{width: width, height: height},
		pixels: make([]byte, vm.DisplayWidth*vm.DisplayHeight*bytesPerPixel),
	}
}

// bindKeys resolves the host keys of the keymap.
func (g *game) bindKeys(km keymap.Keymap) {
	for key, name := range km {
		hostKey, ok := lookupKey(name)
		g.keys[key] = hostKey
		g.mapped[key] = ok
		if !ok {
			g.window.logger.Warn("Unknown host key in keymap, keypad key is unmapped",
				log.Hex("key", key), log.String("name", name))
		}
	}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if files := ebiten.DroppedFiles(); files != nil {
		g.dropROM(files)
	}

	g.input.keys = inpututil.AppendJustPressedKeys(g.input.keys[:0])
	g.input.pressed = g.input.pressed[:0]
	for _, key := range g.input.keys {
		g.input.pressed = append(g.input.pressed, key.String())
	}
	if g.remap.update(&g.input) {
		g.bindKeys(g.remap.keymap())
	}

	machine := g.driver.Machine()
	if g.remap.active() {
		for key := range uint8(vm.KeyCount) {
			machine.SetKey(key, false)
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.driver.SetSpeed(g.driver.Speed().Increase())
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.driver.SetSpeed(g.driver.Speed().Decrease())
	}

	for key, hostKey := range g.keys {
		if g.mapped[key] {
			machine.SetKey(uint8(key), ebiten.IsKeyPressed(hostKey))
		}
	}

	return g.driver.RunFrame()
}

// dropROM replaces the running program by a dropped ROM file.
func (g *game) dropROM(files fs.FS) {
	name, err := loadDropped(files, g.driver.Machine(), g.loader)
	if err != nil {
		g.window.logger.Error("Loading dropped ROM failed", log.Err(err))
		return
	}

	g.refresh = true
	ebiten.SetWindowTitle(windowTitle(name))
	g.window.logger.Info("Running dropped CHIP-8 ROM", log.String("file", name))
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(vm.DisplayWidth, vm.DisplayHeight)
		g.refresh = true
	}
	if g.refresh {
		g.Present(g.driver.Machine().Display())
		g.refresh = false
	}
	g.driver.Present(g)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.window.scale), float64(g.window.scale))
	screen.DrawImage(g.image, op)

	if g.remap.active() {
		g.drawKeypad(screen)
	}
}

// drawKeypad draws the keypad overlay of the remap mode with the host key
// mapped to every keypad key.
func (g *game) drawKeypad(screen *ebiten.Image) {
	if g.cell == nil {
		g.cell = ebiten.NewImage(1, 1)
		g.cell.Fill(color.White)
	}

	width, height := g.window.size()
	selected, selecting := g.remap.editor.Selected()
	km := g.remap.keymap()

	for key := range uint8(vm.KeyCount) {
		rect := keypadRect(key, width, height)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(rect.Dx()-2), float64(rect.Dy()-2))
		op.GeoM.Translate(float64(rect.Min.X+1), float64(rect.Min.Y+1))
		if selecting && key == selected {
			op.ColorScale.ScaleWithColor(selectedColor)
		} else {
			op.ColorScale.ScaleWithColor(keypadColor)
		}
		screen.DrawImage(g.cell, op)

		label := fmt.Sprintf("%X\n%s", key, km[key])
		ebitenutil.DebugPrintAt(screen, label, rect.Min.X+4, rect.Min.Y+4)
	}
}

// Present uploads the framebuffer to the display texture.
func (g *game) Present(display *vm.Display) {
	fillRGBA(g.pixels, display)
	g.image.WritePixels(g.pixels)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.window.size()
}

// ebitenInput reports the remap mode input of the current frame.
type ebitenInput struct {
	width   int
	height  int
	keys    []ebiten.Key
	pressed []string
}

func (i *ebitenInput) JustPressedKeys() []string {
	return i.pressed
}

func (i *ebitenInput) ClickedKey() (uint8, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, false
	}
	x, y := ebiten.CursorPosition()
	return keypadCell(x, y, i.width, i.height)
}

// lookupKey returns the ebiten key with the given name, ignoring case.
// Single digits are accepted as names of the number row keys.
func lookupKey(name string) (ebiten.Key, bool) {
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		name = "Digit" + name
	}
	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		if strings.EqualFold(key.String(), name) {
			return key, true
		}
	}
	return 0, false
}
