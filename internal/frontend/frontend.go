// Package frontend connects a driven CHIP-8 machine to the host: an ebiten
// window shows the display and feeds the keypad, an oto player outputs the
// beep while the sound timer is running. The window also offers a key
// remap mode (F1) and loads ROM files dropped on it.
//
// Building with the headless tag replaces both by implementations that do
// not need a display or audio device.
package frontend

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoDisplay is returned by Window.Run in headless builds.
var ErrNoDisplay = errors.New("no display support in this build")

// Window runs the machine in a window, see Run.
type Window struct {
	logger *log.Logger
	scale  int
	title  string
}

// NewWindow returns a window that scales every display pixel to scale x
// scale screen pixels. The name of the ROM is shown in the title.
func NewWindow(logger *log.Logger, scale int, rom string) *Window {
	scale = max(scale, 1)
	return &Window{
		logger: logger,
		scale:  scale,
		title:  windowTitle(rom),
	}
}

func windowTitle(rom string) string {
	return "retrochip8 - " + rom
}

func (w *Window) size() (int, int) {
	return vm.DisplayWidth * w.scale, vm.DisplayHeight * w.scale
}
