//go:build headless

package frontend

import (
	"context"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/keymap"
)

// Run is not supported in headless builds and returns ErrNoDisplay.
func (w *Window) Run(_ context.Context, _ *driver.Driver, _ keymap.Keymap, _ string) error {
	return ErrNoDisplay
}
