package frontend

import (
	"image/color"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Colors of set and cleared display pixels.
var (
	PixelOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	PixelOff = color.RGBA{A: 0xFF}
)

const bytesPerPixel = 4

// fillRGBA converts the framebuffer to RGBA bytes, dst has to hold
// DisplayWidth*DisplayHeight pixels.
func fillRGBA(dst []byte, display *vm.Display) {
	offset := 0
	for _, row := range display.Pixels() {
		for _, set := range row {
			c := PixelOff
			if set {
				c = PixelOn
			}
			dst[offset] = c.R
			dst[offset+1] = c.G
			dst[offset+2] = c.B
			dst[offset+3] = c.A
			offset += bytesPerPixel
		}
	}
}
