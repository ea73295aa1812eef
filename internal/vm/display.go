package vm

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. It is only changed by the
// clear and draw instructions, both mark it as dirty.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
	dirty  bool
}

// Pixel returns whether the pixel at x,y is set. Coordinates wrap around
// the screen edges.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// Pixels returns a copy of the framebuffer rows.
func (d *Display) Pixels() [DisplayHeight][DisplayWidth]bool {
	return d.pixels
}

// Dirty returns whether the display changed since the last ClearDirty.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty is called by the renderer after presenting a frame.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// String renders the framebuffer as text, set pixels are shown as '#'.
func (d *Display) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", DisplayWidth) + "+\n"

	sb.WriteString(border)
	for _, row := range d.pixels {
		sb.WriteByte('|')
		for _, set := range row {
			if set {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func (d *Display) clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
	d.dirty = true
}

// drawSprite XORs the sprite rows onto the display with the top-left
// corner at x,y. Each sprite byte is one row of 8 pixels, the highest bit
// is the leftmost pixel. Pixels beyond the screen edges wrap around.
// It returns whether any set pixel was cleared.
func (d *Display) drawSprite(sprite []byte, x, y int) bool {
	collision := false
	for row, bits := range sprite {
		py := (y + row) % DisplayHeight
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (x + col) % DisplayWidth
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	d.dirty = true
	return collision
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
