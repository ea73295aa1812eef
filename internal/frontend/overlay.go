package frontend

import "image"

// keypadLayout is the physical arrangement of the hexadecimal keypad.
var keypadLayout = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

// keypadBounds returns the square that holds the keypad overlay, centered
// on a screen of the given size.
func keypadBounds(width, height int) image.Rectangle {
	side := min(width, height) * 4 / 5
	side -= side % len(keypadLayout)
	x := (width - side) / 2
	y := (height - side) / 2
	return image.Rect(x, y, x+side, y+side)
}

// keypadRect returns the screen rectangle of a keypad key.
func keypadRect(key uint8, width, height int) image.Rectangle {
	bounds := keypadBounds(width, height)
	cell := bounds.Dx() / len(keypadLayout)

	for row, keys := range keypadLayout {
		for col, k := range keys {
			if k != key {
				continue
			}
			minPoint := bounds.Min.Add(image.Pt(col*cell, row*cell))
			return image.Rectangle{Min: minPoint, Max: minPoint.Add(image.Pt(cell, cell))}
		}
	}
	return image.Rectangle{}
}

// keypadCell returns the keypad key at the screen position.
func keypadCell(x, y, width, height int) (uint8, bool) {
	bounds := keypadBounds(width, height)
	cell := bounds.Dx() / len(keypadLayout)
	if cell == 0 || !image.Pt(x, y).In(bounds) {
		return 0, false
	}

	col := (x - bounds.Min.X) / cell
	row := (y - bounds.Min.Y) / cell
	return keypadLayout[row][col], true
}
