package vm

// Opcode is a 16-bit CHIP-8 instruction word.
//
// Operand fields:
//
//	x   = bits 8-11
//	y   = bits 4-7
//	n   = bits 0-3
//	nn  = bits 0-7
//	nnn = bits 0-11
type Opcode uint16

// X returns the register index encoded in bits 8-11.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the register index encoded in bits 4-7.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// NN returns the low byte.
func (o Opcode) NN() uint8 {
	return uint8(o)
}

// NNN returns the 12-bit address field.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// family returns the top nibble that selects the opcode family.
func (o Opcode) family() int {
	return int(o >> 12)
}
