package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1234, "jp $234"},
		{0x2300, "call $300"},
		{0x3234, "se V2, $34"},
		{0x4A01, "sne VA, $01"},
		{0x5120, "se V1, V2"},
		{0x6105, "ld V1, $05"},
		{0x7FFF, "add VF, $FF"},
		{0x8120, "ld V1, V2"},
		{0x8121, "or V1, V2"},
		{0x8122, "and V1, V2"},
		{0x8123, "xor V1, V2"},
		{0x8124, "add V1, V2"},
		{0x8125, "sub V1, V2"},
		{0x8126, "shr V1"},
		{0x8127, "subn V1, V2"},
		{0x812E, "shl V1"},
		{0x9120, "sne V1, V2"},
		{0xA2F0, "ld I, $2F0"},
		{0xB300, "jp V0, $300"},
		{0xC50F, "rnd V5, $0F"},
		{0xD125, "drw V1, V2, $5"},
		{0xE39E, "skp V3"},
		{0xE3A1, "sknp V3"},
		{0xF307, "ld V3, DT"},
		{0xF30A, "ld V3, K"},
		{0xF315, "ld DT, V3"},
		{0xF318, "ld ST, V3"},
		{0xF31E, "add I, V3"},
		{0xF329, "ld F, V3"},
		{0xF333, "ld B, V3"},
		{0xF355, "ld [I], V3"},
		{0xF365, "ld V3, [I]"},
		{0x0123, ".word $0123"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Disassemble(Opcode(tt.opcode)))
		})
	}
}

func TestIsSkip(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected bool
	}{
		{"SE instruction", 0x3234, true},
		{"SNE instruction", 0x9120, true},
		{"SKP instruction", 0xE39E, true},
		{"SKNP instruction", 0xE3A1, true},
		{"jump instruction", 0x1234, false},
		{"load instruction", 0x6105, false},
		{"unknown instruction", 0x0123, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSkip(Opcode(tt.opcode)))
		})
	}
}

func TestOpcodeTable(t *testing.T) {
	count := 0
	for family, entries := range opcodeTable {
		for _, info := range entries {
			count++
			assert.NotNil(t, info.instruction)
			assert.NotNil(t, info.exec)
			assert.Equal(t, family, int(info.value>>12))
			assert.Equal(t, info.value, info.value&info.mask)

			decoded, ok := decode(Opcode(info.value))
			assert.True(t, ok)
			assert.Equal(t, info.value, decoded.value)
		}
	}
	assert.Equal(t, 34, count)
}

func TestOpcodeOperands(t *testing.T) {
	op := Opcode(0xD5A7)

	assert.Equal(t, uint8(0x5), op.X())
	assert.Equal(t, uint8(0xA), op.Y())
	assert.Equal(t, uint8(0x7), op.N())
	assert.Equal(t, uint8(0xA7), op.NN())
	assert.Equal(t, uint16(0x5A7), op.NNN())
	assert.Equal(t, 0xD, op.family())
}
