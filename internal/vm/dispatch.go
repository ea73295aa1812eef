package vm

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// handler executes one decoded instruction against the machine.
type handler func(m *Machine, op Opcode) error

// opcodeInfo describes one instruction encoding. An opcode matches when
// opcode&mask == value.
type opcodeInfo struct {
	mask        uint16
	value       uint16
	instruction *chip8.Instruction
	operands    func(op Opcode) string
	exec        handler
}

// opcodeTable lists all supported encodings, indexed by the top nibble.
var opcodeTable = [16][]opcodeInfo{
	0x0: {
		{0xFFFF, 0x00E0, chip8.Cls, noOperands, (*Machine).execClearScreen},
		{0xFFFF, 0x00EE, chip8.Ret, noOperands, (*Machine).execReturn},
	},
	0x1: {
		{0xF000, 0x1000, chip8.Jp, addressOperand, (*Machine).execJump},
	},
	0x2: {
		{0xF000, 0x2000, chip8.Call, addressOperand, (*Machine).execCall},
	},
	0x3: {
		{0xF000, 0x3000, chip8.Se, registerByteOperands, (*Machine).execSkipEqualImmediate},
	},
	0x4: {
		{0xF000, 0x4000, chip8.Sne, registerByteOperands, (*Machine).execSkipNotEqualImmediate},
	},
	0x5: {
		{0xF00F, 0x5000, chip8.Se, registerPairOperands, (*Machine).execSkipEqualRegister},
	},
	0x6: {
		{0xF000, 0x6000, chip8.Ld, registerByteOperands, (*Machine).execLoadImmediate},
	},
	0x7: {
		{0xF000, 0x7000, chip8.Add, registerByteOperands, (*Machine).execAddImmediate},
	},
	0x8: {
		{0xF00F, 0x8000, chip8.Ld, registerPairOperands, (*Machine).execCopy},
		{0xF00F, 0x8001, chip8.Or, registerPairOperands, (*Machine).execOr},
		{0xF00F, 0x8002, chip8.And, registerPairOperands, (*Machine).execAnd},
		{0xF00F, 0x8003, chip8.Xor, registerPairOperands, (*Machine).execXor},
		{0xF00F, 0x8004, chip8.Add, registerPairOperands, (*Machine).execAddRegister},
		{0xF00F, 0x8005, chip8.Sub, registerPairOperands, (*Machine).execSubtract},
		{0xF00F, 0x8006, chip8.Shr, registerOperand, (*Machine).execShiftRight},
		{0xF00F, 0x8007, chip8.Subn, registerPairOperands, (*Machine).execReverseSubtract},
		{0xF00F, 0x800E, chip8.Shl, registerOperand, (*Machine).execShiftLeft},
	},
	0x9: {
		{0xF00F, 0x9000, chip8.Sne, registerPairOperands, (*Machine).execSkipNotEqualRegister},
	},
	0xA: {
		{0xF000, 0xA000, chip8.Ld, indexAddressOperands, (*Machine).execSetIndex},
	},
	0xB: {
		{0xF000, 0xB000, chip8.Jp, offsetAddressOperands, (*Machine).execJumpOffset},
	},
	0xC: {
		{0xF000, 0xC000, chip8.Rnd, registerByteOperands, (*Machine).execRandom},
	},
	0xD: {
		{0xF000, 0xD000, chip8.Drw, drawOperands, (*Machine).execDraw},
	},
	0xE: {
		{0xF0FF, 0xE09E, chip8.Skp, registerOperand, (*Machine).execSkipKeyPressed},
		{0xF0FF, 0xE0A1, chip8.Sknp, registerOperand, (*Machine).execSkipKeyNotPressed},
	},
	0xF: {
		{0xF0FF, 0xF007, chip8.Ld, operandsWith("V%X, DT"), (*Machine).execReadDelayTimer},
		{0xF0FF, 0xF00A, chip8.Ld, operandsWith("V%X, K"), (*Machine).execWaitForKey},
		{0xF0FF, 0xF015, chip8.Ld, operandsWith("DT, V%X"), (*Machine).execSetDelayTimer},
		{0xF0FF, 0xF018, chip8.Ld, operandsWith("ST, V%X"), (*Machine).execSetSoundTimer},
		{0xF0FF, 0xF01E, chip8.Add, operandsWith("I, V%X"), (*Machine).execAddIndex},
		{0xF0FF, 0xF029, chip8.Ld, operandsWith("F, V%X"), (*Machine).execFontGlyph},
		{0xF0FF, 0xF033, chip8.Ld, operandsWith("B, V%X"), (*Machine).execStoreBCD},
		{0xF0FF, 0xF055, chip8.Ld, operandsWith("[I], V%X"), (*Machine).execStoreRegisters},
		{0xF0FF, 0xF065, chip8.Ld, operandsWith("V%X, [I]"), (*Machine).execLoadRegisters},
	},
}

// decode returns the table entry matching the opcode.
func decode(op Opcode) (opcodeInfo, bool) {
	for _, info := range opcodeTable[op.family()] {
		if uint16(op)&info.mask == info.value {
			return info, true
		}
	}
	return opcodeInfo{}, false
}
