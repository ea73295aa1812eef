package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembly text of an instruction word, for
// example "ld V1, $05". Unknown opcodes are returned as a data word.
func Disassemble(op Opcode) string {
	info, ok := decode(op)
	if !ok {
		return fmt.Sprintf(".word $%04X", uint16(op))
	}
	return info.format(op)
}

// IsSkip returns whether the opcode conditionally skips the next instruction.
func IsSkip(op Opcode) bool {
	info, ok := decode(op)
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(info.instruction.Name)
}

// format formats the instruction with its parameters.
func (info opcodeInfo) format(op Opcode) string {
	name := info.instruction.Name
	if params := info.operands(op); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func noOperands(Opcode) string {
	return ""
}

// addressOperand formats JP addr and CALL addr.
func addressOperand(op Opcode) string {
	return fmt.Sprintf("$%03X", op.NNN())
}

// offsetAddressOperands formats JP V0, addr.
func offsetAddressOperands(op Opcode) string {
	return fmt.Sprintf("V0, $%03X", op.NNN())
}

// indexAddressOperands formats LD I, addr.
func indexAddressOperands(op Opcode) string {
	return fmt.Sprintf("I, $%03X", op.NNN())
}

func registerOperand(op Opcode) string {
	return fmt.Sprintf("V%X", op.X())
}

func registerByteOperands(op Opcode) string {
	return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
}

func registerPairOperands(op Opcode) string {
	return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
}

func drawOperands(op Opcode) string {
	return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
}

// operandsWith returns a formatter for the Fx family, the layout has to
// contain exactly one verb that receives x.
func operandsWith(layout string) func(Opcode) string {
	return func(op Opcode) string {
		return fmt.Sprintf(layout, op.X())
	}
}
