package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Step fetches, decodes and executes exactly one instruction.
//
// The program counter is advanced past the instruction before it is
// executed, skips add 2 more and jumps overwrite it.
func (m *Machine) Step() error {
	address := m.pc
	opcode, err := m.fetch(address)
	if err != nil {
		return err
	}
	m.pc += 2
	m.waitingForKey = false

	info, ok := decode(opcode)
	if !ok {
		m.unknownOpcodes++
		m.logger.Warn("Unknown opcode",
			log.Hex("opcode", uint16(opcode)),
			log.Hex("address", address))
		return fmt.Errorf("%w: $%04X at $%03X", ErrUnknownOpcode, uint16(opcode), address)
	}

	if m.trace {
		m.logger.Debug("Executing",
			log.Hex("address", address),
			log.Hex("opcode", uint16(opcode)),
			log.String("instruction", info.format(opcode)))
	}

	if err := info.exec(m, opcode); err != nil {
		m.pc = address
		return fmt.Errorf("executing %s at $%03X: %w", info.format(opcode), address, err)
	}
	return nil
}

// fetch reads the big-endian instruction word at the given address.
func (m *Machine) fetch(address uint16) (Opcode, error) {
	if address > MaxAddress-1 {
		return 0, fmt.Errorf("%w: fetching instruction at $%04X", ErrMemoryOutOfBounds, address)
	}
	high := m.memory[address]
	low := m.memory[address+1]
	return Opcode(uint16(high)<<8 | uint16(low)), nil
}

// checkIndexRange verifies that length bytes starting at I are addressable.
func (m *Machine) checkIndexRange(length int) error {
	if int(m.index)+length > MemorySize {
		return fmt.Errorf("%w: I=$%04X length %d", ErrMemoryOutOfBounds, m.index, length)
	}
	return nil
}
