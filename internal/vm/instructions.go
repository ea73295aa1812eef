package vm

import "fmt"

// The handlers run after the program counter has been advanced past the
// executed instruction. A handler that returns an error must not have
// modified any machine state.

// 00E0: CLS
func (m *Machine) execClearScreen(Opcode) error {
	m.display.clear()
	return nil
}

// 00EE: RET, the popped address already points past the CALL.
func (m *Machine) execReturn(Opcode) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// 1nnn: JP addr
func (m *Machine) execJump(op Opcode) error {
	m.pc = op.NNN()
	return nil
}

// 2nnn: CALL addr
func (m *Machine) execCall(op Opcode) error {
	if int(m.sp) >= StackSize {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, m.sp)
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = op.NNN()
	return nil
}

// 3xnn: SE Vx, byte
func (m *Machine) execSkipEqualImmediate(op Opcode) error {
	m.skipIf(m.v[op.X()] == op.NN())
	return nil
}

// 4xnn: SNE Vx, byte
func (m *Machine) execSkipNotEqualImmediate(op Opcode) error {
	m.skipIf(m.v[op.X()] != op.NN())
	return nil
}

// 5xy0: SE Vx, Vy
func (m *Machine) execSkipEqualRegister(op Opcode) error {
	m.skipIf(m.v[op.X()] == m.v[op.Y()])
	return nil
}

// 6xnn: LD Vx, byte
func (m *Machine) execLoadImmediate(op Opcode) error {
	m.v[op.X()] = op.NN()
	return nil
}

// 7xnn: ADD Vx, byte, VF is not affected.
func (m *Machine) execAddImmediate(op Opcode) error {
	m.v[op.X()] += op.NN()
	return nil
}

// 8xy0: LD Vx, Vy
func (m *Machine) execCopy(op Opcode) error {
	m.v[op.X()] = m.v[op.Y()]
	return nil
}

// 8xy1: OR Vx, Vy
func (m *Machine) execOr(op Opcode) error {
	m.v[op.X()] |= m.v[op.Y()]
	m.v[FlagRegister] = 0
	return nil
}

// 8xy2: AND Vx, Vy
func (m *Machine) execAnd(op Opcode) error {
	m.v[op.X()] &= m.v[op.Y()]
	m.v[FlagRegister] = 0
	return nil
}

// 8xy3: XOR Vx, Vy
func (m *Machine) execXor(op Opcode) error {
	m.v[op.X()] ^= m.v[op.Y()]
	m.v[FlagRegister] = 0
	return nil
}

// 8xy4: ADD Vx, Vy, VF = carry
func (m *Machine) execAddRegister(op Opcode) error {
	sum := uint16(m.v[op.X()]) + uint16(m.v[op.Y()])
	m.setWithFlag(op.X(), byte(sum), sum > 0xFF)
	return nil
}

// 8xy5: SUB Vx, Vy, VF = not borrow
func (m *Machine) execSubtract(op Opcode) error {
	vx, vy := m.v[op.X()], m.v[op.Y()]
	m.setWithFlag(op.X(), vx-vy, vx >= vy)
	return nil
}

// 8xy6: SHR Vx, VF = shifted out bit
func (m *Machine) execShiftRight(op Opcode) error {
	value := m.shiftSource(op)
	m.setWithFlag(op.X(), value>>1, value&0x01 != 0)
	return nil
}

// 8xy7: SUBN Vx, Vy, VF = not borrow
func (m *Machine) execReverseSubtract(op Opcode) error {
	vx, vy := m.v[op.X()], m.v[op.Y()]
	m.setWithFlag(op.X(), vy-vx, vy >= vx)
	return nil
}

// 8xyE: SHL Vx, VF = shifted out bit
func (m *Machine) execShiftLeft(op Opcode) error {
	value := m.shiftSource(op)
	m.setWithFlag(op.X(), value<<1, value&0x80 != 0)
	return nil
}

// 9xy0: SNE Vx, Vy
func (m *Machine) execSkipNotEqualRegister(op Opcode) error {
	m.skipIf(m.v[op.X()] != m.v[op.Y()])
	return nil
}

// Annn: LD I, addr
func (m *Machine) execSetIndex(op Opcode) error {
	m.index = op.NNN()
	return nil
}

// Bnnn: JP V0, addr
func (m *Machine) execJumpOffset(op Opcode) error {
	m.pc = op.NNN() + uint16(m.v[0])
	return nil
}

// Cxnn: RND Vx, byte
func (m *Machine) execRandom(op Opcode) error {
	m.v[op.X()] = m.random() & op.NN()
	return nil
}

// Dxyn: DRW Vx, Vy, nibble
func (m *Machine) execDraw(op Opcode) error {
	height := int(op.N())
	if err := m.checkIndexRange(height); err != nil {
		return err
	}

	sprite := m.memory[m.index : int(m.index)+height]
	x := int(m.v[op.X()]) % DisplayWidth
	y := int(m.v[op.Y()]) % DisplayHeight
	collision := m.display.drawSprite(sprite, x, y)
	m.v[FlagRegister] = flag(collision)
	return nil
}

// Ex9E: SKP Vx
func (m *Machine) execSkipKeyPressed(op Opcode) error {
	m.skipIf(m.Key(m.v[op.X()]))
	return nil
}

// ExA1: SKNP Vx
func (m *Machine) execSkipKeyNotPressed(op Opcode) error {
	m.skipIf(!m.Key(m.v[op.X()]))
	return nil
}

// Fx07: LD Vx, DT
func (m *Machine) execReadDelayTimer(op Opcode) error {
	m.v[op.X()] = m.delayTimer
	return nil
}

// Fx0A: LD Vx, K
func (m *Machine) execWaitForKey(op Opcode) error {
	for key, pressed := range m.keypad {
		if pressed {
			m.v[op.X()] = byte(key)
			return nil
		}
	}
	m.holdProgramCounter()
	return nil
}

// Fx15: LD DT, Vx
func (m *Machine) execSetDelayTimer(op Opcode) error {
	m.delayTimer = m.v[op.X()]
	return nil
}

// Fx18: LD ST, Vx
func (m *Machine) execSetSoundTimer(op Opcode) error {
	wasSounding := m.soundTimer > 0
	m.soundTimer = m.v[op.X()]

	switch {
	case m.soundTimer > 0:
		m.speaker.StartSound()
	case wasSounding:
		m.speaker.StopSound()
	}
	return nil
}

// Fx1E: ADD I, Vx
func (m *Machine) execAddIndex(op Opcode) error {
	m.index += uint16(m.v[op.X()])
	return nil
}

// Fx29: LD F, Vx
func (m *Machine) execFontGlyph(op Opcode) error {
	digit := uint16(m.v[op.X()] & 0x0F)
	m.index = FontAddress + GlyphSize*digit
	return nil
}

// Fx33: LD B, Vx
func (m *Machine) execStoreBCD(op Opcode) error {
	if err := m.checkIndexRange(3); err != nil {
		return err
	}
	value := m.v[op.X()]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return nil
}

// Fx55: LD [I], Vx
func (m *Machine) execStoreRegisters(op Opcode) error {
	count := int(op.X()) + 1
	if err := m.checkIndexRange(count); err != nil {
		return err
	}
	copy(m.memory[m.index:], m.v[:count])
	m.advanceIndexAfterLoadStore(count)
	return nil
}

// Fx65: LD Vx, [I]
func (m *Machine) execLoadRegisters(op Opcode) error {
	count := int(op.X()) + 1
	if err := m.checkIndexRange(count); err != nil {
		return err
	}
	copy(m.v[:count], m.memory[m.index:])
	m.advanceIndexAfterLoadStore(count)
	return nil
}

// skipIf skips the following instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// holdProgramCounter undoes the fetch advance so that the current
// instruction is executed again on the next step.
func (m *Machine) holdProgramCounter() {
	m.pc -= 2
	m.waitingForKey = true
}

// setWithFlag stores the result in Vx and then the flag in VF, so that the
// flag wins for operations on VF itself.
func (m *Machine) setWithFlag(x uint8, result byte, set bool) {
	m.v[x] = result
	m.v[FlagRegister] = flag(set)
}

func (m *Machine) shiftSource(op Opcode) byte {
	if m.quirks.ShiftReadsVY {
		return m.v[op.Y()]
	}
	return m.v[op.X()]
}

func (m *Machine) advanceIndexAfterLoadStore(count int) {
	if m.quirks.LoadStoreIncrementsIndex {
		m.index += uint16(count)
	}
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}
