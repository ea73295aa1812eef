package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: built-in font, 16 glyphs of 5 bytes
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space (3584 bytes)
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the address ROMs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits into program space.
	MaxROMSize = MemorySize - ProgramStart

	// FontAddress is the address of the glyph for digit 0.
	FontAddress = 0x000

	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5

	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, written as a side effect by
	// arithmetic, shift and draw instructions.
	FlagRegister = 0xF

	// StackSize is the maximum subroutine nesting depth.
	StackSize = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16
)

var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Quirks selects between the behaviors that CHIP-8 dialects disagree on.
// The zero value is the common modern dialect.
type Quirks struct {
	// ShiftReadsVY makes 8xy6/8xyE shift Vy and store the result in Vx.
	ShiftReadsVY bool
	// LoadStoreIncrementsIndex makes Fx55/Fx65 advance I by x+1.
	LoadStoreIncrementsIndex bool
}

// RandomSource returns one random byte per call.
type RandomSource func() byte

// Config contains the collaborators and dialect of a machine.
// Nil collaborators are replaced by defaults.
type Config struct {
	Quirks  Quirks
	Speaker Speaker
	Random  RandomSource
	Trace   bool // log every executed instruction at debug level
}

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use,
// the driver has to serialize all calls.
type Machine struct {
	logger  *log.Logger
	quirks  Quirks
	speaker Speaker
	random  RandomSource
	trace   bool

	memory     [MemorySize]byte
	v          [RegisterCount]byte
	index      uint16
	pc         uint16
	stack      [StackSize]uint16
	sp         uint8
	delayTimer byte
	soundTimer byte
	keypad     [KeyCount]bool
	display    Display

	waitingForKey  bool
	unknownOpcodes uint64
}

// New returns a reset machine with the font loaded and no program.
func New(logger *log.Logger, cfg Config) *Machine {
	m := &Machine{
		logger:  logger,
		quirks:  cfg.Quirks,
		speaker: cfg.Speaker,
		random:  cfg.Random,
		trace:   cfg.Trace,
	}
	if m.speaker == nil {
		m.speaker = nopSpeaker{}
	}
	if m.random == nil {
		m.random = func() byte {
			return byte(rand.IntN(256))
		}
	}
	m.Reset()
	return m
}

// Reset zeroes all state, seeds the font at FontAddress and points the
// program counter at ProgramStart. Attached collaborators are kept.
func (m *Machine) Reset() {
	if m.soundTimer > 0 {
		m.speaker.StopSound()
	}

	m.memory = [MemorySize]byte{}
	m.v = [RegisterCount]byte{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.keypad = [KeyCount]bool{}
	m.display = Display{}
	m.waitingForKey = false
	m.unknownOpcodes = 0

	copy(m.memory[FontAddress:], font[:])
}

// Load copies the ROM into memory starting at ProgramStart.
// The machine is left unchanged if the ROM is larger than MaxROMSize.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.memory[ProgramStart:], rom)
	return nil
}

// PC returns the address of the next instruction to fetch.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the I register.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx, x is masked to 0-F.
func (m *Machine) Register(x uint8) byte {
	return m.v[x&0x0F]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// Sounding returns whether a tone should currently be played.
func (m *Machine) Sounding() bool {
	return m.soundTimer > 0
}

// SetKey sets the pressed state of a keypad key, key is masked to 0-F.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keypad[key&0x0F] = pressed
}

// Key returns whether a keypad key is pressed, key is masked to 0-F.
func (m *Machine) Key(key uint8) bool {
	return m.keypad[key&0x0F]
}

// Display returns the framebuffer of the machine.
func (m *Machine) Display() *Display {
	return &m.display
}

// WaitingForKey returns whether the last executed instruction was a
// wait for key that found no key pressed.
func (m *Machine) WaitingForKey() bool {
	return m.waitingForKey
}

// UnknownOpcodes returns the number of unknown opcodes encountered since
// the last reset.
func (m *Machine) UnknownOpcodes() uint64 {
	return m.unknownOpcodes
}

// ReadMemory returns the byte at the given address, the address is
// wrapped into the address space.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&MaxAddress]
}

// State is a read-only copy of the machine state.
type State struct {
	PC     uint16
	I      uint16
	V      [RegisterCount]byte
	DT     byte
	ST     byte
	SP     uint8
	Stack  [StackSize]uint16
	Keypad [KeyCount]bool
	Memory [MemorySize]byte
}

// Snapshot returns a copy of the machine state at the moment of the call.
func (m *Machine) Snapshot() State {
	return State{
		PC:     m.pc,
		I:      m.index,
		V:      m.v,
		DT:     m.delayTimer,
		ST:     m.soundTimer,
		SP:     m.sp,
		Stack:  m.stack,
		Keypad: m.keypad,
		Memory: m.memory,
	}
}
