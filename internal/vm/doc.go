// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Model
//
// A Machine owns all mutable state of one CHIP-8 run:
//   - 4KB of memory (0x000-MaxAddress), the built-in font at FontAddress
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 16-bit index register I and program counter
//   - a 16 entry return address stack
//   - delay and sound timers
//   - a 16 key hexadecimal keypad
//   - a 64x32 monochrome Display with a dirty flag
//
// # Driving the Machine
//
// The machine never decides how often it runs. An external driver calls
// Step once per instruction and TickTimers at a fixed 60 Hz logical rate,
// writes key states with SetKey before stepping and presents the Display
// whenever it reports itself as dirty:
//
//	machine := vm.New(logger, vm.Config{})
//	if err := machine.Load(rom); err != nil {
//		return err
//	}
//	for frame := 0; frame < frames; frame++ {
//		for i := 0; i < 10; i++ {
//			if err := machine.Step(); err != nil && !errors.Is(err, vm.ErrUnknownOpcode) {
//				return err
//			}
//		}
//		machine.TickTimers()
//	}
//
// # Dialect
//
// The default dialect follows the common modern convention: shift
// instructions operate on Vx only and the register dump/load instructions
// leave I untouched. Both behaviors can be switched through Quirks.
//
// # Errors
//
// Unknown opcodes are reported as ErrUnknownOpcode after advancing the
// program counter, execution can continue. Stack overflow/underflow and
// index based memory accesses outside of the address space are reported as
// ErrStackOverflow, ErrStackUnderflow and ErrMemoryOutOfBounds; the failing
// instruction has no effect and the program counter stays on it.
package vm
