package vm

import "errors"

var (
	// ErrROMTooLarge is returned when a ROM does not fit into program memory.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrUnknownOpcode is returned for instruction words that match no instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow is returned for a call with all stack entries in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned for a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMemoryOutOfBounds is returned when an access would leave the address space.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
)
