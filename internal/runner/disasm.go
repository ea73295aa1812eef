package runner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/vm"
)

// writeListing writes one line per instruction word of the ROM, starting
// at the program load address. Data inside the program is listed as the
// instruction it decodes to, or as .word if it does not decode. A trailing
// odd byte is listed as .byte.
func writeListing(writer io.Writer, rom []byte) error {
	buf := bufio.NewWriter(writer)

	for offset := 0; offset < len(rom); offset += 2 {
		address := vm.ProgramStart + offset

		if offset+1 == len(rom) {
			if _, err := fmt.Fprintf(buf, "$%03X  %02X    .byte $%02X\n", address, rom[offset], rom[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		op := vm.Opcode(uint16(rom[offset])<<8 | uint16(rom[offset+1]))
		text := vm.Disassemble(op)
		if vm.IsSkip(op) {
			text += " ; skips next"
		}
		if _, err := fmt.Fprintf(buf, "$%03X  %04X  %s\n", address, uint16(op), text); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}
