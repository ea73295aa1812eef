// Package keymap maps the 16 keys of the CHIP-8 hexadecimal keypad to host
// keyboard keys and persists the mapping in a plain text file.
//
// The file contains one mapping per line in the form "<hex key> <host key>",
// for example "A Z". Host key names are the names of the keys as reported
// by the frontend, compared case-insensitively.
package keymap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// DefaultFile is the name of the keymap file that is used if none is given.
const DefaultFile = "keymap.cfg"

// Keymap contains the host key name for every keypad key.
type Keymap [vm.KeyCount]string

// defaultKeymap uses the common QWERTY layout:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var defaultKeymap = Keymap{
	0x0: "X",
	0x1: "Digit1",
	0x2: "Digit2",
	0x3: "Digit3",
	0x4: "Q",
	0x5: "W",
	0x6: "E",
	0x7: "A",
	0x8: "S",
	0x9: "D",
	0xA: "Z",
	0xB: "C",
	0xC: "Digit4",
	0xD: "R",
	0xE: "F",
	0xF: "V",
}

// Default returns the QWERTY keymap.
func Default() Keymap {
	return defaultKeymap
}

// Stats counts the lines of a keymap file.
type Stats struct {
	Loaded  int // mappings applied
	Skipped int // malformed lines
}

// Parse reads mappings from the reader on top of the default keymap.
// Empty lines and lines starting with # are ignored, malformed lines are
// skipped and counted.
func Parse(reader io.Reader) (Keymap, Stats, error) {
	km := Default()
	var stats Stats

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, name, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			continue
		}
		km[key] = name
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return km, stats, fmt.Errorf("reading keymap: %w", err)
	}
	return km, stats, nil
}

func parseLine(line string) (uint8, string, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, "", false
	}
	key, err := strconv.ParseUint(fields[0], 16, 8)
	if err != nil || key >= vm.KeyCount {
		return 0, "", false
	}
	return uint8(key), fields[1], true
}

// Load reads a keymap file. A missing file is not an error, the default
// keymap is returned instead and exists is false.
func Load(path string) (km Keymap, exists bool, stats Stats, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), false, Stats{}, nil
		}
		return Default(), false, Stats{}, fmt.Errorf("opening keymap file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	km, stats, err = Parse(file)
	return km, true, stats, err
}

// Write writes all 16 mappings in keypad order.
func (km Keymap) Write(writer io.Writer) error {
	for key, name := range km {
		if _, err := fmt.Fprintf(writer, "%X %s\n", key, name); err != nil {
			return fmt.Errorf("writing keymap: %w", err)
		}
	}
	return nil
}

// Save writes the keymap to the given file, replacing an existing one.
func (km Keymap) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating keymap file %s: %w", path, err)
	}

	if err := km.Write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing keymap file %s: %w", path, err)
	}
	return nil
}

// Key returns the keypad key that is mapped to the host key name.
func (km Keymap) Key(name string) (uint8, bool) {
	for key, mapped := range km {
		if strings.EqualFold(mapped, name) {
			return uint8(key), true
		}
	}
	return 0, false
}
