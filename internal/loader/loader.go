// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrROMUnreadable is returned when a ROM file can not be opened or read,
// or contains no data.
var ErrROMUnreadable = errors.New("rom unreadable")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM file. ROMs do not have a header, the file
// content is returned verbatim. Files larger than vm.MaxROMSize are
// rejected with vm.ErrROMTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrROMUnreadable, path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a raw CHIP-8 ROM from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// one byte more than allowed is enough to detect oversized ROMs
	data, err := io.ReadAll(io.LimitReader(reader, vm.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrROMUnreadable, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: file is empty", ErrROMUnreadable)
	case len(data) > vm.MaxROMSize:
		return nil, fmt.Errorf("%w: more than %d bytes", vm.ErrROMTooLarge, vm.MaxROMSize)
	}
	return data, nil
}
