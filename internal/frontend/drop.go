package frontend

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/vm"
)

var errNoDroppedFile = errors.New("no regular file dropped")

// loadDropped loads the first regular file of the dropped files into the
// machine and restarts it. The running program is kept if the file can
// not be loaded.
func loadDropped(fsys fs.FS, machine *vm.Machine, l *loader.Loader) (string, error) {
	name, err := firstFile(fsys)
	if err != nil {
		return "", err
	}

	file, err := fsys.Open(name)
	if err != nil {
		return name, fmt.Errorf("%w: opening dropped file %s: %w", loader.ErrROMUnreadable, name, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFromReader(file)
	if err != nil {
		return name, fmt.Errorf("loading %s: %w", name, err)
	}

	machine.Reset()
	if err := machine.Load(rom); err != nil {
		return name, fmt.Errorf("loading ROM into memory: %w", err)
	}
	return name, nil
}

func firstFile(fsys fs.FS) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", fmt.Errorf("reading dropped files: %w", err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			return entry.Name(), nil
		}
	}
	return "", errNoDroppedFile
}
