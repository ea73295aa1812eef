package keymap

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/vm"
)

const noSelection = -1

// Editor changes a keymap interactively. A keypad key is selected first,
// the next host key that is bound replaces its mapping.
type Editor struct {
	keymap   Keymap
	active   bool
	selected int
	modified bool
}

// NewEditor returns an inactive editor for the given keymap.
func NewEditor(km Keymap) *Editor {
	return &Editor{
		keymap:   km,
		selected: noSelection,
	}
}

// Keymap returns the current mappings.
func (e *Editor) Keymap() Keymap {
	return e.keymap
}

// Active returns whether the editor is in remap mode.
func (e *Editor) Active() bool {
	return e.active
}

// Modified returns whether a mapping changed since the mode was entered.
func (e *Editor) Modified() bool {
	return e.modified
}

// Toggle enters or leaves remap mode and returns the new state.
// The selection is cleared in both directions.
func (e *Editor) Toggle() bool {
	e.active = !e.active
	e.selected = noSelection
	if e.active {
		e.modified = false
	}
	return e.active
}

// Select marks the keypad key that the next bound host key is assigned to.
func (e *Editor) Select(key uint8) error {
	if !e.active {
		return nil
	}
	if key >= vm.KeyCount {
		return fmt.Errorf("keypad key %X out of range", key)
	}
	e.selected = int(key)
	return nil
}

// SelectNext moves the selection to the following keypad key, starting
// with key 0 when nothing is selected.
func (e *Editor) SelectNext() {
	if !e.active {
		return
	}
	e.selected = (e.selected + 1) % vm.KeyCount
}

// Selected returns the keypad key waiting for a host key.
func (e *Editor) Selected() (uint8, bool) {
	if e.selected == noSelection {
		return 0, false
	}
	return uint8(e.selected), true
}

// Bind assigns the host key to the selected keypad key and clears the
// selection. A host key that was mapped to another keypad key before is
// swapped, that key receives the previous mapping of the selected key.
// swapped is only valid if swap is true.
func (e *Editor) Bind(name string) (key, swapped uint8, swap, ok bool) {
	selected, ok := e.Selected()
	if !ok {
		return 0, 0, false, false
	}

	previous, bound := e.keymap.Key(name)
	if bound && previous != selected {
		e.keymap[previous] = e.keymap[selected]
		swapped, swap = previous, true
	}

	e.keymap[selected] = name
	e.selected = noSelection
	e.modified = true
	return selected, swapped, swap, true
}

// Reset restores the default keymap.
func (e *Editor) Reset() {
	e.keymap = Default()
	e.selected = noSelection
	e.modified = true
}
