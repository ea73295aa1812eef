package frontend

import (
	"slices"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
)

// Host key names with a fixed meaning in remap mode.
const (
	remapToggleKey = "F1"
	remapNextKey   = "Tab"
	quitKey        = "Escape"
)

var resetKeys = []string{"ControlLeft", "ControlRight"}

// remapInput reports the input events of one frame.
type remapInput interface {
	// JustPressedKeys returns the names of the host keys pressed this frame.
	JustPressedKeys() []string
	// ClickedKey returns the keypad key clicked on the overlay this frame.
	ClickedKey() (uint8, bool)
}

// remapper handles the interactive key remap mode. F1 toggles the mode,
// a keypad key is selected by clicking it or with Tab and the next host
// key pressed is bound to it. Ctrl restores the default layout. Changed
// mappings are saved when the mode is left.
type remapper struct {
	logger *log.Logger
	editor *keymap.Editor
	path   string
}

func newRemapper(logger *log.Logger, km keymap.Keymap, path string) *remapper {
	return &remapper{
		logger: logger,
		editor: keymap.NewEditor(km),
		path:   path,
	}
}

// update processes the input of a frame and returns whether the keymap
// changed.
func (r *remapper) update(in remapInput) bool {
	pressed := in.JustPressedKeys()
	if slices.Contains(pressed, remapToggleKey) {
		r.toggle()
		return false
	}
	if !r.editor.Active() {
		return false
	}

	if key, ok := in.ClickedKey(); ok {
		r.selectKey(key)
	}

	changed := false
	for _, name := range pressed {
		switch {
		case slices.Contains(resetKeys, name):
			r.editor.Reset()
			r.logger.Info("Keymap reset to default layout")
			changed = true

		case name == remapNextKey:
			r.editor.SelectNext()
			if key, ok := r.editor.Selected(); ok {
				r.logger.Info("Press a host key to map keypad key", log.Hex("key", key))
			}

		case name == quitKey:
			// handled by the game

		default:
			if r.bind(name) {
				changed = true
			}
		}
	}
	return changed
}

func (r *remapper) selectKey(key uint8) {
	if err := r.editor.Select(key); err != nil {
		r.logger.Error("Selecting keypad key failed", log.Err(err))
		return
	}
	r.logger.Info("Press a host key to map keypad key", log.Hex("key", key))
}

func (r *remapper) bind(name string) bool {
	key, swapped, swap, ok := r.editor.Bind(name)
	if !ok {
		return false
	}

	if swap {
		r.logger.Info("Keypad key swapped",
			log.Hex("key", swapped), log.String("name", r.editor.Keymap()[swapped]))
	}
	r.logger.Info("Keypad key mapped", log.Hex("key", key), log.String("name", name))
	return true
}

func (r *remapper) toggle() {
	if r.editor.Toggle() {
		r.logger.Info("Key remap mode entered, click a keypad key or press Tab to select one")
		return
	}
	r.logger.Info("Key remap mode left")
	r.save()
}

// finish leaves the remap mode if it is active, saving pending changes.
func (r *remapper) finish() {
	if r.editor.Active() {
		r.toggle()
	}
}

// active returns whether the keypad is released to the remap mode.
func (r *remapper) active() bool {
	return r.editor.Active()
}

func (r *remapper) keymap() keymap.Keymap {
	return r.editor.Keymap()
}

func (r *remapper) save() {
	if !r.editor.Modified() || r.path == "" {
		return
	}
	if err := r.editor.Keymap().Save(r.path); err != nil {
		r.logger.Error("Saving keymap failed", log.String("file", r.path), log.Err(err))
		return
	}
	r.logger.Info("Keymap saved", log.String("file", r.path))
}
