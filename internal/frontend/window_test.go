//go:build !headless

package frontend

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookupKey(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"Q", ebiten.KeyQ},
		{"q", ebiten.KeyQ},
		{"Digit1", ebiten.KeyDigit1},
		{"4", ebiten.KeyDigit4},
		{"Space", ebiten.KeySpace},
		{"ArrowUp", ebiten.KeyArrowUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := lookupKey(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, key)
		})
	}

	_, ok := lookupKey("NoSuchKey")
	assert.False(t, ok)
}

func TestLookupKey_DefaultKeymap(t *testing.T) {
	for _, name := range keymap.Default() {
		_, ok := lookupKey(name)
		assert.True(t, ok)
	}
}
