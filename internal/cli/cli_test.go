package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "game.ch8")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, keymap.DefaultFile, opts.Keymap)
	assert.Equal(t, 100, opts.Speed)
	assert.Equal(t, 10, opts.Cycles)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, uint64(600), opts.Frames)
	assert.False(t, opts.Headless)
	assert.False(t, opts.ShiftReadsVY)
	assert.False(t, opts.LoadStoreIncrementsIndex)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "input flag",
			args: []string{"-i", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "game.ch8", opts.Input)
			},
		},
		{
			name: "speed and cycles",
			args: []string{"-speed", "150", "-cycles", "20", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 150, opts.Speed)
				assert.Equal(t, 20, opts.Cycles)
			},
		},
		{
			name: "headless",
			args: []string{"-headless", "-frames", "10", "-mute", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Headless)
				assert.True(t, opts.Mute)
				assert.Equal(t, uint64(10), opts.Frames)
			},
		},
		{
			name: "quirks",
			args: []string{"-shift-vy", "-index-increment", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.ShiftReadsVY)
				assert.True(t, opts.LoadStoreIncrementsIndex)
			},
		},
		{
			name: "disassemble",
			args: []string{"-disasm", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disassemble)
			},
		},
		{
			name: "write keymap without rom",
			args: []string{"-write-keymap", "-keymap", "my.cfg"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.WriteKeymap)
				assert.Equal(t, "my.cfg", opts.Keymap)
				assert.Equal(t, "", opts.Input)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			opts, err := ParseFlags()
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
		contains  string
	}{
		{name: "no rom", args: nil, wantUsage: true},
		{name: "flag after rom", args: []string{"game.ch8", "-debug"}, wantUsage: true, contains: "-debug"},
		{name: "two roms", args: []string{"a.ch8", "b.ch8"}, wantUsage: true, contains: "one ROM"},
		{name: "speed too high", args: []string{"-speed", "300", "game.ch8"}, contains: "invalid speed"},
		{name: "speed not a step", args: []string{"-speed", "125", "game.ch8"}, contains: "invalid speed"},
		{name: "zero cycles", args: []string{"-cycles", "0", "game.ch8"}, contains: "cycles"},
		{name: "zero scale", args: []string{"-scale", "0", "game.ch8"}, contains: "scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestReadOptionFlags_MatchesOptionTags(t *testing.T) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	tagged := 0
	var walk func(typ reflect.Type)
	walk = func(typ reflect.Type) {
		for i := range typ.NumField() {
			field := typ.Field(i)
			if field.Anonymous {
				walk(field.Type)
				continue
			}

			name, ok := field.Tag.Lookup("flag")
			if !ok {
				continue
			}
			tagged++

			registered := flags.Lookup(name)
			assert.NotNil(t, registered)
			if registered == nil {
				continue
			}
			assert.Equal(t, field.Tag.Get("usage"), registered.Usage)

			def, ok := field.Tag.Lookup("default")
			if !ok {
				def = fmt.Sprint(reflect.Zero(field.Type).Interface())
			}
			assert.Equal(t, def, registered.DefValue)
		}
	}
	walk(reflect.TypeFor[options.Program]())

	count := 0
	flags.VisitAll(func(*flag.Flag) { count++ })
	assert.Equal(t, tagged, count)
}
