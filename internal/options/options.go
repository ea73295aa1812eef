// Package options contains the program options.
package options

// Default values of options that are not owned by another package.
const (
	DefaultFrames = 600
	DefaultScale  = 10
)

// The struct tags document the command line flag of every option, the cli
// package registers the flags with the same names, usage texts and defaults.

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"name of the input ROM file"`
	Keymap string `flag:"keymap" usage:"keymap file, the default layout is used if it does not exist" default:"keymap.cfg"`
}

// Flags contains behavior options.
type Flags struct {
	Speed       int    `flag:"speed" usage:"emulation speed in percent, 50 to 200 in steps of 10" default:"100"`
	Cycles      int    `flag:"cycles" usage:"instructions per frame at 100% speed" default:"10"`
	Scale       int    `flag:"scale" usage:"window scale factor" default:"10"`
	Headless    bool   `flag:"headless" usage:"run without window and print the final screen"`
	Frames      uint64 `flag:"frames" usage:"number of frames to run in headless mode, 0 runs until interrupted" default:"600"`
	Mute        bool   `flag:"mute" usage:"disable the beep"`
	WriteKeymap bool   `flag:"write-keymap" usage:"write the active keymap to the keymap file and exit"`
	Disassemble bool   `flag:"disasm" usage:"print the disassembled ROM and exit"`
	Debug       bool   `flag:"debug" usage:"enable debugging options for extended logging and instruction tracing"`
	Quiet       bool   `flag:"q" usage:"perform operations quietly"`
}

// Quirks contains the CHIP-8 dialect options.
type Quirks struct {
	ShiftReadsVY             bool `flag:"shift-vy" usage:"8xy6/8xyE shift Vy into Vx instead of shifting Vx"`
	LoadStoreIncrementsIndex bool `flag:"index-increment" usage:"Fx55/Fx65 advance I by x+1"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Quirks
}
