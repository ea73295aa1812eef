// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && !opts.WriteKeymap) {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// validateOptions checks the value ranges of the options
func validateOptions(opts options.Program) error {
	if err := driver.Speed(opts.Speed).Validate(); err != nil {
		return err
	}
	if opts.Cycles <= 0 {
		return fmt.Errorf("invalid cycles per frame %d, must be positive", opts.Cycles)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid window scale %d, must be positive", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Keymap, "keymap", keymap.DefaultFile, "keymap file, the default layout is used if it does not exist")
	flags.IntVar(&opts.Speed, "speed", int(driver.DefaultSpeed), "emulation speed in percent, 50 to 200 in steps of 10")
	flags.IntVar(&opts.Cycles, "cycles", driver.BaseCyclesPerFrame, "instructions per frame at 100% speed")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and print the final screen")
	flags.Uint64Var(&opts.Frames, "frames", options.DefaultFrames, "number of frames to run in headless mode, 0 runs until interrupted")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the beep")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "print the disassembled ROM and exit")
	flags.BoolVar(&opts.WriteKeymap, "write-keymap", false, "write the active keymap to the keymap file and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.ShiftReadsVY, "shift-vy", false, "8xy6/8xyE shift Vy into Vx instead of shifting Vx")
	flags.BoolVar(&opts.LoadStoreIncrementsIndex, "index-increment", false, "Fx55/Fx65 advance I by x+1")
}
