// Package runner orchestrates loading a ROM and running it on a driven
// machine, either headless or in a frontend window.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

var errNoFrontend = errors.New("no frontend available, use -headless")

// Frontend runs a driver interactively until the user quits. Keymap
// changes made in the frontend are saved to keymapFile.
type Frontend interface {
	Run(ctx context.Context, d *driver.Driver, km keymap.Keymap, keymapFile string) error
}

// Speaker is a machine speaker that holds an audio device.
type Speaker interface {
	vm.Speaker
	Close() error
}

// Dependencies contains the collaborators of the runner. All fields are
// optional.
type Dependencies struct {
	// Output receives the final screen of headless runs, defaults to stdout.
	Output io.Writer
	// Frontend is used for runs that are not headless.
	Frontend Frontend
	// NewSpeaker opens the audio output, it is not used for muted or
	// headless runs.
	NewSpeaker func() (Speaker, error)
	// Random overrides the random source of the machine.
	Random vm.RandomSource
}

// Runner orchestrates a complete emulator run.
type Runner struct {
	logger *log.Logger
	loader *loader.Loader
	deps   Dependencies
}

// New creates a new runner.
func New(logger *log.Logger, deps Dependencies) *Runner {
	if deps.Output == nil {
		deps.Output = os.Stdout
	}
	return &Runner{
		logger: logger,
		loader: loader.New(),
		deps:   deps,
	}
}

// Execute runs the ROM given in the options until it is finished, the
// context is cancelled or a fatal machine error occurs.
func (r *Runner) Execute(ctx context.Context, opts options.Program) error {
	km, err := r.loadKeymap(opts.Keymap)
	if err != nil {
		return fmt.Errorf("loading keymap: %w", err)
	}

	if opts.WriteKeymap {
		if err := km.Save(opts.Keymap); err != nil {
			return fmt.Errorf("saving keymap: %w", err)
		}
		r.logger.Info("Keymap written", log.String("file", opts.Keymap))
		return nil
	}

	rom, err := r.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disassemble {
		return writeListing(r.deps.Output, rom)
	}

	speaker := r.openSpeaker(opts)
	if speaker != nil {
		defer func() {
			if err := speaker.Close(); err != nil {
				r.logger.Error("Closing audio output failed", log.Err(err))
			}
		}()
	}

	d, err := r.createDriver(opts, rom, speaker)
	if err != nil {
		return err
	}

	r.printInfo(opts, len(rom), d)

	if opts.Headless {
		return r.runHeadless(ctx, d, opts.Frames)
	}

	if r.deps.Frontend == nil {
		return errNoFrontend
	}
	err = r.deps.Frontend.Run(ctx, d, km, opts.Keymap)
	r.printSummary(d)
	if err != nil {
		return fmt.Errorf("running frontend: %w", err)
	}
	return nil
}

// createDriver creates the machine with the ROM loaded and its driver.
func (r *Runner) createDriver(opts options.Program, rom []byte, speaker vm.Speaker) (*driver.Driver, error) {
	cfg := config.MachineConfig(opts, speaker)
	cfg.Random = r.deps.Random

	machine := vm.New(r.logger, cfg)
	if err := machine.Load(rom); err != nil {
		return nil, fmt.Errorf("loading ROM into memory: %w", err)
	}

	d, err := driver.New(r.logger, machine, config.DriverConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}
	return d, nil
}

// runHeadless runs the given number of frames and prints the final screen,
// also if the run was interrupted.
func (r *Runner) runHeadless(ctx context.Context, d *driver.Driver, frames uint64) error {
	runErr := d.Run(ctx, frames, nil)

	if _, err := io.WriteString(r.deps.Output, d.Machine().Display().String()); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	r.printSummary(d)

	if runErr != nil {
		return fmt.Errorf("running headless: %w", runErr)
	}
	return nil
}

// loadKeymap loads the keymap file, a missing file selects the default
// layout.
func (r *Runner) loadKeymap(path string) (keymap.Keymap, error) {
	if path == "" {
		return keymap.Default(), nil
	}

	km, exists, stats, err := keymap.Load(path)
	if err != nil {
		return km, err
	}
	if !exists {
		r.logger.Debug("Keymap file not found, using default layout", log.String("file", path))
		return km, nil
	}
	if stats.Skipped > 0 {
		r.logger.Warn("Ignored malformed keymap lines",
			log.String("file", path), log.Int("lines", stats.Skipped))
	}
	r.logger.Info("Keymap loaded",
		log.String("file", path), log.Int("mappings", stats.Loaded))
	return km, nil
}

// openSpeaker opens the audio output. Failing audio is not fatal, the run
// continues without sound.
func (r *Runner) openSpeaker(opts options.Program) Speaker {
	if opts.Mute || opts.Headless || r.deps.NewSpeaker == nil {
		return nil
	}

	speaker, err := r.deps.NewSpeaker()
	if err != nil {
		r.logger.Warn("Audio output unavailable, continuing without sound", log.Err(err))
		return nil
	}
	return speaker
}

// printInfo prints information about the ROM being run.
func (r *Runner) printInfo(opts options.Program, size int, d *driver.Driver) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Stringer("speed", d.Speed()),
	)
	if opts.ShiftReadsVY || opts.LoadStoreIncrementsIndex {
		r.logger.Info("Quirks enabled",
			log.String("quirks", quirkNames(opts.Quirks)))
	}
}

// printSummary prints the state of the machine at the end of a run.
func (r *Runner) printSummary(d *driver.Driver) {
	machine := d.Machine()
	r.logger.Info("Emulation stopped",
		log.Int("frames", int(d.Frames())),
		log.Hex("pc", machine.PC()),
	)
	if unknown := machine.UnknownOpcodes(); unknown > 0 {
		r.logger.Warn("Unknown opcodes were skipped", log.Int("count", int(unknown)))
	}
}

func quirkNames(quirks options.Quirks) string {
	var names []string
	if quirks.ShiftReadsVY {
		names = append(names, "shift-vy")
	}
	if quirks.LoadStoreIncrementsIndex {
		names = append(names, "index-increment")
	}
	return strings.Join(names, ",")
}
