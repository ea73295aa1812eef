// Package driver runs a CHIP-8 machine frame by frame. Every frame executes
// a speed dependent number of instructions followed by exactly one timer
// tick, so the timers decrement at FrameRate regardless of the speed.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const (
	// BaseCyclesPerFrame is the number of instructions executed per frame
	// at 100% speed.
	BaseCyclesPerFrame = 10

	// FrameRate is the number of frames per second, and the rate the
	// timers are decremented at.
	FrameRate = 60

	// FrameInterval is the duration of one frame.
	FrameInterval = time.Second / FrameRate
)

// Presenter shows the framebuffer of the machine.
type Presenter interface {
	Present(display *vm.Display)
}

// Config contains the driver settings. Zero values select the defaults.
type Config struct {
	CyclesPerFrame int
	Speed          Speed
	// FrameInterval paces Run, zero runs frames as fast as possible.
	FrameInterval time.Duration
}

// Driver owns a machine and serializes all calls to it.
type Driver struct {
	logger  *log.Logger
	machine *vm.Machine

	cyclesPerFrame int
	speed          Speed
	frameInterval  time.Duration
	frames         uint64
}

// New returns a driver for the machine.
func New(logger *log.Logger, machine *vm.Machine, cfg Config) (*Driver, error) {
	if cfg.CyclesPerFrame == 0 {
		cfg.CyclesPerFrame = BaseCyclesPerFrame
	}
	if cfg.CyclesPerFrame < 0 {
		return nil, fmt.Errorf("invalid cycles per frame %d", cfg.CyclesPerFrame)
	}
	if cfg.Speed == 0 {
		cfg.Speed = DefaultSpeed
	}
	if err := cfg.Speed.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		logger:         logger,
		machine:        machine,
		cyclesPerFrame: cfg.CyclesPerFrame,
		speed:          cfg.Speed,
		frameInterval:  cfg.FrameInterval,
	}, nil
}

// Machine returns the driven machine.
func (d *Driver) Machine() *vm.Machine {
	return d.machine
}

// Speed returns the current speed.
func (d *Driver) Speed() Speed {
	return d.speed
}

// SetSpeed changes the speed, values outside of the range are clamped.
func (d *Driver) SetSpeed(speed Speed) {
	speed = min(max(speed, MinSpeed), MaxSpeed)
	if speed == d.speed {
		return
	}
	d.speed = speed
	d.logger.Info("Speed changed", log.Stringer("speed", speed))
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// RunFrame executes the instructions of one frame and ticks the timers once.
// Unknown opcodes are skipped, any other execution error stops the frame
// and is returned. The frame ends early while the machine waits for a key.
func (d *Driver) RunFrame() error {
	cycles := d.speed.Cycles(d.cyclesPerFrame)
	for range cycles {
		err := d.machine.Step()
		if err != nil && !errors.Is(err, vm.ErrUnknownOpcode) {
			return err
		}
		if d.machine.WaitingForKey() {
			break
		}
	}

	d.machine.TickTimers()
	d.frames++
	return nil
}

// Present hands the display to the presenter if it changed since the last
// presentation and reports whether it did.
func (d *Driver) Present(presenter Presenter) bool {
	display := d.machine.Display()
	if !display.Dirty() {
		return false
	}
	presenter.Present(display)
	display.ClearDirty()
	return true
}

// Run executes frames until the given number of frames has been run, the
// context is cancelled or an execution error occurs. A frame count of 0
// runs until the context is cancelled. The presenter is optional.
func (d *Driver) Run(ctx context.Context, frames uint64, presenter Presenter) error {
	var tick <-chan time.Time
	if d.frameInterval > 0 {
		ticker := time.NewTicker(d.frameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for frame := uint64(0); frames == 0 || frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", d.frames, err)
		}

		if err := d.RunFrame(); err != nil {
			return fmt.Errorf("running frame %d: %w", d.frames, err)
		}
		if presenter != nil {
			d.Present(presenter)
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running frame %d: %w", d.frames, ctx.Err())
			case <-tick:
			}
		}
	}
	return nil
}
