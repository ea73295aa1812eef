package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakePresenter struct {
	presented int
	lit       int
}

func (p *fakePresenter) Present(display *vm.Display) {
	p.presented++
	p.lit = 0
	for _, row := range display.Pixels() {
		for _, on := range row {
			if on {
				p.lit++
			}
		}
	}
}

// newTestDriver loads the big endian encoded opcodes into a fresh machine.
func newTestDriver(t *testing.T, cfg Config, program ...uint16) *Driver {
	t.Helper()

	logger := log.NewTestLogger(t)
	machine := vm.New(logger, vm.Config{})

	rom := make([]byte, 0, 2*len(program))
	for _, op := range program {
		rom = append(rom, byte(op>>8), byte(op))
	}
	assert.NoError(t, machine.Load(rom))

	d, err := New(logger, machine, cfg)
	assert.NoError(t, err)
	return d
}

// counting returns a program that increments V0 n times.
func counting(n int) []uint16 {
	program := make([]uint16, n)
	for i := range program {
		program[i] = 0x7001
	}
	return program
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	machine := vm.New(logger, vm.Config{})

	d, err := New(logger, machine, Config{})
	assert.NoError(t, err)
	assert.Equal(t, DefaultSpeed, d.Speed())
	assert.Equal(t, BaseCyclesPerFrame, d.cyclesPerFrame)
	assert.True(t, d.Machine() == machine)

	_, err = New(logger, machine, Config{Speed: 250})
	assert.ErrorContains(t, err, "invalid speed")

	_, err = New(logger, machine, Config{CyclesPerFrame: -1})
	assert.Error(t, err)
}

func TestRunFrame(t *testing.T) {
	tests := []struct {
		name   string
		speed  Speed
		cycles int
		want   byte
	}{
		{name: "default speed", want: 10},
		{name: "half speed", speed: MinSpeed, want: 5},
		{name: "double speed", speed: MaxSpeed, want: 20},
		{name: "custom cycles", speed: 150, cycles: 4, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDriver(t, Config{Speed: tt.speed, CyclesPerFrame: tt.cycles}, counting(64)...)

			assert.NoError(t, d.RunFrame())
			assert.Equal(t, tt.want, d.Machine().Register(0))
			assert.Equal(t, uint64(1), d.Frames())
		})
	}
}

func TestRunFrame_TicksTimersOnce(t *testing.T) {
	d := newTestDriver(t, Config{Speed: MaxSpeed},
		append([]uint16{0x6A3C, 0xFA15, 0xFA18}, counting(60)...)...)

	assert.NoError(t, d.RunFrame())
	assert.Equal(t, byte(59), d.Machine().DelayTimer())
	assert.Equal(t, byte(59), d.Machine().SoundTimer())

	assert.NoError(t, d.RunFrame())
	assert.Equal(t, byte(58), d.Machine().DelayTimer())
}

func TestRunFrame_WaitForKey(t *testing.T) {
	d := newTestDriver(t, Config{}, 0xF30A, 0x7001)
	m := d.Machine()

	assert.NoError(t, d.RunFrame())
	assert.True(t, m.WaitingForKey())
	assert.Equal(t, uint16(vm.ProgramStart), m.PC())
	assert.Equal(t, byte(0), m.Register(0))

	m.SetKey(0x7, true)
	assert.NoError(t, d.RunFrame())
	assert.False(t, m.WaitingForKey())
	assert.Equal(t, byte(7), m.Register(3))
	assert.Equal(t, byte(1), m.Register(0))
}

func TestRunFrame_SkipsUnknownOpcodes(t *testing.T) {
	d := newTestDriver(t, Config{}, 0x0123, 0x8008, 0x7001, 0x1204)

	assert.NoError(t, d.RunFrame())
	assert.Equal(t, uint64(2), d.Machine().UnknownOpcodes())
	assert.True(t, d.Machine().Register(0) > 0)
}

func TestRunFrame_FatalError(t *testing.T) {
	d := newTestDriver(t, Config{}, 0x00EE)

	err := d.RunFrame()
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.Equal(t, uint16(vm.ProgramStart), d.Machine().PC())
	assert.Equal(t, uint64(0), d.Frames())
}

func TestPresent(t *testing.T) {
	// draw the glyph of digit 0 once, then loop forever
	d := newTestDriver(t, Config{}, 0x6000, 0xF029, 0xD005, 0x1206)
	presenter := &fakePresenter{}

	assert.False(t, d.Present(presenter))

	assert.NoError(t, d.RunFrame())
	assert.True(t, d.Present(presenter))
	assert.Equal(t, 1, presenter.presented)
	assert.Equal(t, 14, presenter.lit)
	assert.False(t, d.Machine().Display().Dirty())

	assert.NoError(t, d.RunFrame())
	assert.False(t, d.Present(presenter))
	assert.Equal(t, 1, presenter.presented)
}

func TestRun(t *testing.T) {
	d := newTestDriver(t, Config{}, 0x1200)
	presenter := &fakePresenter{}

	assert.NoError(t, d.Run(context.Background(), 5, presenter))
	assert.Equal(t, uint64(5), d.Frames())
	assert.Equal(t, 0, presenter.presented)
}

func TestRun_Cancelled(t *testing.T) {
	d := newTestDriver(t, Config{FrameInterval: time.Millisecond}, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, 0, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), d.Frames())
}

func TestRun_Paced(t *testing.T) {
	d := newTestDriver(t, Config{FrameInterval: time.Millisecond}, 0x1200)

	start := time.Now()
	assert.NoError(t, d.Run(context.Background(), 3, nil))
	assert.True(t, time.Since(start) >= 3*time.Millisecond)
}

func TestRun_StopsOnFatalError(t *testing.T) {
	d := newTestDriver(t, Config{}, 0x2200)

	err := d.Run(context.Background(), 10, nil)
	assert.True(t, errors.Is(err, vm.ErrStackOverflow))
}

func TestSetSpeed(t *testing.T) {
	d := newTestDriver(t, Config{}, 0x1200)

	d.SetSpeed(d.Speed().Increase())
	assert.Equal(t, Speed(110), d.Speed())

	d.SetSpeed(500)
	assert.Equal(t, MaxSpeed, d.Speed())

	d.SetSpeed(0)
	assert.Equal(t, MinSpeed, d.Speed())
}
