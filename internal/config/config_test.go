package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestMachineConfig(t *testing.T) {
	opts := options.Program{
		Flags:  options.Flags{Debug: true},
		Quirks: options.Quirks{ShiftReadsVY: true},
	}

	cfg := MachineConfig(opts, nil)
	assert.True(t, cfg.Quirks.ShiftReadsVY)
	assert.False(t, cfg.Quirks.LoadStoreIncrementsIndex)
	assert.True(t, cfg.Trace)
	assert.Nil(t, cfg.Speaker)
}

func TestDriverConfig(t *testing.T) {
	opts := options.Program{
		Flags: options.Flags{Speed: 150, Cycles: 12},
	}

	cfg := DriverConfig(opts)
	assert.Equal(t, driver.Speed(150), cfg.Speed)
	assert.Equal(t, 12, cfg.CyclesPerFrame)
}
