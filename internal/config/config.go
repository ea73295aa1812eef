// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig returns the machine configuration for the program options.
// Instruction tracing is enabled together with debug logging.
func MachineConfig(opts options.Program, speaker vm.Speaker) vm.Config {
	return vm.Config{
		Quirks: vm.Quirks{
			ShiftReadsVY:             opts.ShiftReadsVY,
			LoadStoreIncrementsIndex: opts.LoadStoreIncrementsIndex,
		},
		Speaker: speaker,
		Trace:   opts.Debug,
	}
}

// DriverConfig returns the driver configuration for the program options.
// Windowed runs are paced by the frontend, headless runs execute frames
// as fast as possible.
func DriverConfig(opts options.Program) driver.Config {
	return driver.Config{
		CyclesPerFrame: opts.Cycles,
		Speed:          driver.Speed(opts.Speed),
	}
}
