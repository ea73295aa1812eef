package driver

import (
	"errors"
	"fmt"
)

// Speed is the emulation speed in percent of the base instruction rate.
type Speed int

// Speed limits and steps.
const (
	MinSpeed     Speed = 50
	MaxSpeed     Speed = 200
	DefaultSpeed Speed = 100
	SpeedStep    Speed = 10
)

var errInvalidSpeed = errors.New("invalid speed")

// Validate returns an error if the speed is outside of the supported range
// or not a multiple of SpeedStep.
func (s Speed) Validate() error {
	if s < MinSpeed || s > MaxSpeed || s%SpeedStep != 0 {
		return fmt.Errorf("%w: %d%%, allowed is %d%% to %d%% in steps of %d%%",
			errInvalidSpeed, s, MinSpeed, MaxSpeed, SpeedStep)
	}
	return nil
}

// Increase returns the next higher speed, clamped at MaxSpeed.
func (s Speed) Increase() Speed {
	return min(s+SpeedStep, MaxSpeed)
}

// Decrease returns the next lower speed, clamped at MinSpeed.
func (s Speed) Decrease() Speed {
	return max(s-SpeedStep, MinSpeed)
}

// Cycles returns the number of instructions to execute per frame for the
// given number of instructions per frame at 100%. At least one instruction
// is executed per frame.
func (s Speed) Cycles(base int) int {
	return max(base*int(s)/100, 1)
}

func (s Speed) String() string {
	return fmt.Sprintf("%d%%", int(s))
}
