package frontend

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Audio format of the beep.
const (
	SampleRate    = 44100
	ToneFrequency = 440

	toneVolume     = 0.2
	bytesPerSample = 4 // mono float32
)

// Tone is a square wave generator that implements vm.Speaker. It is read
// by the audio thread and produces silence while no sound is requested.
type Tone struct {
	period   int
	position int // only accessed by the reader
	sounding atomic.Bool
}

// NewTone returns a generator for the given frequency.
func NewTone(sampleRate, frequency int) *Tone {
	return &Tone{
		period: max(sampleRate/frequency, 2),
	}
}

// StartSound starts the tone.
func (t *Tone) StartSound() {
	t.sounding.Store(true)
}

// StopSound silences the tone.
func (t *Tone) StopSound() {
	t.sounding.Store(false)
}

// Sounding returns whether the tone is currently on.
func (t *Tone) Sounding() bool {
	return t.sounding.Load()
}

// Read fills p with little endian float32 samples. It never fails and
// only writes whole samples.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	on := t.sounding.Load()

	for i := range samples {
		var sample float32
		if on {
			sample = toneVolume
			if t.position >= t.period/2 {
				sample = -toneVolume
			}
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(sample))
		t.position = (t.position + 1) % t.period
	}
	return samples * bytesPerSample, nil
}
