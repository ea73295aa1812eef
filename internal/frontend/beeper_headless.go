//go:build headless

package frontend

// Beeper only tracks the tone state in headless builds.
type Beeper struct {
	*Tone
}

// NewBeeper returns a beeper without audio output.
func NewBeeper() (*Beeper, error) {
	return &Beeper{Tone: NewTone(SampleRate, ToneFrequency)}, nil
}

// Close does nothing.
func (b *Beeper) Close() error {
	b.StopSound()
	return nil
}
