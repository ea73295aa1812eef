//go:build !headless

package frontend

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the tone on the default audio device.
type Beeper struct {
	*Tone

	context *oto.Context
	player  *oto.Player
}

// NewBeeper opens the audio device and starts streaming the initially
// silent tone.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone(SampleRate, ToneFrequency)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Beeper{
		Tone:    tone,
		context: ctx,
		player:  player,
	}, nil
}

// Close stops the audio output.
func (b *Beeper) Close() error {
	b.StopSound()
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
