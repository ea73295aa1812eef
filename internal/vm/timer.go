package vm

// Speaker is the audio collaborator. StartSound is called when the sound
// timer is set to a non-zero value, StopSound when it reaches zero.
type Speaker interface {
	StartSound()
	StopSound()
}

type nopSpeaker struct{}

func (nopSpeaker) StartSound() {}
func (nopSpeaker) StopSound()  {}

// TickTimers decrements both non-zero timers by one. It has to be called
// at 60 Hz, independent of the number of executed instructions.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
		if m.soundTimer == 0 {
			m.speaker.StopSound()
		}
	}
}
