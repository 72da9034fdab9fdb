package integration

import (
	"github.com/gen2brain/beeep"

	"github.com/aural/aura/pkg/models"
)

// BeepEmitter plays alert tones through the system beeper. Emit blocks for
// the tone's duration, which is what gives consecutive tones their audible
// sequencing.
type BeepEmitter struct{}

// NewBeepEmitter creates a BeepEmitter.
func NewBeepEmitter() BeepEmitter {
	return BeepEmitter{}
}

// Emit plays a single tone.
func (BeepEmitter) Emit(tone models.ToneSpec) error {
	return beeep.Beep(float64(tone.FrequencyHz), tone.DurationMs)
}
