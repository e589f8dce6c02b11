// Package audio turns the cues emitted by games into sound. Games never
// touch audio devices; hosts pass every StepResult's cues to Dispatch.
package audio

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chainfall/internal/core"
)

// Player is a sound backend.
type Player interface {
	// Tone plays a one-shot sine tone.
	Tone(freq float64, d time.Duration)
	// LoopStart starts the sustained tone, replacing any running one.
	LoopStart(freq float64)
	// LoopPitch retunes the sustained tone. No-op when none is running.
	LoopPitch(freq float64)
	// LoopStop stops the sustained tone.
	LoopStop()
	// StopAll silences everything.
	StopAll()
	// Close releases the device.
	Close() error
}

// Dispatch forwards the sound cues to p. Banner cues are ignored.
func Dispatch(p Player, cues []core.Cue) {
	if p == nil {
		return
	}
	for _, c := range cues {
		switch c.Kind {
		case core.CueTone:
			p.Tone(c.Freq, c.Duration)
		case core.CueLoopStart:
			p.LoopStart(c.Freq)
		case core.CueLoopPitch:
			p.LoopPitch(c.Freq)
		case core.CueLoopStop:
			p.LoopStop()
		case core.CueSilence:
			p.StopAll()
		}
	}
}

// New returns a beep-backed player, or a NullPlayer when sound is disabled
// or the device cannot be opened. Failures are logged and never returned.
func New(enabled bool, volume float64, logger *log.Logger) Player {
	if !enabled {
		return NullPlayer{}
	}
	p := NewBeepPlayer(volume)
	if err := p.Init(); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing muted", "err", err)
		}
		return NullPlayer{}
	}
	return p
}

// NullPlayer discards every request.
type NullPlayer struct{}

func (NullPlayer) Tone(float64, time.Duration) {}
func (NullPlayer) LoopStart(float64)           {}
func (NullPlayer) LoopPitch(float64)           {}
func (NullPlayer) LoopStop()                   {}
func (NullPlayer) StopAll()                    {}
func (NullPlayer) Close() error                { return nil }
