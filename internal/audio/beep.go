package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// loopAmplitude keeps the sustained tone under the one-shot tones.
const loopAmplitude = 0.25

// BeepPlayer plays tones through the speaker with a single mixer.
type BeepPlayer struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	loop        *sweep
	loopCtrl    *beep.Ctrl
	initialized bool
}

// NewBeepPlayer creates a player. volume is linear in [0, 1].
func NewBeepPlayer(volume float64) *BeepPlayer {
	return &BeepPlayer{
		sr:     sampleRate,
		volume: math.Max(0, math.Min(1, volume)),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (p *BeepPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// newVolume scales s by a linear volume; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// toneStreamer returns a finite sine tone of duration d.
func (p *BeepPlayer) toneStreamer(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(p.sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(p.sr.N(d), newVolume(sine, p.volume)), nil
}

// Tone plays a one-shot tone. Invalid frequencies are skipped.
func (p *BeepPlayer) Tone(freq float64, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || d <= 0 {
		return
	}
	s, err := p.toneStreamer(freq, d)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// LoopStart starts the sustained tone.
func (p *BeepPlayer) LoopStart(freq float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.stopLoop()
	p.loop = newSweep(p.sr, freq)
	p.loopCtrl = &beep.Ctrl{Streamer: newVolume(p.loop, p.volume)}
	speaker.Lock()
	p.mixer.Add(p.loopCtrl)
	speaker.Unlock()
}

// LoopPitch retunes the sustained tone.
func (p *BeepPlayer) LoopPitch(freq float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loop != nil {
		p.loop.setFreq(freq)
	}
}

// LoopStop stops the sustained tone.
func (p *BeepPlayer) LoopStop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLoop()
}

// stopLoop detaches the loop; the mixer drops a Ctrl with no streamer.
func (p *BeepPlayer) stopLoop() {
	if p.loopCtrl == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		p.loopCtrl.Streamer = nil
		speaker.Unlock()
	}
	p.loopCtrl = nil
	p.loop = nil
}

// StopAll clears the mixer.
func (p *BeepPlayer) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLoop()
	if p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Close silences the mixer and closes the speaker.
func (p *BeepPlayer) Close() error {
	p.StopAll()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	return nil
}

// sweep is an endless sine oscillator whose frequency can change while it
// plays without a phase jump.
type sweep struct {
	sr    beep.SampleRate
	freq  atomic.Uint64 // math.Float64bits
	phase float64
}

func newSweep(sr beep.SampleRate, freq float64) *sweep {
	s := &sweep{sr: sr}
	s.setFreq(freq)
	return s
}

func (s *sweep) setFreq(freq float64) {
	s.freq.Store(math.Float64bits(freq))
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	step := 2 * math.Pi * math.Float64frombits(s.freq.Load()) / float64(s.sr)
	for i := range samples {
		v := loopAmplitude * math.Sin(s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
