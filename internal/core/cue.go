package core

import "time"

// CueKind selects what a Cue asks the host to do.
type CueKind uint8

const (
	CueTone      CueKind = iota // one-shot tone at Freq for Duration
	CueLoopStart                // start the sustained tone at Freq
	CueLoopPitch                // retune the sustained tone to Freq
	CueLoopStop                 // stop the sustained tone
	CueSilence                  // stop every sound, including music
	CueBanner                   // show Text in Color for Duration
)

// Cue is a presentation request emitted by game logic. Games never touch
// audio devices or widgets; hosts translate cues.
type Cue struct {
	Kind     CueKind
	Freq     float64
	Duration time.Duration
	Text     string
	Color    Color
}

// Tone builds a one-shot tone cue.
func Tone(freq float64, d time.Duration) Cue {
	return Cue{Kind: CueTone, Freq: freq, Duration: d}
}

// Banner builds a feedback text cue.
func Banner(text string, c Color, d time.Duration) Cue {
	return Cue{Kind: CueBanner, Text: text, Color: c, Duration: d}
}
