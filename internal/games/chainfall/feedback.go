package chainfall

import (
	"fmt"
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
)

// bannerLife is how long a milestone banner stays on screen.
const bannerLife = 1350 * time.Millisecond

// maxBanners bounds the stack of simultaneous banners; the oldest go first.
const maxBanners = 4

type eventKind uint8

const (
	evHazardToggle eventKind = iota
	evBannerExpire
)

// event is a deferred action on the game scheduler.
type event struct {
	kind eventKind
	id   int
}

// Banner is a short feedback line (milestones, multi-kills, combo tiers).
type Banner struct {
	ID    int
	Text  string
	Color core.Color
}

// feedback collects the cues raised during one tick and the banners that
// are currently visible.
type feedback struct {
	sched   *core.Scheduler[event]
	cues    []core.Cue
	banners []Banner
	nextID  int
}

func newFeedback(sched *core.Scheduler[event]) *feedback {
	return &feedback{sched: sched}
}

func (f *feedback) tone(freq float64, ms int) {
	f.cues = append(f.cues, core.Tone(freq, time.Duration(ms)*time.Millisecond))
}

func (f *feedback) cue(c core.Cue) {
	f.cues = append(f.cues, c)
}

// banner shows text and schedules its removal.
func (f *feedback) banner(text string, c core.Color) {
	f.nextID++
	f.banners = append(f.banners, Banner{ID: f.nextID, Text: text, Color: c})
	if len(f.banners) > maxBanners {
		f.banners = f.banners[len(f.banners)-maxBanners:]
	}
	f.cues = append(f.cues, core.Banner(text, c, bannerLife))
	f.sched.After(bannerLife, event{kind: evBannerExpire, id: f.nextID})
}

func (f *feedback) expire(id int) {
	for i, b := range f.banners {
		if b.ID == id {
			f.banners = append(f.banners[:i], f.banners[i+1:]...)
			return
		}
	}
}

// flush returns the cues raised since the last flush.
func (f *feedback) flush() []core.Cue {
	out := f.cues
	f.cues = nil
	return out
}

// clearBanners hides every banner. Pending cues are kept so stop cues raised
// in the same tick still reach the host.
func (f *feedback) clearBanners() {
	f.banners = nil
}

var multiKillBanners = [...]struct {
	text  string
	color core.Color
}{
	2: {"DOUBLE KILL!", core.ColorGreen},
	3: {"TRIPLE KILL!", core.ColorOrange},
	4: {"QUAD KILL!", core.ColorBrightRed},
	5: {"PENTA KILL!", core.ColorMagenta},
	6: {"MEGA KILL!", core.ColorRed},
}

// multiKillBanner returns the banner for n kills inside one window.
// Fewer than two kills have no banner.
func multiKillBanner(n int) (string, core.Color, bool) {
	switch {
	case n < 2:
		return "", core.ColorDefault, false
	case n < len(multiKillBanners):
		b := multiKillBanners[n]
		return b.text, b.color, true
	default:
		return "UNSTOPPABLE!", core.ColorBrightWhite, true
	}
}

// comboLabel returns the tier label for an airborne combo.
func comboLabel(combo int) (string, core.Color) {
	switch {
	case combo >= 10:
		return "GODLIKE!", core.ColorBrightMagenta
	case combo >= 7:
		return "INSANE!", core.ColorMagenta
	case combo >= 5:
		return "AMAZING!", core.ColorOrange
	case combo >= 3:
		return "GREAT!", core.ColorYellow
	case combo == 1:
		return "COMBO START!", core.ColorCyan
	}
	return "", core.ColorCyan
}

// comboMilestone returns the banner for a new highest combo, if any.
func comboMilestone(combo int) (string, core.Color, bool) {
	switch combo {
	case 5:
		return "5 COMBO!", core.ColorOrange, true
	case 10:
		return "10 COMBO!", core.ColorMagenta, true
	case 15:
		return "15 COMBO! UNSTOPPABLE!", core.ColorYellow, true
	}
	return "", core.ColorDefault, false
}

func scoreMilestoneText(points int) string {
	return fmt.Sprintf("%d POINTS!", points)
}

func depthMilestoneText(depth int) string {
	return fmt.Sprintf("%dm DEPTH!", depth)
}
