package chainfall

import (
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// Hazards are the two side walls that follow the camera and switch on and
// off at random intervals. Touching a wall while it is on ends the run.
type Hazards struct {
	Enabled     bool
	On          bool
	Left, Right core.Box
}

func (h *Hazards) touches(b core.Box) bool {
	return h.Enabled && (h.Left.Overlaps(b) || h.Right.Overlaps(b))
}

func (h *Hazards) shiftY(dy float64) {
	h.Left.Y += dy
	h.Right.Y += dy
}

func (w *World) setupHazards() {
	hc := w.cfg.Hazards
	w.Hazards = Hazards{
		Enabled: hc.Enabled,
		On:      hc.Enabled,
		Left:    core.Box{X: hc.Inset, W: hc.Width, H: hc.Height},
		Right:   core.Box{X: w.cfg.World.Width - hc.Inset, W: hc.Width, H: hc.Height},
	}
	w.followHazards()
	if hc.Enabled {
		w.sched.After(config.Ms(hc.InitialIntervalMs), event{kind: evHazardToggle})
	}
}

func (w *World) followHazards() {
	y := w.CameraY + w.cfg.Hazards.CenterOffset
	w.Hazards.Left.Y = y
	w.Hazards.Right.Y = y
}

// toggleHazards flips the walls and schedules the next flip.
func (w *World) toggleHazards() {
	if !w.Hazards.Enabled {
		return
	}
	hc := w.cfg.Hazards
	w.Hazards.On = !w.Hazards.On
	next := between(w.rng, hc.ToggleMinMs, hc.ToggleMaxMs)
	w.sched.After(time.Duration(next)*time.Millisecond, event{kind: evHazardToggle})
}
