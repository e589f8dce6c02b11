package chainfall

import (
	"math"
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
)

// RunState is the per-run scoring and resource state. It is owned by the
// Game and handed to the world and combat code by pointer.
//
// Score never decreases, Ammo stays within [0, MaxAmmo] and
// ComboMultiplier always equals 1 + ComboCount*comboStep.
type RunState struct {
	Score           int
	Ammo            int
	MaxAmmo         int
	ComboCount      int
	ComboMultiplier float64
	HighestCombo    int
	Mode            string

	// MaxDepth is the deepest player position reached, in world units below
	// the start, corrected by WorldOffset.
	MaxDepth    float64
	WorldOffset float64

	MultiKillCount int
	LastKillAt     time.Duration

	NextScoreMilestone int
	NextDepthMilestone int

	comboStep float64
}

func newRunState(mode string, maxAmmo int, comboStep float64, scoreMilestone, depthMilestone int) *RunState {
	return &RunState{
		Ammo:               maxAmmo,
		MaxAmmo:            maxAmmo,
		ComboMultiplier:    1,
		Mode:               core.NormalizeMode(mode),
		NextScoreMilestone: scoreMilestone,
		NextDepthMilestone: depthMilestone,
		comboStep:          comboStep,
	}
}

// Challenger reports whether landing with a live combo ends the run.
func (r *RunState) Challenger() bool {
	return r.Mode == core.ModeChallenger
}

// AddScore adds a non-negative amount.
func (r *RunState) AddScore(n int) {
	if n > 0 {
		r.Score += n
	}
}

// RefillAmmo sets ammo to the maximum.
func (r *RunState) RefillAmmo() {
	r.Ammo = r.MaxAmmo
}

// SpendAmmo removes n rounds, never going below zero.
func (r *RunState) SpendAmmo(n int) {
	r.Ammo = max(r.Ammo-n, 0)
}

// IncrementCombo bumps the combo and recomputes the multiplier.
func (r *RunState) IncrementCombo() {
	r.ComboCount++
	r.ComboMultiplier = 1 + float64(r.ComboCount)*r.comboStep
}

// ResetCombo clears the combo. It reports whether a combo was live.
func (r *RunState) ResetCombo() bool {
	live := r.ComboCount > 0
	r.ComboCount = 0
	r.ComboMultiplier = 1
	return live
}

// Award returns floor(base * multiplier).
func (r *RunState) Award(base int) int {
	return int(math.Floor(float64(base) * r.ComboMultiplier))
}

// registerKill updates multi-kill tracking and returns the kill count
// inside the current window.
func (r *RunState) registerKill(now, window time.Duration) int {
	if r.MultiKillCount > 0 && now-r.LastKillAt <= window {
		r.MultiKillCount++
	} else {
		r.MultiKillCount = 1
	}
	r.LastKillAt = now
	return r.MultiKillCount
}
