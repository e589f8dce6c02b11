package config

import "math"

// DifficultyManager maps game progress (score, ticks or depth) to a
// difficulty level in [0, 1].
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Kind returns the progress measure the manager expects.
func (d *DifficultyManager) Kind() string {
	return d.cfg.Progression.Type
}

// Level returns the difficulty for the given progress, interpolated from
// the initial level up to 1.0.
//
// Stepped progression: floor(progress/Step) * StepIncrement, capped at 1.
// Linear progression: progress / MaxAt, capped at 1.
func (d *DifficultyManager) Level(progress float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	p := d.cfg.Progression
	var raw float64
	if p.Step > 0 {
		raw = math.Floor(math.Max(progress, 0)/p.Step) * p.StepIncrement
	} else {
		maxAt := float64(p.MaxAt)
		if maxAt <= 0 {
			maxAt = 1
		}
		raw = progress / maxAt
	}
	raw = clampF(raw, 0, 1)

	return d.initialLevel + raw*(1.0-d.initialLevel)
}

// Lerp returns base moved toward target by the level for progress.
func (d *DifficultyManager) Lerp(base, target, progress float64) float64 {
	return base + (target-base)*d.Level(progress)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
