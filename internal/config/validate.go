package config

import "fmt"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks ranges the game relies on.
func (c ChainfallConfig) Validate() error {
	w, p, e := c.World, c.Platforms, c.Enemies
	switch {
	case w.Width <= 0 || w.ViewHeight <= 0:
		return invalid("world size must be positive")
	case w.Chunk <= 0:
		return invalid("world.chunk must be positive")
	case w.RebaseDelta <= 0 || w.RebaseDelta > w.RebaseThreshold:
		return invalid("world.rebase_delta must be in (0, rebase_threshold]")
	case p.MinWidth <= 0 || p.MinWidth > p.MaxWidth:
		return invalid("platforms: min_width %d > max_width %d", p.MinWidth, p.MaxWidth)
	case p.MinGap <= 0 || p.MinGap > p.MaxGap:
		return invalid("platforms: min_gap %d > max_gap %d", p.MinGap, p.MaxGap)
	case p.MinLeft > p.MaxRight-p.MaxWidth:
		return invalid("platforms: widest platform does not fit between min_left and max_right")
	case float64(p.MinWidth) <= 2*e.SpawnInset:
		return invalid("platforms: min_width must exceed twice enemies.spawn_inset")
	case e.WalkSpeedMin > e.WalkSpeedMax || e.ShooterSpeedMin > e.ShooterSpeedMax:
		return invalid("enemies: speed range inverted")
	case e.JumpCooldownMinMs > e.JumpCooldownMaxMs || e.ShootCooldownMinMs > e.ShootCooldownMaxMs:
		return invalid("enemies: cooldown range inverted")
	case c.Player.MaxAmmo <= 0:
		return invalid("player.max_ammo must be positive")
	case c.Charge.Cost <= 0 || c.Charge.Pierce <= 0:
		return invalid("charge: cost and pierce must be positive")
	case c.Charge.SlowMo < 1:
		return invalid("charge.slowmo must be >= 1")
	case c.Hazards.ToggleMinMs > c.Hazards.ToggleMaxMs:
		return invalid("hazards: toggle range inverted")
	case c.Leaderboard.Cap <= 0:
		return invalid("leaderboard.cap must be positive")
	}
	return nil
}

// Validate checks ranges the game relies on.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Speed.MinTicksPerMove <= 0 || c.Speed.MinTicksPerMove > c.Speed.BaseTicksPerMove:
		return invalid("speed: need 0 < min_ticks_per_move <= base_ticks_per_move")
	case c.Scoring.FoodScore <= 0:
		return invalid("scoring.food_score must be positive")
	case c.Scoring.GrowBy < 0:
		return invalid("scoring.grow_by must not be negative")
	case c.Leaderboard.Cap <= 0:
		return invalid("leaderboard.cap must be positive")
	}
	return nil
}
