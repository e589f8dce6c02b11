// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// ChainfallConfig contains all tunables of the Chainfall descent shooter.
// Lengths are world units (the play field is World.Width wide, y grows
// downward), speeds are units per second, times are milliseconds.
type ChainfallConfig struct {
	World       ChainfallWorld     `yaml:"world"`
	Player      ChainfallPlayer    `yaml:"player"`
	Platforms   ChainfallPlatforms `yaml:"platforms"`
	Enemies     ChainfallEnemies   `yaml:"enemies"`
	Combat      ChainfallCombat    `yaml:"combat"`
	Charge      ChainfallCharge    `yaml:"charge"`
	Hazards     ChainfallHazards   `yaml:"hazards"`
	PowerUps    ChainfallPowerUps  `yaml:"powerups"`
	Difficulty  DifficultyConfig   `yaml:"difficulty"`
	Leaderboard LeaderboardConfig  `yaml:"leaderboard"`
}

// ChainfallWorld defines the infinite world, camera and rebasing.
type ChainfallWorld struct {
	Width           float64 `yaml:"width"`
	ViewHeight      float64 `yaml:"view_height"`
	Gravity         float64 `yaml:"gravity"`
	InitialBottom   float64 `yaml:"initial_bottom"`
	Chunk           float64 `yaml:"chunk"`
	Margin          float64 `yaml:"margin"`
	RebaseThreshold float64 `yaml:"rebase_threshold"`
	RebaseDelta     float64 `yaml:"rebase_delta"`
	CameraLead      float64 `yaml:"camera_lead"`    // camera top stays at least this far above the player
	TopOutMargin    float64 `yaml:"top_out_margin"` // player above camera top by this much ends the run
	CapacityAhead   float64 `yaml:"capacity_ahead"`
	SeedFrom        float64 `yaml:"seed_from"`
	SeedAhead       float64 `yaml:"seed_ahead"`
	RecycleMargin   float64 `yaml:"recycle_margin"`
	RecycleBase     float64 `yaml:"recycle_base"`
	DepthOrigin     float64 `yaml:"depth_origin"`
}

// ChainfallPlayer defines the player body and weapon stock.
type ChainfallPlayer struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	MaxVelocityX float64 `yaml:"max_velocity_x"`
	MaxVelocityY float64 `yaml:"max_velocity_y"`
	MaxAmmo      int     `yaml:"max_ammo"`
	Recoil       float64 `yaml:"recoil"`
}

// ChainfallPlatforms defines platform generation.
type ChainfallPlatforms struct {
	MinWidth   int     `yaml:"min_width"`
	MaxWidth   int     `yaml:"max_width"`
	Height     float64 `yaml:"height"`
	MinLeft    int     `yaml:"min_left"`
	MaxRight   int     `yaml:"max_right"`
	MinGap     int     `yaml:"min_gap"`
	MaxGap     int     `yaml:"max_gap"`
	StartLeft  float64 `yaml:"start_left"`
	StartY     float64 `yaml:"start_y"`
	StartWidth float64 `yaml:"start_width"`
	FirstSeedY float64 `yaml:"first_seed_y"`
}

// ChainfallEnemies defines spawning and per-kind behavior.
type ChainfallEnemies struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	SpawnInset         float64 `yaml:"spawn_inset"`
	PatrolInset        float64 `yaml:"patrol_inset"`
	BaseChance         int     `yaml:"base_chance"`
	BaseChanceGain     int     `yaml:"base_chance_gain"`
	SecondChance       int     `yaml:"second_chance"`
	SecondChanceGain   int     `yaml:"second_chance_gain"`
	SecondMinWidth     float64 `yaml:"second_min_width"`
	CountMultMax       float64 `yaml:"count_mult_max"`
	SpawnMultMax       float64 `yaml:"spawn_mult_max"`
	ShooterChance      float64 `yaml:"shooter_chance"`
	JumperChance       float64 `yaml:"jumper_chance"`
	ShieldChance       float64 `yaml:"shield_chance"`
	WalkSpeedMin       int     `yaml:"walk_speed_min"`
	WalkSpeedMax       int     `yaml:"walk_speed_max"`
	ShooterSpeedMin    int     `yaml:"shooter_speed_min"`
	ShooterSpeedMax    int     `yaml:"shooter_speed_max"`
	JumpCooldownMinMs  int     `yaml:"jump_cooldown_min_ms"`
	JumpCooldownMaxMs  int     `yaml:"jump_cooldown_max_ms"`
	JumpVelocity       float64 `yaml:"jump_velocity"`
	ShootCooldownMinMs int     `yaml:"shoot_cooldown_min_ms"`
	ShootCooldownMaxMs int     `yaml:"shoot_cooldown_max_ms"`
	CrowdedShooters    int     `yaml:"crowded_shooters"`
	CrowdedCooldown    float64 `yaml:"crowded_cooldown_mult"`
	BulletSpeed        float64 `yaml:"bullet_speed"`
	BulletWidth        float64 `yaml:"bullet_width"`
	BulletHeight       float64 `yaml:"bullet_height"`
	BulletCullAbove    float64 `yaml:"bullet_cull_above"`
	BulletCullBelow    float64 `yaml:"bullet_cull_below"`
}

// ChainfallCombat defines player bullets and scoring.
type ChainfallCombat struct {
	BulletSpeed       float64 `yaml:"bullet_speed"`
	BulletWidth       float64 `yaml:"bullet_width"`
	BulletHeight      float64 `yaml:"bullet_height"`
	BulletOffset      float64 `yaml:"bullet_offset"`
	BulletCullBelow   float64 `yaml:"bullet_cull_below"`
	ScoreWalker       int     `yaml:"score_walker"`
	ScoreJumper       int     `yaml:"score_jumper"`
	ScoreShooter      int     `yaml:"score_shooter"`
	ShieldMult        float64 `yaml:"shield_mult"`
	ComboStep         float64 `yaml:"combo_step"`
	MultiKillWindowMs int     `yaml:"multi_kill_window_ms"`
	ScoreMilestone    int     `yaml:"score_milestone"`
	DepthMilestone    int     `yaml:"depth_milestone"`
	DepthMilestoneMul float64 `yaml:"depth_milestone_mult"`
}

// ChainfallCharge defines the hold-to-charge ray.
type ChainfallCharge struct {
	ThresholdMs    int     `yaml:"threshold_ms"`
	Cost           int     `yaml:"cost"`
	Pierce         int     `yaml:"pierce"`
	SlowMo         float64 `yaml:"slowmo"`
	RayTolerance   float64 `yaml:"ray_tolerance"`
	RecoilFactor   float64 `yaml:"recoil_factor"`
	ToneMinHz      float64 `yaml:"tone_min_hz"`
	ToneMaxHz      float64 `yaml:"tone_max_hz"`
	FailsafeHoldMs int     `yaml:"failsafe_hold_ms"`
}

// ChainfallHazards defines the toggling side walls.
type ChainfallHazards struct {
	Enabled           bool    `yaml:"enabled"`
	Inset             float64 `yaml:"inset"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	CenterOffset      float64 `yaml:"center_offset"`
	InitialIntervalMs int     `yaml:"initial_interval_ms"`
	ToggleMinMs       int     `yaml:"toggle_min_ms"`
	ToggleMaxMs       int     `yaml:"toggle_max_ms"`
}

// ChainfallPowerUps defines the jetpack drop.
type ChainfallPowerUps struct {
	Enabled    bool    `yaml:"enabled"`
	Size       float64 `yaml:"size"`
	DropOffset float64 `yaml:"drop_offset"`
	SideOffset float64 `yaml:"side_offset"`
	CullAbove  float64 `yaml:"cull_above"`
	CullBelow  float64 `yaml:"cull_below"`
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Speed       SnakeSpeed        `yaml:"speed"`
	Scoring     SnakeScoring      `yaml:"scoring"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// SnakeSpeed defines movement pacing in simulation ticks.
type SnakeSpeed struct {
	BaseTicksPerMove int `yaml:"base_ticks_per_move"`
	MinTicksPerMove  int `yaml:"min_ticks_per_move"`
}

// SnakeScoring defines food value and the combo chain.
type SnakeScoring struct {
	FoodScore     int     `yaml:"food_score"`
	ComboWindowMs int     `yaml:"combo_window_ms"`
	ComboStep     float64 `yaml:"combo_step"`
	GrowBy        int     `yaml:"grow_by"`
}

// LeaderboardConfig defines high-score qualification.
type LeaderboardConfig struct {
	Cap int `yaml:"cap"` // entries per mode that count as a high score
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty grows with progress.
//
// With Step > 0 the level rises in discrete steps of StepIncrement every
// Step units of progress; otherwise it grows linearly until MaxAt.
type ProgressionConfig struct {
	Type          string  `yaml:"type"` // "score", "time", "depth", or "none"
	MaxAt         int     `yaml:"max_at"`
	Step          float64 `yaml:"step"`
	StepIncrement float64 `yaml:"step_increment"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means "leave the loaded config alone".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (use easy, normal, hard or fixed)", ErrInvalid, s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	if preset == DifficultyHard {
		return 0.45
	}
	return 0.0
}

func (d DifficultyConfig) applyPreset(preset DifficultyPreset) DifficultyConfig {
	switch preset {
	case "":
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
	return d
}

// Ms converts a millisecond config value to a duration.
func Ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
