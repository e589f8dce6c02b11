package config

import (
	_ "embed"
)

//go:embed defaults/chainfall.yaml
var defaultChainfallYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultChainfallConfig returns the built-in Chainfall tuning. The embedded
// YAML mirrors these values and is the one users copy and edit.
func DefaultChainfallConfig() ChainfallConfig {
	return ChainfallConfig{
		World: ChainfallWorld{
			Width:           800,
			ViewHeight:      600,
			Gravity:         900,
			InitialBottom:   20000,
			Chunk:           20000,
			Margin:          1200,
			RebaseThreshold: 200000,
			RebaseDelta:     150000,
			CameraLead:      260,
			TopOutMargin:    20,
			CapacityAhead:   1000,
			SeedFrom:        100,
			SeedAhead:       800,
			RecycleMargin:   60,
			RecycleBase:     300,
			DepthOrigin:     150,
		},
		Player: ChainfallPlayer{
			Width:        18,
			Height:       24,
			Speed:        220,
			JumpVelocity: 300,
			MaxVelocityX: 300,
			MaxVelocityY: 700,
			MaxAmmo:      10,
			Recoil:       240,
		},
		Platforms: ChainfallPlatforms{
			MinWidth:   70,
			MaxWidth:   180,
			Height:     12,
			MinLeft:    40,
			MaxRight:   760,
			MinGap:     70,
			MaxGap:     120,
			StartLeft:  40,
			StartY:     140,
			StartWidth: 160,
			FirstSeedY: 220,
		},
		Enemies: ChainfallEnemies{
			Width:              28,
			Height:             14,
			SpawnInset:         16,
			PatrolInset:        14,
			BaseChance:         75,
			BaseChanceGain:     15,
			SecondChance:       12,
			SecondChanceGain:   28,
			SecondMinWidth:     140,
			CountMultMax:       1.8,
			SpawnMultMax:       2.5,
			ShooterChance:      0.15,
			JumperChance:       0.15,
			ShieldChance:       0.08,
			WalkSpeedMin:       40,
			WalkSpeedMax:       80,
			ShooterSpeedMin:    10,
			ShooterSpeedMax:    30,
			JumpCooldownMinMs:  1200,
			JumpCooldownMaxMs:  2000,
			JumpVelocity:       -250,
			ShootCooldownMinMs: 1200,
			ShootCooldownMaxMs: 1800,
			CrowdedShooters:    2,
			CrowdedCooldown:    1.3,
			BulletSpeed:        -360,
			BulletWidth:        4,
			BulletHeight:       12,
			BulletCullAbove:    60,
			BulletCullBelow:    1200,
		},
		Combat: ChainfallCombat{
			BulletSpeed:       550,
			BulletWidth:       6,
			BulletHeight:      14,
			BulletOffset:      16,
			BulletCullBelow:   700,
			ScoreWalker:       50,
			ScoreJumper:       60,
			ScoreShooter:      80,
			ShieldMult:        1.5,
			ComboStep:         0.5,
			MultiKillWindowMs: 1000,
			ScoreMilestone:    1000,
			DepthMilestone:    1000,
			DepthMilestoneMul: 1.5,
		},
		Charge: ChainfallCharge{
			ThresholdMs:    1000,
			Cost:           2,
			Pierce:         2,
			SlowMo:         3.33,
			RayTolerance:   20,
			RecoilFactor:   0.5,
			ToneMinHz:      440,
			ToneMaxHz:      900,
			FailsafeHoldMs: 5000,
		},
		Hazards: ChainfallHazards{
			Enabled:           true,
			Inset:             6,
			Width:             12,
			Height:            640,
			CenterOffset:      300,
			InitialIntervalMs: 1200,
			ToggleMinMs:       900,
			ToggleMaxMs:       1800,
		},
		PowerUps: ChainfallPowerUps{
			Enabled:    true,
			Size:       20,
			DropOffset: 40,
			SideOffset: 14,
			CullAbove:  100,
			CullBelow:  800,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:          "depth",
				Step:          1000,
				StepIncrement: 0.15,
			},
		},
		Leaderboard: LeaderboardConfig{Cap: 10},
	}
}

// DefaultSnakeConfig returns the built-in Snake tuning.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Speed: SnakeSpeed{
			BaseTicksPerMove: 6,
			MinTicksPerMove:  2,
		},
		Scoring: SnakeScoring{
			FoodScore:     10,
			ComboWindowMs: 2500,
			ComboStep:     0.5,
			GrowBy:        1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:          "score",
				Step:          100,
				StepIncrement: 0.1,
			},
		},
		Leaderboard: LeaderboardConfig{Cap: 10},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "chainfall":
		return defaultChainfallYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
