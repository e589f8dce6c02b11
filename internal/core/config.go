package core

// Game modes shared by every game that supports them.
const (
	ModeNormal     = "normal"
	ModeChallenger = "challenger"
)

// RuntimeConfig is passed to Game.Reset.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second
	Seed     int64  // RNG seed; 0 lets the host pick one
	Mode     string // ModeNormal or ModeChallenger; empty means normal
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Mode:     ModeNormal,
	}
}

// NormalizeMode maps unknown or empty modes to ModeNormal.
func NormalizeMode(mode string) string {
	if mode == ModeChallenger {
		return ModeChallenger
	}
	return ModeNormal
}

// GameState is the game status visible to the host.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	ToMenu   bool // the player chose to leave the run from the game-over screen
}

// StepResult is returned by Game.Step after every tick.
type StepResult struct {
	State GameState
	Cues  []Cue // audio and feedback requests raised during the tick
}
