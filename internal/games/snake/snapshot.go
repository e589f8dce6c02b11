package snake

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Phase     string
	Score     int
	FoodEaten int
	Combo     int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	Speed     int // ticks per move
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:      g.ticks,
		Mode:      g.mode,
		Phase:     g.session.Phase().String(),
		Score:     g.score,
		FoodEaten: g.foodEaten,
		Combo:     g.combo,
		SnakeLen:  len(g.snake),
		HeadX:     headX,
		HeadY:     headY,
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		Speed:     g.ticksPerMove(),
	}
}
