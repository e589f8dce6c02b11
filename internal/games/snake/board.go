package snake

import (
	"math"
	"time"

	"github.com/vovakirdan/chainfall/internal/config"
	"github.com/vovakirdan/chainfall/internal/core"
)

// initSnake places a three-segment snake in the middle heading right.
func (g *Game) initSnake() {
	x, y := g.cols/2, g.rows/2
	g.snake = []Point{
		{X: x, Y: y},
		{X: x - 1, Y: y},
		{X: x - 2, Y: y},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growth = 0
}

// spawnFood places food on a random empty cell, or off the board when the
// snake fills it.
func (g *Game) spawnFood() {
	var empty []Point
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// processInput buffers a direction change. Reversing onto the neck is ignored.
func (g *Game) processInput(in core.InputFrame) {
	d := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		d = DirUp
	case in.Has(core.ActionDown):
		d = DirDown
	case in.Has(core.ActionLeft):
		d = DirLeft
	case in.Has(core.ActionRight):
		d = DirRight
	}
	if !d.opposite(g.direction) {
		g.nextDir = d
	}
}

func (g *Game) challenger() bool {
	return g.mode == core.ModeChallenger
}

// ticksPerMove is fixed in normal mode. In challenger mode it moves from
// the base toward the minimum with the difficulty level for the score.
func (g *Game) ticksPerMove() int {
	sp := g.cfg.Speed
	if !g.challenger() {
		return max(sp.BaseTicksPerMove, 1)
	}
	t := int(math.Round(g.diff.Lerp(float64(sp.BaseTicksPerMove), float64(sp.MinTicksPerMove), float64(g.score))))
	return max(t, sp.MinTicksPerMove, 1)
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Game) wrap(p Point) Point {
	p.X = (p.X + g.cols) % g.cols
	p.Y = (p.Y + g.rows) % g.rows
	return p
}

// moveSnake advances the head one cell and resolves walls, self hits and food.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}
	g.direction = g.nextDir

	next := g.snake[0].step(g.direction)
	if g.challenger() {
		if !g.inBounds(next) {
			g.endRun()
			return
		}
	} else {
		next = g.wrap(next)
	}

	// The tail cell frees up this move unless the snake is growing.
	body := len(g.snake)
	if g.growth == 0 {
		body--
	}
	for i := 0; i < body; i++ {
		if g.snake[i] == next {
			g.endRun()
			return
		}
	}

	g.snake = append([]Point{next}, g.snake...)
	if next == g.food {
		g.eat()
	}

	if g.growth > 0 {
		g.growth--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

func (g *Game) multiplier() float64 {
	return 1 + float64(g.combo)*g.cfg.Scoring.ComboStep
}

// eat scores the food with the combo multiplier and restarts the combo window.
func (g *Game) eat() {
	sc := g.cfg.Scoring
	if g.comboLive {
		g.combo++
	}
	g.comboLive = true
	g.bestCombo = max(g.bestCombo, g.combo)

	g.score += int(math.Floor(float64(sc.FoodScore) * g.multiplier()))
	g.foodEaten++
	g.growth += sc.GrowBy

	g.comboSerial++
	g.sched.After(config.Ms(sc.ComboWindowMs), event{kind: evComboExpire, serial: g.comboSerial})
	g.cues = append(g.cues, core.Tone(660*(1+0.1*float64(g.combo)), 80*time.Millisecond))
	if g.combo > 0 && g.combo%5 == 0 {
		g.cues = append(g.cues, core.Banner(comboText(g.combo), core.ColorOrange, 1350*time.Millisecond))
	}

	g.spawnFood()
}
