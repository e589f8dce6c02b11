package chainfall

import "github.com/vovakirdan/chainfall/internal/core"

// landingSlop tolerates floating point drift when deciding whether a body
// came from above a platform.
const landingSlop = 0.5

// Blocked records which sides of a body touched something during the last step.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Body is an axis-aligned arcade body positioned by its center.
// Units are world units and world units per second; y grows downward.
type Body struct {
	X, Y    float64
	W, H    float64
	VX, VY  float64
	Gravity bool
	Blocked Blocked

	prevX, prevY float64
}

// Box returns the collision box.
func (b *Body) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// integrate advances the body by dt seconds and clears the blocked flags.
// A zero max velocity means unbounded on that axis.
func (b *Body) integrate(dt, gravity, maxVX, maxVY float64) {
	b.prevX, b.prevY = b.X, b.Y
	b.Blocked = Blocked{}

	if b.Gravity {
		b.VY += gravity * dt
	}
	if maxVX > 0 {
		b.VX = core.ClampF(b.VX, -maxVX, maxVX)
	}
	if maxVY > 0 {
		b.VY = core.ClampF(b.VY, -maxVY, maxVY)
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// collide separates the body from a static box it overlaps and sets the
// matching blocked flag. Bodies that were above the box land on it, bodies
// that were below bump into it, everything else is pushed out sideways.
func (b *Body) collide(s core.Box) bool {
	if !b.Box().Overlaps(s) {
		return false
	}

	prevBottom := b.prevY + b.H/2
	prevTop := b.prevY - b.H/2

	switch {
	case prevBottom <= s.Top()+landingSlop && b.VY >= 0:
		b.Y = s.Top() - b.H/2
		b.VY = 0
		b.Blocked.Down = true
	case prevTop >= s.Bottom()-landingSlop && b.VY <= 0:
		b.Y = s.Bottom() + b.H/2
		b.VY = 0
		b.Blocked.Up = true
	case b.X < s.X:
		b.X = s.Left() - b.W/2
		b.VX = 0
		b.Blocked.Right = true
	default:
		b.X = s.Right() + b.W/2
		b.VX = 0
		b.Blocked.Left = true
	}
	return true
}

// clampToWidth keeps the body inside [0, width] horizontally.
func (b *Body) clampToWidth(width float64) {
	if b.X-b.W/2 < 0 {
		b.X = b.W / 2
		b.VX = 0
		b.Blocked.Left = true
	}
	if b.X+b.W/2 > width {
		b.X = width - b.W/2
		b.VX = 0
		b.Blocked.Right = true
	}
}

// shiftY moves the body and its previous position by dy.
func (b *Body) shiftY(dy float64) {
	b.Y += dy
	b.prevY += dy
}
