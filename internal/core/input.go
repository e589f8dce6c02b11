package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left / cursor left
	ActionRight          // D, Right arrow - move right / cursor right
	ActionUp             // W, Up arrow - menu up / cycle letter
	ActionDown           // S, Down arrow - menu down / cycle letter
	ActionJump           // Space, W - jump
	ActionFire           // J, X - primary weapon (press edge fires)
	ActionCharge         // K, Z - secondary weapon (hold to charge, release to fire)
	ActionConfirm        // Enter - confirm selection
	ActionBack           // Escape, B - back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Jump",
	ActionFire:    "Fire",
	ActionCharge:  "Charge",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the input for one simulation tick.
//
// Actions holds press edges (triggered this tick), Held the actions that are
// down during the tick, Released the release edges. Hosts that cannot observe
// releases synthesize them (see the terminal hold tracker).
type InputFrame struct {
	Actions  map[Action]bool
	Held     map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Held:     make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set records a press edge for the action. A pressed action is also held.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks the action as down during this tick.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Release records a release edge for the action.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// Has reports whether the action was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld reports whether the action is down this tick.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// WasReleased reports whether the action was released this tick.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Held) == 0 && len(f.Released) == 0
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
	clear(f.Released)
}

// Clone returns a deep copy of the frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	for k, v := range f.Held {
		c.Held[k] = v
	}
	for k, v := range f.Released {
		c.Released[k] = v
	}
	return c
}
