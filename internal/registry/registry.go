// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing hosts to discover
// and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/session"
)

// Game is the interface every game implements. Games contain pure logic:
// hosts handle input mapping, timing, rendering and audio.
type Game interface {
	// ID returns the identifier used by the CLI and the leaderboard key.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a fresh run. RuntimeConfig carries screen size, seed and mode.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// CanvasDrawer is implemented by games that can draw in world units for
// windowed hosts.
type CanvasDrawer interface {
	DrawCanvas(c core.Canvas)
	// WorldSize is the visible viewport in world units.
	WorldSize() (w, h float64)
}

// LeaderboardUser is implemented by games that qualify and record high
// scores themselves (name entry happens inside the game screen).
type LeaderboardUser interface {
	SetLeaderboard(b session.Leaderboard)
}

// Resizer is implemented by games whose layout depends on the screen size.
// Hosts call it when the terminal is resized.
type Resizer interface {
	Resize(w, h int)
}

// ModeLister is implemented by games with more than one mode.
type ModeLister interface {
	Modes() []string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Modes []string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title(), Modes: []string{core.ModeNormal}}
	if ml, ok := g.(ModeLister); ok {
		info.Modes = ml.Modes()
	}
	infos[id] = info
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// HasMode reports whether the game supports the given mode.
func HasMode(id, mode string) bool {
	mu.RLock()
	defer mu.RUnlock()

	for _, m := range infos[id].Modes {
		if m == mode {
			return true
		}
	}
	return false
}
