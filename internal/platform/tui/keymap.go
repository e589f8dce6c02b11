package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chainfall/internal/core"
)

// ErrInvalidBinding is returned by Rebind when the key cannot be used.
var ErrInvalidBinding = errors.New("tui: invalid key binding")

// KeyMap holds one binding per action.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Jump    key.Binding
	Fire    key.Binding
	Charge  key.Binding
	Confirm key.Binding
	Back    key.Binding
	Restart key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "jump / up")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Jump:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")),
		Fire:    key.NewBinding(key.WithKeys("j", "x"), key.WithHelp("j/x", "fire")),
		Charge:  key.NewBinding(key.WithKeys("k", "z"), key.WithHelp("k/z", "charge")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Fire, k.Charge, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Jump},
		{k.Fire, k.Charge},
		{k.Confirm, k.Back, k.Restart, k.Pause, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the current bindings.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

func (km *KeyMapper) ordered() []struct {
	action  core.Action
	binding *key.Binding
} {
	k := &km.keys
	return []struct {
		action  core.Action
		binding *key.Binding
	}{
		{core.ActionQuit, &k.Quit},
		{core.ActionLeft, &k.Left},
		{core.ActionRight, &k.Right},
		{core.ActionUp, &k.Up},
		{core.ActionDown, &k.Down},
		{core.ActionJump, &k.Jump},
		{core.ActionFire, &k.Fire},
		{core.ActionCharge, &k.Charge},
		{core.ActionConfirm, &k.Confirm},
		{core.ActionBack, &k.Back},
		{core.ActionRestart, &k.Restart},
		{core.ActionPause, &k.Pause},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.ordered() {
		if key.Matches(msg, *b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// Rebind replaces the keys of Fire or Charge with a single letter. Non-letter
// keys, movement keys and keys bound to another action are rejected and the
// previous binding is kept.
func (km *KeyMapper) Rebind(action core.Action, k string) error {
	var target *key.Binding
	switch action {
	case core.ActionFire:
		target = &km.keys.Fire
	case core.ActionCharge:
		target = &km.keys.Charge
	default:
		return fmt.Errorf("%w: %s cannot be rebound", ErrInvalidBinding, action)
	}

	if len(k) != 1 || k[0] < 'a' || k[0] > 'z' {
		return fmt.Errorf("%w: %q is not a letter", ErrInvalidBinding, k)
	}
	for _, b := range km.ordered() {
		if b.binding == target {
			continue
		}
		for _, bound := range b.binding.Keys() {
			if bound == k {
				if isMovement(b.action) {
					return fmt.Errorf("%w: %q is a movement key", ErrInvalidBinding, k)
				}
				return fmt.Errorf("%w: %q is already bound to %s", ErrInvalidBinding, k, b.action)
			}
		}
	}

	target.SetKeys(k)
	target.SetHelp(k, target.Help().Desc)
	return nil
}

func isMovement(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump:
		return true
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
