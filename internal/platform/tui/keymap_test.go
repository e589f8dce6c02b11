package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chainfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"j", runeKey('j'), core.ActionFire, false},
		{"x", runeKey('x'), core.ActionFire, false},
		{"k", runeKey('k'), core.ActionCharge, false},
		{"z", runeKey('z'), core.ActionCharge, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%s) = %s, %v; want %s, %v", tt.name, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	km := NewKeyMapper()
	if err := km.Rebind(core.ActionFire, "f"); err != nil {
		t.Fatalf("rebind fire to f: %v", err)
	}
	if a, _ := km.MapKey(runeKey('f')); a != core.ActionFire {
		t.Errorf("f maps to %s, want Fire", a)
	}
	if a, _ := km.MapKey(runeKey('j')); a != core.ActionNone {
		t.Errorf("old fire key still maps to %s", a)
	}

	rejected := []struct {
		name   string
		action core.Action
		key    string
	}{
		{"digit", core.ActionCharge, "1"},
		{"two letters", core.ActionCharge, "ab"},
		{"uppercase", core.ActionCharge, "K"},
		{"movement", core.ActionCharge, "a"},
		{"jump", core.ActionCharge, "w"},
		{"taken by fire", core.ActionCharge, "f"},
		{"taken by restart", core.ActionCharge, "r"},
		{"not rebindable", core.ActionLeft, "h"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			err := km.Rebind(tt.action, tt.key)
			if !errors.Is(err, ErrInvalidBinding) {
				t.Fatalf("Rebind(%s, %q) error = %v, want ErrInvalidBinding", tt.action, tt.key, err)
			}
			if a, _ := km.MapKey(runeKey('k')); a != core.ActionCharge {
				t.Errorf("charge binding changed after rejected rebind")
			}
		})
	}
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('y'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%s) = %d, want %d", tt.msg, got, tt.want)
		}
	}
}
