package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/chainfall/internal/core"
)

type binding struct {
	action core.Action
	keys   []ebiten.Key
}

// defaultBindings mirror the terminal key map.
func defaultBindings() []binding {
	return []binding{
		{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
		{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
		{core.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
		{core.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
		{core.ActionJump, []ebiten.Key{ebiten.KeySpace}},
		{core.ActionFire, []ebiten.Key{ebiten.KeyJ, ebiten.KeyX}},
		{core.ActionCharge, []ebiten.Key{ebiten.KeyK, ebiten.KeyZ}},
		{core.ActionConfirm, []ebiten.Key{ebiten.KeyEnter}},
		{core.ActionBack, []ebiten.Key{ebiten.KeyEscape, ebiten.KeyB}},
		{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
		{core.ActionPause, []ebiten.Key{ebiten.KeyP}},
		{core.ActionQuit, []ebiten.Key{ebiten.KeyQ}},
	}
}

// buildFrame fills f from the keyboard and reports whether quit was pressed.
// An action is held while any of its keys is down and released when the
// last of them goes up.
func buildFrame(ks keyState, bindings []binding, f *core.InputFrame) bool {
	quit := false
	for _, b := range bindings {
		pressed, held, released := false, false, false
		for _, k := range b.keys {
			pressed = pressed || ks.JustPressed(k)
			held = held || ks.Pressed(k)
			released = released || ks.JustReleased(k)
		}
		if pressed {
			if b.action == core.ActionQuit {
				quit = true
				continue
			}
			f.Set(b.action)
		}
		switch {
		case held:
			f.Hold(b.action)
		case released:
			f.Release(b.action)
		}
	}
	return quit
}
