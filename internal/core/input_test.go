package core

import "testing"

func TestInputFrameEdges(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionFire) || f.IsHeld(ActionFire) || f.WasReleased(ActionFire) {
		t.Fatal("zero frame should report nothing")
	}

	f.Set(ActionCharge)
	if !f.Has(ActionCharge) || !f.IsHeld(ActionCharge) {
		t.Error("Set should record a press that is also held")
	}

	f.Hold(ActionLeft)
	if f.Has(ActionLeft) {
		t.Error("Hold should not produce a press edge")
	}

	f.Release(ActionCharge)
	if !f.WasReleased(ActionCharge) {
		t.Error("Release edge missing")
	}

	c := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !c.Has(ActionCharge) || !c.IsHeld(ActionLeft) || !c.WasReleased(ActionCharge) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionFire, "Fire"},
		{ActionCharge, "Charge"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
		{Action(-1), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%d.String() = %q, expected %q", int(tc.a), got, tc.want)
		}
	}
}
