package core

import "testing"

func TestArenaInsertGetRemove(t *testing.T) {
	var a Arena[string]

	h1 := a.Insert("walker")
	h2 := a.Insert("shooter")
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", a.Len())
	}

	v, ok := a.Get(h1)
	if !ok || *v != "walker" {
		t.Fatalf("Get(h1) = %v, %v", v, ok)
	}

	if !a.Remove(h1) {
		t.Fatal("Remove(h1) should succeed")
	}
	if a.Remove(h1) {
		t.Error("second Remove of same handle should fail")
	}
	if _, ok := a.Get(h1); ok {
		t.Error("removed handle should not resolve")
	}

	// Slot reuse must not revive the stale handle.
	h3 := a.Insert("jumper")
	if _, ok := a.Get(h1); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if v, ok := a.Get(h3); !ok || *v != "jumper" {
		t.Errorf("Get(h3) = %v, %v", v, ok)
	}
	if v, ok := a.Get(h2); !ok || *v != "shooter" {
		t.Errorf("Get(h2) = %v, %v", v, ok)
	}
}

func TestArenaZeroHandle(t *testing.T) {
	var a Arena[int]
	a.Insert(1)
	var h Handle
	if h.Valid() {
		t.Error("zero handle should be invalid")
	}
	if _, ok := a.Get(h); ok {
		t.Error("zero handle should not resolve")
	}
}

func TestArenaEachAllowsRemoval(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 6; i++ {
		a.Insert(i)
	}

	visited := 0
	a.Each(func(h Handle, v *int) {
		visited++
		if *v%2 == 0 {
			a.Remove(h)
		}
	})
	if visited != 6 {
		t.Errorf("visited %d values, expected 6", visited)
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", a.Len())
	}

	hs := a.Handles()
	a.Clear()
	if a.Len() != 0 {
		t.Errorf("Len() after Clear = %d", a.Len())
	}
	for _, h := range hs {
		if a.Contains(h) {
			t.Error("handle survived Clear")
		}
	}
}
