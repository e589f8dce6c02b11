package core

// Handle refers to a value stored in an Arena. A handle goes stale when its
// value is removed; the slot may be reused but the old handle never resolves
// again. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle was ever issued by an arena.
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot[T any] struct {
	val  T
	gen  uint32
	live bool
}

// Arena stores values in reusable slots addressed by generational handles.
// Entities that reference each other hold handles instead of pointers, so a
// destroyed entity is detected on lookup instead of being used after free.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.val = v
	s.live = true
	a.live++
	return Handle{index: idx, gen: s.gen}
}

// Get resolves a handle. The pointer stays valid until the next Insert.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return &s.val, true
}

// Contains reports whether the handle still resolves.
func (a *Arena[T]) Contains(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove destroys the value behind h. Removing a stale handle is a no-op
// and returns false.
func (a *Arena[T]) Remove(h Handle) bool {
	if !a.Contains(h) {
		return false
	}
	s := &a.slots[h.index]
	var zero T
	s.val = zero
	s.live = false
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live value in slot order. fn may remove the value
// it is visiting; values inserted during iteration are not visited.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	n := len(a.slots)
	for i := 0; i < n; i++ {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		fn(Handle{index: uint32(i), gen: s.gen}, &s.val)
	}
}

// Handles returns the handles of all live values in slot order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.live)
	for i := range a.slots {
		if a.slots[i].live {
			out = append(out, Handle{index: uint32(i), gen: a.slots[i].gen})
		}
	}
	return out
}

// Clear removes every value. Outstanding handles go stale.
func (a *Arena[T]) Clear() {
	for _, h := range a.Handles() {
		a.Remove(h)
	}
}
