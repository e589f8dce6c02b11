package tui

import (
	"sort"
	"time"

	"github.com/vovakirdan/chainfall/internal/core"
)

// DefaultHoldTimeout is how long a key counts as held after its last key
// event. It covers the usual delay before terminal auto-repeat starts.
const DefaultHoldTimeout = 550 * time.Millisecond

// HoldTracker turns the press-only key stream of a terminal into held state
// and release edges. A key stays held while repeats keep arriving; once none
// arrives within the timeout a release is synthesized.
type HoldTracker struct {
	timeout time.Duration
	last    map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. timeout <= 0 uses DefaultHoldTimeout.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{timeout: timeout, last: make(map[core.Action]time.Time)}
}

// Press records a key event for the action at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	h.last[a] = now
}

// Held reports whether the action is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.last[a]
	return ok
}

// Apply marks every held action on f and emits a release edge for each hold
// that expired by now.
func (h *HoldTracker) Apply(now time.Time, f *core.InputFrame) {
	expired := make([]core.Action, 0, len(h.last))
	for a, t := range h.last {
		if now.Sub(t) > h.timeout {
			expired = append(expired, a)
			continue
		}
		f.Hold(a)
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	for _, a := range expired {
		delete(h.last, a)
		f.Release(a)
	}
}

// Reset forgets every hold without emitting releases.
func (h *HoldTracker) Reset() {
	clear(h.last)
}
