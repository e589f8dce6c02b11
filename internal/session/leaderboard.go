// Package session implements the run lifecycle shared by every game:
// Playing, then GameOver with optional high-score name entry, then either a
// restart in the same mode or a return to the menu.
package session

import (
	"sort"
	"sync"

	"github.com/vovakirdan/chainfall/internal/core"
)

// DefaultCap is the number of entries per mode that count as a high score.
const DefaultCap = 10

// Entry is one leaderboard record.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Mode  string `json:"mode"`
}

// Leaderboard is the persistence a game needs to record high scores.
// Entries must fail soft: an unreadable store yields an empty list.
type Leaderboard interface {
	Entries(game string) []Entry
	Append(game string, e Entry) error
}

// Top returns the n best entries for a mode, highest score first.
// Ties keep insertion order. n <= 0 means no limit.
func Top(entries []Entry, mode string, n int) []Entry {
	mode = core.NormalizeMode(mode)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if core.NormalizeMode(e.Mode) == mode {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Qualifies reports whether score earns a place in the mode's top capN:
// either the mode has fewer than capN entries, or score beats the lowest of them.
func Qualifies(entries []Entry, mode string, score, capN int) bool {
	top := Top(entries, mode, capN)
	if len(top) < capN {
		return true
	}
	return score > top[len(top)-1].Score
}

// MemoryBoard is an in-process Leaderboard.
type MemoryBoard struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

// NewMemoryBoard returns an empty board.
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{entries: make(map[string][]Entry)}
}

// Entries returns a copy of the game's entries in insertion order.
func (b *MemoryBoard) Entries(game string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries[game]...)
}

// Append records an entry.
func (b *MemoryBoard) Append(game string, e Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e.Mode = core.NormalizeMode(e.Mode)
	b.entries[game] = append(b.entries[game], e)
	return nil
}
