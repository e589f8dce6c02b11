package storage

import (
	"errors"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/session"
)

// LeaderboardKey returns the kv key holding a game's leaderboard.
func LeaderboardKey(gameID string) string {
	return gameID + "_leaderboard"
}

// Entries returns the game's leaderboard in insertion order. Records written
// before modes existed are read as normal-mode entries. A missing or corrupt
// value yields an empty list; corruption is logged, never returned.
func (s *Store) Entries(gameID string) []session.Entry {
	var raw []session.Entry
	err := s.GetJSON(LeaderboardKey(gameID), &raw)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("leaderboard unreadable, treating as empty", "game", gameID, "err", err)
		return nil
	}
	for i := range raw {
		raw[i].Mode = core.NormalizeMode(raw[i].Mode)
	}
	return raw
}

// Append adds an entry and rewrites the whole leaderboard. The stored list is
// never truncated; per-mode top lists are cut at read time.
func (s *Store) Append(gameID string, e session.Entry) error {
	entries := s.Entries(gameID)
	e.Mode = core.NormalizeMode(e.Mode)
	entries = append(entries, e)
	return s.PutJSON(LeaderboardKey(gameID), entries)
}

// ClearLeaderboard removes every entry for a game.
func (s *Store) ClearLeaderboard(gameID string) error {
	return s.Delete(LeaderboardKey(gameID))
}

var _ session.Leaderboard = (*Store)(nil)
