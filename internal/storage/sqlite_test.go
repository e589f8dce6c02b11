package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/chainfall/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestKVRoundTrip(t *testing.T) {
	store := openTestStore(t)

	var v map[string]int
	if err := store.GetJSON("missing", &v); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetJSON(missing) = %v, expected ErrNotFound", err)
	}

	if err := store.PutJSON("k", map[string]int{"a": 1}); err != nil {
		t.Fatalf("PutJSON() failed: %v", err)
	}
	if err := store.PutJSON("k", map[string]int{"a": 2}); err != nil {
		t.Fatalf("PutJSON() overwrite failed: %v", err)
	}
	if err := store.GetJSON("k", &v); err != nil || v["a"] != 2 {
		t.Fatalf("GetJSON() = %v, %v", v, err)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.GetJSON("k", &v); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Delete, GetJSON() = %v", err)
	}
}

func TestLeaderboardRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := []session.Entry{
		{Name: "ABCD", Score: 1200, Mode: "normal"},
		{Name: "ZZZZ", Score: 300, Mode: "challenger"},
		{Name: "QQQQ", Score: 1200, Mode: "normal"},
	}
	for _, e := range want {
		if err := store.Append("chainfall", e); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	got := store.Entries("chainfall")
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, expected %+v", i, got[i], want[i])
		}
	}

	if other := store.Entries("snake"); len(other) != 0 {
		t.Errorf("games must not share leaderboards, got %+v", other)
	}
}

func TestLeaderboardMigratesMissingMode(t *testing.T) {
	store := openTestStore(t)

	if err := store.putRaw(LeaderboardKey("chainfall"), `[{"name":"OLD","score":50}]`); err != nil {
		t.Fatal(err)
	}
	got := store.Entries("chainfall")
	if len(got) != 1 || got[0].Mode != "normal" {
		t.Errorf("Entries() = %+v, expected mode normal", got)
	}
}

func TestLeaderboardCorruptFailsSoft(t *testing.T) {
	store := openTestStore(t)

	if err := store.putRaw(LeaderboardKey("chainfall"), `{not json`); err != nil {
		t.Fatal(err)
	}
	if got := store.Entries("chainfall"); len(got) != 0 {
		t.Errorf("corrupt leaderboard should read as empty, got %+v", got)
	}

	// Appending over a corrupt value starts a fresh list.
	if err := store.Append("chainfall", session.Entry{Name: "NEWW", Score: 1}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if got := store.Entries("chainfall"); len(got) != 1 {
		t.Errorf("Entries() = %+v", got)
	}
}

func TestSettings(t *testing.T) {
	store := openTestStore(t)

	if st := store.LoadSettings("chainfall"); st.TutorialCompleted {
		t.Error("default settings should have tutorial incomplete")
	}
	if err := store.SaveSettings("chainfall", Settings{TutorialCompleted: true}); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	if st := store.LoadSettings("chainfall"); !st.TutorialCompleted {
		t.Error("TutorialCompleted did not persist")
	}

	store.putRaw(SettingsKey("chainfall"), "garbage")
	if st := store.LoadSettings("chainfall"); st.TutorialCompleted {
		t.Error("corrupt settings should fall back to defaults")
	}
}

func TestRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 300, 200} {
		if _, err := store.SaveRun("chainfall", "normal", score); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun("chainfall", "challenger", 900)

	st, err := store.Stats("chainfall", "normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.BestScore != 300 || st.AvgScore != 200 {
		t.Errorf("Stats() = %+v", st)
	}

	recent, err := store.RecentRuns("chainfall", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 900 || recent[0].Mode != "challenger" {
		t.Errorf("RecentRuns() = %+v", recent)
	}

	empty, err := store.Stats("snake", "normal")
	if err != nil || empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty history = %+v, %v", empty, err)
	}
}
