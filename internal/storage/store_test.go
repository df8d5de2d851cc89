package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("tower:normal", 12)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tower:normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("Expected high score 12 after reopen, got %d", high)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 300} {
		if _, err := store.SaveScore("tower:normal", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("tower:hard", 500)

	scores, err := store.TopScores("tower:normal", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	want := []int{300, 200, 100}
	if len(scores) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(scores))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].Board != "tower:normal" {
			t.Errorf("scores[%d].Board = %q", i, scores[i].Board)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tower:easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty board, got %d", high)
	}

	store.SaveScore("tower:easy", 10)
	store.SaveScore("tower:easy", 30)
	store.SaveScore("tower:easy", 20)

	high, _ = store.HighScore("tower:easy")
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		Board:    "tower:normal",
		Score:    17,
		Bonuses:  4,
		Blocks:   19,
		Theme:    "neon",
		Seed:     42,
		Duration: 61500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned a non-UUID id %q", id)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if run.Score != 17 || run.Bonuses != 4 || run.Blocks != 19 || run.Theme != "neon" || run.Seed != 42 {
		t.Errorf("run round-trip mismatch: %+v", run)
	}
	if run.Duration != 61500*time.Millisecond {
		t.Errorf("Duration = %v, want 61.5s", run.Duration)
	}

	// The run also lands on the leaderboard.
	high, _ := store.HighScore("tower:normal")
	if high != 17 {
		t.Errorf("Expected run score on the board, got high score %d", high)
	}
}

func TestStoreSaveRunIDs(t *testing.T) {
	store := openTestStore(t)

	fixed := uuid.NewString()
	id, err := store.SaveRun(RunRecord{RunID: fixed, Board: "tower:normal", Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != fixed {
		t.Errorf("SaveRun() = %q, want caller id %q", id, fixed)
	}

	if _, err := store.SaveRun(RunRecord{RunID: fixed, Board: "tower:normal", Score: 2}); err == nil {
		t.Error("SaveRun() accepted a duplicate run id")
	}
	if _, err := store.SaveRun(RunRecord{RunID: "not-a-uuid", Board: "tower:normal"}); err == nil {
		t.Error("SaveRun() accepted a malformed run id")
	}

	// The failed duplicate must not leave a score behind.
	scores, _ := store.TopScores("tower:normal", 10)
	if len(scores) != 1 {
		t.Errorf("Expected 1 score after rejected saves, got %d", len(scores))
	}

	run, err := store.RunByID(uuid.NewString())
	if err != nil || run != nil {
		t.Errorf("RunByID(unknown) = %v, %v; want nil, nil", run, err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRun(RunRecord{Board: "tower:normal", Score: i})
	}
	store.SaveRun(RunRecord{Board: "tower:hard", Score: 99})

	runs, err := store.RecentRuns("tower:normal", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i, want := range []int{5, 4, 3} {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, want)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 6 || all[0].Board != "tower:hard" {
		t.Errorf("RecentRuns(all) = %d runs, newest on %q", len(all), all[0].Board)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Board: "tower:normal", Score: 10})
	store.SaveScore("tower:normal", 20)
	store.SaveRun(RunRecord{Board: "tower:easy", Score: 30})

	if err := store.ClearScores("tower:normal"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("tower:normal", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("tower:normal", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("tower:easy", 10); len(scores) != 1 {
		t.Error("Other boards should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("tower:normal")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore("tower:normal", 10)
	store.SaveScore("tower:normal", 30)

	stats, err = store.GetGameStats("tower:normal")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
