package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		name       string
		difficulty string
		score      int
	}{
		{"alice", "easy", 100},
		{"bob", "easy", 50},
		{"carol", "easy", 200},
		{"dave", "hard", 500},
		{"erin", "easy", 100},
	}
	for _, s := range saves {
		if _, err := store.SaveScore("santa", s.name, s.difficulty, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("santa", "easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	expected := []struct {
		name  string
		score int
	}{{"carol", 200}, {"alice", 100}, {"erin", 100}, {"bob", 50}}
	if len(scores) != len(expected) {
		t.Fatalf("TopScores() returned %d entries, expected %d", len(scores), len(expected))
	}
	for i, e := range expected {
		if scores[i].Name != e.name || scores[i].Score != e.score {
			t.Errorf("TopScores()[%d] = %s/%d, expected %s/%d", i, scores[i].Name, scores[i].Score, e.name, e.score)
		}
		if scores[i].Difficulty != "easy" {
			t.Errorf("TopScores()[%d].Difficulty = %q, expected easy", i, scores[i].Difficulty)
		}
	}

	hard, err := store.TopScores("santa", "hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 || hard[0].Score != 500 {
		t.Errorf("TopScores(hard) = %v, expected one entry of 500", hard)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveScore("santa", "p", "easy", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("santa", "easy", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != TableSize {
		t.Errorf("TopScores(limit 0) returned %d entries, expected %d", len(scores), TableSize)
	}
	if scores[0].Score != 140 {
		t.Errorf("TopScores()[0].Score = %d, expected 140", scores[0].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	hs, err := store.HighScore("santa", "easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", hs)
	}

	store.SaveScore("santa", "a", "easy", 100)
	store.SaveScore("santa", "b", "easy", 300)
	store.SaveScore("santa", "c", "hard", 900)

	hs, err = store.HighScore("santa", "easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 300 {
		t.Errorf("HighScore() = %d, expected 300", hs)
	}
}

func TestStoreQualifies(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []int{50, 40, 30} {
		store.SaveScore("santa", "p", "easy", s)
	}

	tests := []struct {
		score    int
		size     int
		expected bool
	}{
		{0, 3, false},
		{10, 3, false},
		{30, 3, false},
		{31, 3, true},
		{10, 4, true},
		{10, 0, true},
	}
	for _, tt := range tests {
		got, err := store.Qualifies("santa", "easy", tt.score, tt.size)
		if err != nil {
			t.Fatalf("Qualifies() failed: %v", err)
		}
		if got != tt.expected {
			t.Errorf("Qualifies(%d, %d) = %v, expected %v", tt.score, tt.size, got, tt.expected)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("santa", "a", "easy", 100)
	store.SaveScore("other", "a", "easy", 100)

	if err := store.ClearScores("santa"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("santa", "easy", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	other, _ := store.TopScores("other", "easy", 10)
	if len(other) != 1 {
		t.Errorf("Expected other game's scores to be unaffected, got %d", len(other))
	}
}

func TestStoreRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "santa", Difficulty: "easy", Outcome: "won", GiftPoints: 300, DamagePoints: 50, Score: 250, Duration: 90 * time.Second},
		{GameID: "santa", Difficulty: "hard", Outcome: "lost_damage", GiftPoints: 40, DamagePoints: 500, Score: 0, Duration: 30 * time.Second},
		{GameID: "santa", Name: "alice", Difficulty: "easy", Outcome: "won", GiftPoints: 150, Score: 150, Duration: 1500 * time.Millisecond},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentRuns(2) returned %d runs, expected 2", len(recent))
	}
	if recent[0].Name != "alice" || recent[0].Duration != 1500*time.Millisecond {
		t.Errorf("RecentRuns()[0] = %+v, expected alice's 1.5s run", recent[0])
	}
	if recent[1].Outcome != "lost_damage" || recent[1].DamagePoints != 500 {
		t.Errorf("RecentRuns()[1] = %+v, expected the lost hard run", recent[1])
	}

	stats, err := store.GetGameStats("santa")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 2 || stats.HighScore != 250 {
		t.Errorf("GetGameStats() = %+v, expected 3 games, 2 wins, best 250", stats)
	}
	if stats.PlayTime != 121500*time.Millisecond {
		t.Errorf("GetGameStats().PlayTime = %v, expected 2m1.5s", stats.PlayTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Errorf("GetGameStats().LastPlayed is zero")
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats(none) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats(none) = %+v, expected empty stats", empty)
	}
}
