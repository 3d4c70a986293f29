package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	store.SaveScore("stub", "alice", "easy", 300)
	store.SaveScore("stub", "bob", "hard", 500)
	store.SaveRun(storage.Run{GameID: "stub", Difficulty: "easy", Outcome: "won", Score: 300})
	return store
}

func TestScoreboardTabs(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), "stub", 120, 30)

	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("Difficulty() = %v, expected easy", m.Difficulty())
	}
	v := m.View()
	if !strings.Contains(v, "alice") || strings.Contains(v, "bob") {
		t.Errorf("easy View() should list alice only:\n%s", v)
	}
	if !strings.Contains(v, "Played   1") {
		t.Errorf("View() has no run stats:\n%s", v)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() after tab = %v, expected hard", m.Difficulty())
	}
	if v := m.View(); !strings.Contains(v, "bob") {
		t.Errorf("hard View() should list bob:\n%s", v)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("Difficulty() after shift+tab = %v, expected easy", m.Difficulty())
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "stub", 60, 20)
	if v := m.View(); !strings.Contains(v, "No scores recorded yet") {
		t.Errorf("View() without store = %q, expected the empty message", v)
	}
}

func TestSessionToggleScoreboard(t *testing.T) {
	g := &stubGame{}
	m := NewSessionModel(g, seededStore(t), core.RuntimeConfig{ScreenW: 120, ScreenH: 30, TickRate: 60, Seed: 1}, "carol")

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.ScoreboardOpen() {
		t.Fatalf("ScoreboardOpen() = false after tab")
	}
	if v := m.View(); !strings.Contains(v, "HIGH SCORES") {
		t.Errorf("View() with scoreboard open:\n%s", v)
	}

	update(TickMsg{})
	if len(g.frames) != 1 {
		t.Errorf("game stepped %d times under the scoreboard, expected 1", len(g.frames))
	}

	update(runeKey("q"))
	if m.ScoreboardOpen() {
		t.Errorf("ScoreboardOpen() = true after q")
	}
	if m.quitting {
		t.Errorf("q on the scoreboard quit the session")
	}

	if cmd := update(runeKey("q")); cmd == nil || !m.quitting {
		t.Errorf("q in the game did not quit the session")
	}
}
