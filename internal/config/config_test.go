package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSantaConfigValid(t *testing.T) {
	cfg := DefaultSantaConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, expected nil", err)
	}
	if cfg.Sleigh.ImmobileDuration >= cfg.Sleigh.ImmobileDuration+cfg.Sleigh.InvincibleDuration {
		t.Error("invincibility must outlast immobility")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSanta("")
	if err != nil {
		t.Fatalf("LoadSanta() error = %v", err)
	}
	def := DefaultSantaConfig()

	if cfg.Score.TotalTime != def.Score.TotalTime {
		t.Errorf("TotalTime = %v, expected %v", cfg.Score.TotalTime, def.Score.TotalTime)
	}
	if cfg.Sleigh.Stars.Count != def.Sleigh.Stars.Count {
		t.Errorf("Stars.Count = %d, expected %d", cfg.Sleigh.Stars.Count, def.Sleigh.Stars.Count)
	}
	if len(cfg.NPC.Markers) != len(def.NPC.Markers) {
		t.Errorf("len(Markers) = %d, expected %d", len(cfg.NPC.Markers), len(def.NPC.Markers))
	}
	if cfg.Sleigh.Menu.Period != def.Sleigh.Menu.Period {
		t.Errorf("Menu.Period = %v, expected %v", cfg.Sleigh.Menu.Period, def.Sleigh.Menu.Period)
	}
	if len(cfg.NPC.Snowman.StarOffsets) != 5 {
		t.Errorf("len(StarOffsets) = %d, expected 5", len(cfg.NPC.Snowman.StarOffsets))
	}
}

func TestLoadSantaCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "santa.yaml")
	data := []byte("countdown: 1s\nscore:\n  total_time: 90s\ndifficulty: hard\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSanta(path)
	if err != nil {
		t.Fatalf("LoadSanta() error = %v", err)
	}
	if cfg.Countdown != time.Second {
		t.Errorf("Countdown = %v, expected 1s", cfg.Countdown)
	}
	if cfg.Score.TotalTime != 90*time.Second {
		t.Errorf("TotalTime = %v, expected 90s", cfg.Score.TotalTime)
	}
	if cfg.Score.MaxDamage != DefaultSantaConfig().Score.MaxDamage {
		t.Errorf("MaxDamage = %v, expected default to survive", cfg.Score.MaxDamage)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q, expected hard", cfg.Difficulty)
	}
}

func TestLoadSantaErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("level: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("level:\n  rows: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"malformed yaml", bad},
		{"invalid values", invalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadSanta(tc.path); err == nil {
				t.Errorf("LoadSanta(%q) error = nil, expected error", tc.path)
			}
		})
	}
}

func TestLoadSantaLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "santa.yaml"), []byte("level:\n  rows: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSanta("")
	if err != nil {
		t.Fatalf("LoadSanta() error = %v", err)
	}
	if cfg.Level.Rows != 7 {
		t.Errorf("Level.Rows = %d, expected 7", cfg.Level.Rows)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyEasy, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDifficulty(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestApplySantaPreset(t *testing.T) {
	cfg := DefaultSantaConfig()
	ApplySantaPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.GiftsInheritVelocity() {
		t.Error("hard preset should make gifts inherit sleigh velocity")
	}
	ApplySantaPreset(&cfg, DifficultyEasy)
	if cfg.Difficulty.GiftsInheritVelocity() {
		t.Error("easy preset should not make gifts inherit sleigh velocity")
	}
}
