package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy DifficultyPreset = "easy"
	DifficultyHard DifficultyPreset = "hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []DifficultyPreset{DifficultyEasy, DifficultyHard}

// ParseDifficulty resolves a preset name. The empty string means easy.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy or hard)", s)
	}
}

// GiftsInheritVelocity reports whether dropped gifts carry the sleigh's velocity.
func (d DifficultyPreset) GiftsInheritVelocity() bool {
	return d == DifficultyHard
}

// ApplySantaPreset modifies the config based on a difficulty preset.
func ApplySantaPreset(cfg *SantaConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
}
