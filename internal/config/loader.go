package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSanta loads Santa Racer configuration.
// Search order: customPath -> ~/.santa/configs/santa.yaml -> ./configs/santa.yaml -> embedded default
//
// Files are decoded on top of DefaultSantaConfig, so a partial file only
// overrides the keys it names.
func LoadSanta(customPath string) (SantaConfig, error) {
	cfg := DefaultSantaConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("santa.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultSantaConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "santa.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultSantaConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSantaYAML, &cfg); err != nil {
		return DefaultSantaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c SantaConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports configuration values the game cannot start with.
func (c SantaConfig) Validate() error {
	switch {
	case c.Canvas.X <= 0 || c.Canvas.Y <= 0:
		return fmt.Errorf("config: canvas must be positive, got %vx%v", c.Canvas.X, c.Canvas.Y)
	case c.Level.Rows <= 0:
		return fmt.Errorf("config: level rows must be positive, got %d", c.Level.Rows)
	case c.Level.MaxScrollSpeed < c.Level.MinScrollSpeed:
		return fmt.Errorf("config: max scroll speed %v below min %v", c.Level.MaxScrollSpeed, c.Level.MinScrollSpeed)
	case c.Sleigh.MaxAcceleration.X <= 0 || c.Sleigh.MaxAcceleration.Y <= 0:
		return fmt.Errorf("config: sleigh max acceleration must be positive")
	case c.Sleigh.BlinkPeriod <= 0:
		return fmt.Errorf("config: sleigh blink period must be positive")
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".santa", "configs", filename)
}
