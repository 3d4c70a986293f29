// Package config provides YAML-based game configuration loading and
// difficulty presets for Santa Racer.
package config

import (
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
)

// SantaConfig contains all configuration for the game.
type SantaConfig struct {
	Canvas     core.Vec2        `yaml:"canvas"`
	Countdown  time.Duration    `yaml:"countdown"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Score      ScoreConfig      `yaml:"score"`
	Level      LevelConfig      `yaml:"level"`
	Sleigh     SleighConfig     `yaml:"sleigh"`
	Gift       GiftConfig       `yaml:"gift"`
	NPC        NPCConfig        `yaml:"npc"`
	Audio      AudioConfig      `yaml:"audio"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// ScoreConfig defines the time and damage budget of a run.
type ScoreConfig struct {
	TotalTime time.Duration `yaml:"total_time"`
	MaxDamage float64       `yaml:"max_damage"` // 0 disables losing by damage
}

// LevelConfig defines the tile grid and scrolling parameters.
type LevelConfig struct {
	Rows            int     `yaml:"rows"`
	MinScrollSpeed  float64 `yaml:"min_scroll_speed"`
	MaxScrollSpeed  float64 `yaml:"max_scroll_speed"`
	MenuScrollSpeed float64 `yaml:"menu_scroll_speed"`
	LandscapeFactor float64 `yaml:"landscape_factor"`
}

// SleighConfig defines the player controller.
type SleighConfig struct {
	MaxVelocity      core.Vec2 `yaml:"max_velocity"`
	MaxAcceleration  core.Vec2 `yaml:"max_acceleration"`
	ReindeerOffset   core.Vec2 `yaml:"reindeer_offset"`
	StartPosition    core.Vec2 `yaml:"start_position"`
	FrameSpeed       float64   `yaml:"frame_speed"`
	ShieldFrameSpeed float64   `yaml:"shield_frame_speed"`
	TerrainDamage    float64   `yaml:"terrain_damage"`

	GiftWait             time.Duration `yaml:"gift_wait"`
	BonusDuration        time.Duration `yaml:"bonus_duration"`
	ShieldDuration       time.Duration `yaml:"shield_duration"`
	DrunkDuration        time.Duration `yaml:"drunk_duration"`
	InvincibleDuration   time.Duration `yaml:"invincible_duration"`
	ImmobileDuration     time.Duration `yaml:"immobile_duration"`
	ElectrocutedDuration time.Duration `yaml:"electrocuted_duration"`
	BlinkPeriod          time.Duration `yaml:"blink_period"`

	Menu  MenuPathConfig `yaml:"menu"`
	Stars StarConfig     `yaml:"stars"`
}

// MenuPathConfig defines the sinusoidal attract-mode flight path.
type MenuPathConfig struct {
	Period core.Vec2 `yaml:"period"` // seconds per full oscillation, per axis
	Min    core.Vec2 `yaml:"min"`
	Max    core.Vec2 `yaml:"max"`
}

// StarConfig defines the decorative trail behind the sleigh.
type StarConfig struct {
	Count            int       `yaml:"count"`
	MinOffset        core.Vec2 `yaml:"min_offset"`
	MaxOffset        core.Vec2 `yaml:"max_offset"`
	FrameSpeed       float64   `yaml:"frame_speed"`
	MaxLifetime      float64   `yaml:"max_lifetime"` // in frames
	SmallProbability float64   `yaml:"small_probability"`
}

// GiftConfig defines dropped gifts and chimney scoring.
type GiftConfig struct {
	FallSpeed         float64    `yaml:"fall_speed"`
	Acceleration      core.Vec2  `yaml:"acceleration"`
	FrameSpeed        float64    `yaml:"frame_speed"`
	ShowingFrameSpeed float64    `yaml:"showing_frame_speed"`
	StarFrameOffset   float64    `yaml:"star_frame_offset"` // start frame of the last scoring star
	GroundDamage      float64    `yaml:"ground_damage"`
	ChimneyHeight     float64    `yaml:"chimney_height"`
	BonusMultiplier   float64    `yaml:"bonus_multiplier"`
	Points            PointTiers `yaml:"points"`
}

// PointTiers maps chimney rows to points: rows 0-1 low, row 2 mid, deeper high.
type PointTiers struct {
	Low  float64 `yaml:"low"`
	Mid  float64 `yaml:"mid"`
	High float64 `yaml:"high"`
}

// NPCConfig defines the marker table and every archetype's tuning.
type NPCConfig struct {
	Markers  []MarkerBinding `yaml:"markers"`
	Fallback string          `yaml:"fallback"`
	Damage   float64         `yaml:"damage"`

	AngelFrameSpeed   float64 `yaml:"angel_frame_speed"`
	BalloonFrameSpeed float64 `yaml:"balloon_frame_speed"`
	GoblinFrameSpeed  float64 `yaml:"goblin_frame_speed"`
	SnowmanFrameSpeed float64 `yaml:"snowman_frame_speed"`

	Balloon BalloonConfig `yaml:"balloon"`
	Goblin  GoblinConfig  `yaml:"goblin"`
	Snowman SnowmanConfig `yaml:"snowman"`
}

// MarkerBinding binds a foreground tile marker to an archetype name.
type MarkerBinding struct {
	Marker float64 `yaml:"marker"`
	Kind   string  `yaml:"kind"`
}

// BalloonConfig defines balloon launch and pickup effects.
type BalloonConfig struct {
	LaunchSpeed float64 `yaml:"launch_speed"`
	CashPoints  float64 `yaml:"cash_points"`
	HeartPoints float64 `yaml:"heart_points"`
}

// GoblinConfig defines goblin snowball projectiles.
type GoblinConfig struct {
	ProjectileVelocity     core.Vec2 `yaml:"projectile_velocity"`
	ProjectileAcceleration core.Vec2 `yaml:"projectile_acceleration"`
	ProjectileFrameSpeed   float64   `yaml:"projectile_frame_speed"`
}

// SnowmanConfig defines the snowman launch.
type SnowmanConfig struct {
	LaunchSpeed        float64   `yaml:"launch_speed"`
	LaunchedFrameSpeed float64   `yaml:"launched_frame_speed"`
	StarFrameSpeed     float64   `yaml:"star_frame_speed"`
	StarOffsets        []core.Vec2 `yaml:"star_offsets"`
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// AssetsConfig selects where images, sounds and level data come from.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`      // empty means procedural assets
	MapFile string `yaml:"map_file"` // optional YAML level map
	Seed    int64  `yaml:"seed"`     // procedural level seed
	Columns int    `yaml:"columns"`  // procedural level length in tiles
}
