package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/santa-racer/internal/core"
)

//go:embed defaults/santa.yaml
var defaultSantaYAML []byte

// DefaultSantaConfig returns the built-in Santa Racer configuration.
func DefaultSantaConfig() SantaConfig {
	return SantaConfig{
		Canvas:     core.V(640, 480),
		Countdown:  3 * time.Second,
		Difficulty: DifficultyEasy,
		Score: ScoreConfig{
			TotalTime: 450 * time.Second,
			MaxDamage: 500,
		},
		Level: LevelConfig{
			Rows:            5,
			MinScrollSpeed:  40,
			MaxScrollSpeed:  160,
			MenuScrollSpeed: 60,
			LandscapeFactor: 0.1,
		},
		Sleigh: SleighConfig{
			MaxVelocity:      core.V(200, 200),
			MaxAcceleration:  core.V(1000, 1000),
			ReindeerOffset:   core.V(10, 3),
			StartPosition:    core.V(50, 100),
			FrameSpeed:       14,
			ShieldFrameSpeed: 8,
			TerrainDamage:    50,

			GiftWait:             250 * time.Millisecond,
			BonusDuration:        15 * time.Second,
			ShieldDuration:       15 * time.Second,
			DrunkDuration:        15 * time.Second,
			InvincibleDuration:   3 * time.Second,
			ImmobileDuration:     5 * time.Second,
			ElectrocutedDuration: time.Second,
			BlinkPeriod:          500 * time.Millisecond,

			Menu: MenuPathConfig{
				Period: core.V(30, 20),
				Min:    core.V(50, 50),
				Max:    core.V(450, 200),
			},
			Stars: StarConfig{
				Count:            67,
				MinOffset:        core.V(-150, -10),
				MaxOffset:        core.V(-10, 0),
				FrameSpeed:       34,
				MaxLifetime:      30,
				SmallProbability: 0.5,
			},
		},
		Gift: GiftConfig{
			FallSpeed:         50,
			Acceleration:      core.V(0, 200),
			FrameSpeed:        15,
			ShowingFrameSpeed: 15,
			StarFrameOffset:   4,
			GroundDamage:      15,
			ChimneyHeight:     20,
			BonusMultiplier:   2,
			Points:            PointTiers{Low: 10, Mid: 15, High: 20},
		},
		NPC: NPCConfig{
			Markers: []MarkerBinding{
				{Marker: 70, Kind: "angel"},
				{Marker: 71, Kind: "heart_balloon"},
				{Marker: 72, Kind: "wine_balloon"},
				{Marker: 73, Kind: "gift_balloon"},
				{Marker: 74, Kind: "cloud"},
				{Marker: 75, Kind: "shield_balloon"},
				{Marker: 76, Kind: "finish"},
				{Marker: 68, Kind: "goblin"},
				{Marker: 29, Kind: "snowman"},
			},
			Fallback: "angel",
			Damage:   25,

			AngelFrameSpeed:   13,
			BalloonFrameSpeed: 10,
			GoblinFrameSpeed:  12,
			SnowmanFrameSpeed: 8,

			Balloon: BalloonConfig{
				LaunchSpeed: 50,
				CashPoints:  20,
				HeartPoints: 50,
			},
			Goblin: GoblinConfig{
				ProjectileVelocity:     core.V(-100, -300),
				ProjectileAcceleration: core.V(0, 200),
				ProjectileFrameSpeed:   12,
			},
			Snowman: SnowmanConfig{
				LaunchSpeed:        200,
				LaunchedFrameSpeed: 16,
				StarFrameSpeed:     17,
				StarOffsets: []core.Vec2{
					core.V(-10, 20), core.V(5, 40), core.V(20, 30), core.V(35, 45), core.V(50, 25),
				},
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.8,
		},
		Assets: AssetsConfig{
			Seed:    2020,
			Columns: 120,
		},
	}
}
