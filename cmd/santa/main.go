// santa is a terminal rendition of the Santa Racer arcade game: steer the
// sleigh across the roofs, drop gifts down the chimneys and reach the
// finish flag before the time runs out.
//
// Usage:
//
//	santa play       - Play in this terminal
//	santa serve      - Start SSH server for remote play
//	santa scores     - Show high scores and run statistics
//	santa simulate   - Run a headless autopilot game
//	santa config     - Print the effective configuration
//	santa maps       - List level maps
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.santa/scores.db)
//	--config <path>       - Custom config YAML
//	--assets <dir>        - Asset directory (default: procedural assets)
//	--difficulty <name>   - Default difficulty: easy, hard
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/games/santa"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagAssets     string
	flagDifficulty string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "santa",
	Short: "Santa Racer - deliver the gifts in your terminal",
	Long: `Santa Racer is a side-scrolling arcade game for the terminal.

Fly the sleigh over the town, drop gifts into the chimneys and reach
the finish flag before the clock runs out. Balloons help, angels,
clouds, goblins and snowmen hurt.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a headless autopilot game
  config    - Print the effective configuration
  maps      - List level maps

Examples:
  santa play
  santa play --difficulty hard --mute
  santa serve --ssh :2222
  santa scores --difficulty easy
  santa simulate --duration 60s --difficulty hard`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		// Sessions created through the registry pick these up.
		santa.SetConfigPath(flagConfig)
		santa.SetDifficultyPreset(flagDifficulty)
		santa.SetAssetsDir(flagAssets)
		return nil
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.santa/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagAssets, "assets", "", "Asset directory (images/, sounds/, data/); procedural if empty")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Default difficulty: easy, hard")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mapsCmd)
}

// loadConfig returns the configuration the global flags select.
func loadConfig() (config.SantaConfig, error) {
	cfg, err := config.LoadSanta(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplySantaPreset(&cfg, d)
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}
