package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa"
)

var (
	flagDuration   time.Duration
	flagShowScreen bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot game",
	Long: `Play one run without a terminal. A simple autopilot steers the
sleigh and drops gifts while a manual clock advances one tick per step,
so a run takes a fraction of its game time. The outcome is logged.

Examples:
  santa simulate
  santa simulate --duration 60s --difficulty hard
  santa simulate --seed 42 --screen`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Minute, "Game time limit")
	simulateCmd.Flags().BoolVar(&flagShowScreen, "screen", false, "Print the last frame")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "santa-sim",
	})

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("cannot load config", "err", err)
		os.Exit(1)
	}
	cfg.Audio.Enabled = false

	clock := core.NewManualClock(time.Unix(0, 0))
	game := santa.New(
		santa.WithConfig(cfg),
		santa.WithClock(clock),
		santa.WithLogger(logger),
	)
	if err := game.Init(); err != nil {
		logger.Error("cannot start game", "err", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	tick := time.Second / time.Duration(max(flagFPS, 1))
	began := time.Now()
	difficulty := game.Config().Difficulty
	res := santa.Simulate(game, clock, difficulty, tick, flagDuration)

	logger.Info("simulation finished",
		"outcome", res.Outcome,
		"difficulty", difficulty,
		"seed", seed,
		"gift", res.Final.GiftPoints,
		"damage", res.Final.DamagePoints,
		"final", res.Final.Final,
		"game_time", res.Elapsed,
		"ticks", res.Ticks,
		"wall_time", time.Since(began).Round(time.Millisecond),
	)

	if flagShowScreen {
		screen := core.NewScreen(80, 24)
		game.Render(screen)
		fmt.Println(screen.String())
	}
}
