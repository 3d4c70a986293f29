package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
	"github.com/vovakirdan/santa-racer/internal/platform/tui"
	"github.com/vovakirdan/santa-racer/internal/storage"
)

var (
	flagName    string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Santa Racer",
	Long: `Start the game in this terminal. It opens in the demo menu.

Controls:
  E/F5         - Start an easy run
  H/F6         - Start a hard run
  Enter        - Play again with the last difficulty
  Arrows/WASD  - Steer the sleigh
  Space        - Drop a gift
  Esc/B        - Back to the menu
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  santa play
  santa play --name rudolph
  santa play --assets ./assets --difficulty hard
  santa play --config ./my-santa.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", os.Getenv("USER"), "Name for the highscore table")
	playCmd.Flags().StringVar(&flagLogFile, "log", "~/.santa/santa.log", "Log file (the terminal belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogFile(flagLogFile)
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	opts := []santa.Option{santa.WithConfig(cfg), santa.WithLogger(logger)}
	if mixer := startAudio(cfg.Audio, logger); mixer != nil {
		opts = append(opts, santa.WithAudio(mixer))
	}

	game := santa.New(opts...)
	if err := game.Init(); err != nil {
		logger.Error("cannot start game", "err", err)
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, rc, flagName, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// speakerLock guards mixer state with the speaker's own lock.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// startAudio opens the speaker and returns a mixer feeding it, or nil
// when sound is off or no output device is available.
func startAudio(cfg config.AudioConfig, logger *log.Logger) *audio.Mixer {
	if !cfg.Enabled {
		return nil
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(cfg.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		logger.Warn("sound disabled", "err", err)
		return nil
	}
	mixer := audio.NewMixer(format,
		audio.WithLocker(speakerLock{}),
		audio.WithLogger(logger),
		audio.WithVolume(cfg.Volume),
	)
	speaker.Play(mixer.Streamer())
	return mixer
}

// openLogFile returns a logger appending to path. Logging is discarded
// when the file cannot be opened.
func openLogFile(path string) (*log.Logger, func()) {
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "santa",
	})
	return logger, func() { f.Close() }
}
