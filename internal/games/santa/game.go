// Package santa implements Santa Racer: steer the sleigh over a scrolling
// town, drop gifts down chimneys and reach the finish before time runs out.
package santa

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/games/santa/assets"
	"github.com/vovakirdan/santa-racer/internal/games/santa/gift"
	"github.com/vovakirdan/santa-racer/internal/games/santa/level"
	"github.com/vovakirdan/santa-racer/internal/games/santa/maps"
	"github.com/vovakirdan/santa-racer/internal/games/santa/npc"
	"github.com/vovakirdan/santa-racer/internal/games/santa/score"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sleigh"
	"github.com/vovakirdan/santa-racer/internal/games/santa/sprite"
	"github.com/vovakirdan/santa-racer/internal/platform/audio"
	"github.com/vovakirdan/santa-racer/internal/registry"
)

// ID is the registry and storage identifier.
const ID = "santa"

// Mode is the top-level game mode.
type Mode int

const (
	ModeMenu Mode = iota
	ModeRunning
	ModeWon
	ModeLostDueToTime
	ModeLostDueToDamage
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeRunning:
		return "running"
	case ModeWon:
		return "won"
	case ModeLostDueToTime:
		return "lost_time"
	case ModeLostDueToDamage:
		return "lost_damage"
	default:
		return "unknown"
	}
}

// Over reports whether m is one of the outcome modes.
func (m Mode) Over() bool { return m >= ModeWon }

func modeFor(o core.Outcome) Mode {
	switch o {
	case core.OutcomeWon:
		return ModeWon
	case core.OutcomeLostDueToTime:
		return ModeLostDueToTime
	case core.OutcomeLostDueToDamage:
		return ModeLostDueToDamage
	default:
		return ModeMenu
	}
}

// Snapshot is a read-only view of one tick, for tests and the shell.
type Snapshot struct {
	Mode         Mode
	Difficulty   config.DifficultyPreset
	SleighMode   sleigh.Mode
	Countdown    int
	Remaining    time.Duration
	GiftPoints   float64
	DamagePoints float64
	Final        int
	Offset       float64
	ScrollSpeed  float64
	Position     core.Vec2
	Velocity     core.Vec2
	Effects      []sleigh.Effect
	NPCs         int
	Gifts        int
	Unmatched    []float64
}

// soundLoader is implemented by sinks that need the decoded buffers.
type soundLoader interface {
	Load(name string, buf *beep.Buffer)
}

// Game implements the Santa Racer game logic.
type Game struct {
	cfg      config.SantaConfig
	cfgSet   bool
	clock    core.Clock
	provider assets.Provider
	sink     audio.Sink
	logger   *log.Logger
	runtime  core.RuntimeConfig
	rng      *rand.Rand

	ready bool
	err   error

	mode       Mode
	difficulty config.DifficultyPreset
	outcome    core.Outcome

	level     *level.Level
	landscape *level.Landscape
	backdrop  *sprite.Sprite
	chimneys  []gift.Chimney
	sleigh    *sleigh.Sleigh
	gifts     gift.Collection
	npcs      *npc.Manager
	score     *score.Score
}

// Option configures a Game.
type Option func(*Game)

// WithClock sets the time source. Tests use core.ManualClock.
func WithClock(c core.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithProvider sets the asset provider. The default is chosen from the
// assets section of the config.
func WithProvider(p assets.Provider) Option {
	return func(g *Game) { g.provider = p }
}

// WithAudio sets the sound sink. Sinks with a Load method get every
// sound buffer during Init.
func WithAudio(s audio.Sink) Option {
	return func(g *Game) { g.sink = s }
}

// WithLogger sets the logger for mode transitions and asset warnings.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfig replaces file-based configuration.
func WithConfig(cfg config.SantaConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgSet = true
	}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var assetsDir string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by Confirm.
// Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	d, err := config.ParseDifficulty(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = d
}

// SetAssetsDir overrides the asset directory of the config.
func SetAssetsDir(dir string) {
	assetsDir = dir
}

// New creates a game. Construction that can fail happens in Init.
func New(opts ...Option) *Game {
	g := &Game{
		clock:  core.SystemClock{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Santa Racer"
}

// Init loads the configuration and every asset. Any missing asset or
// malformed grid is returned as an error. Init is idempotent.
func (g *Game) Init() error {
	if g.ready {
		return nil
	}
	if err := g.init(); err != nil {
		g.err = err
		return err
	}
	g.err = nil
	g.ready = true
	g.enterMenu(g.clock.Now())
	return nil
}

func (g *Game) init() error {
	if !g.cfgSet {
		cfg, err := config.LoadSanta(configPath)
		if err != nil {
			return err
		}
		g.cfg = cfg
	}
	if difficultyPreset != "" {
		config.ApplySantaPreset(&g.cfg, difficultyPreset)
	}
	if assetsDir != "" {
		g.cfg.Assets.Dir = assetsDir
	}
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	g.difficulty = g.cfg.Difficulty

	if g.sink == nil || !g.cfg.Audio.Enabled {
		g.sink = audio.Null{}
	}
	if g.provider == nil {
		g.provider = g.defaultProvider()
	}
	if g.cfg.Assets.MapFile != "" {
		m, err := maps.LoadFile(g.cfg.Assets.MapFile)
		if err != nil {
			return err
		}
		g.provider = assets.WithMap(g.provider, m)
	}

	seed := g.runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	if err := g.loadLevel(); err != nil {
		return err
	}
	if err := g.loadSleigh(); err != nil {
		return err
	}
	factory, err := npc.NewFactory(g.provider, g.cfg.NPC)
	if err != nil {
		return err
	}
	g.npcs = npc.NewManager(factory, g.logger)
	g.score = score.New(g.cfg.Score)
	return g.loadSounds()
}

func (g *Game) defaultProvider() assets.Provider {
	format := beep.Format{
		SampleRate:  beep.SampleRate(g.cfg.Audio.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if g.cfg.Assets.Dir != "" {
		return assets.Dir(g.cfg.Assets.Dir, format)
	}
	return assets.Procedural(g.cfg.Assets.Seed, format, assets.WithSize(g.cfg.Assets.Columns, g.cfg.Level.Rows))
}

func (g *Game) loadLevel() error {
	tiles, err := g.provider.Image("level")
	if err != nil {
		return err
	}
	grids := make([]level.Grid, 2)
	for i, name := range []string{assets.BackgroundMap, assets.ForegroundMap} {
		if grids[i], err = g.loadGrid(name); err != nil {
			return fmt.Errorf("santa: %s: %w", name, err)
		}
	}
	if g.level, err = level.New(tiles, grids[0], grids[1], g.cfg.Canvas, g.cfg.Level); err != nil {
		return err
	}

	data, err := g.provider.Data(assets.Chimneys)
	if err != nil {
		return err
	}
	if g.chimneys, err = gift.ParseChimneys(data, g.cfg.Gift.ChimneyHeight); err != nil {
		return err
	}

	if g.backdrop, err = g.provider.Image("landscape"); err != nil {
		return err
	}
	g.landscape = level.NewLandscape(float64(g.backdrop.FrameWidth()), g.cfg.Level.LandscapeFactor, g.clock.Now())
	return nil
}

// loadGrid builds a tile grid. Grids with a known row layout must match
// the configured row count; flat data is laid out over it.
func (g *Game) loadGrid(name string) (level.Grid, error) {
	if src, ok := g.provider.(assets.GridSource); ok {
		if rows, ok := src.Grid(name); ok {
			grid, err := level.GridFromRows(rows)
			if err != nil {
				return nil, err
			}
			if grid.Rows() != g.cfg.Level.Rows {
				return nil, fmt.Errorf("%w: %d rows, expected %d", level.ErrRowCount, grid.Rows(), g.cfg.Level.Rows)
			}
			return grid, nil
		}
	}
	data, err := g.provider.Data(name)
	if err != nil {
		return nil, err
	}
	return level.NewGrid(data, g.cfg.Level.Rows)
}

func (g *Game) loadSleigh() error {
	var sp sleigh.Sprites
	images := []struct {
		name string
		dst  **sprite.Sprite
	}{
		{"sleigh", &sp.Sleigh},
		{"reindeer", &sp.Reindeer},
		{"electrocutedSleigh", &sp.ElectrocutedSleigh},
		{"electrocutedReindeer", &sp.ElectrocutedReindeer},
		{"shield", &sp.Shield},
		{"star", &sp.Star},
		{"smallStar", &sp.SmallStar},
		{"drunkStar", &sp.DrunkStar},
		{"smallDrunkStar", &sp.SmallDrunkStar},
		{"bigStar", &sp.BigStar},
	}
	for _, img := range images {
		s, err := g.provider.Image(img.name)
		if err != nil {
			return err
		}
		*img.dst = s
	}
	for _, name := range []string{"gift1", "gift2", "gift3"} {
		s, err := g.provider.Image(name)
		if err != nil {
			return err
		}
		sp.Gifts = append(sp.Gifts, s)
	}

	s, err := sleigh.New(sp, g.cfg.Canvas, g.cfg.Sleigh, g.rng)
	if err != nil {
		return err
	}
	g.sleigh = s
	return nil
}

// loadSounds fetches every sound so a missing one fails at startup.
func (g *Game) loadSounds() error {
	loader, ok := g.sink.(soundLoader)
	if !ok {
		return nil
	}
	names := assets.SoundNames()
	slices.Sort(names)
	for _, name := range names {
		buf, err := g.provider.Sound(name)
		if err != nil {
			return err
		}
		loader.Load(name, buf)
	}
	return nil
}

// Reset returns to the menu. The first call runs Init.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if !g.ready {
		if err := g.Init(); err != nil {
			g.logger.Error("init failed", "err", err)
			return
		}
	}
	if runtime.Seed != 0 {
		g.rng.Seed(runtime.Seed)
	}
	g.enterMenu(g.clock.Now())
}

// Err returns the Init error, if any.
func (g *Game) Err() error { return g.err }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.ready {
		return core.StepResult{State: g.State()}
	}
	now := g.clock.Now()
	g.handleInput(in, now)

	demo := g.mode != ModeRunning
	g.score.Update(now)

	pos, size := g.sleigh.Position(), g.sleigh.Size()
	g.level.Update(now, pos.X, size.X)
	if demo && g.level.Offset() >= g.level.Width() {
		g.level.SetOffset(0)
	}
	g.landscape.Update(now, g.level.ScrollSpeed())

	g.sleigh.Update(now)
	g.sleigh.CollideTerrain(now, g.level, g.score, g.sink)

	g.gifts.Update(&gift.Env{
		Now:      now,
		Level:    g.level,
		Score:    g.score,
		Audio:    g.sink,
		Chimneys: g.chimneys,
	})
	g.npcs.Update(&npc.Env{
		Now:    now,
		Level:  g.level,
		Player: g.sleigh,
		Score:  g.score,
		Audio:  g.sink,
		Menu:   demo,
	})
	g.npcs.Sync(g.level, now)

	if g.mode == ModeRunning {
		if o := g.score.Outcome(); o != core.OutcomeNone {
			g.finish(o, now)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame, now time.Time) {
	if in.Has(core.ActionBack) {
		if g.mode != ModeMenu {
			g.enterMenu(now)
		}
		return
	}

	if g.mode != ModeRunning {
		switch {
		case in.Has(core.ActionStartEasy):
			g.startGame(config.DifficultyEasy, now)
		case in.Has(core.ActionStartHard):
			g.startGame(config.DifficultyHard, now)
		case in.Has(core.ActionConfirm):
			g.startGame(g.difficulty, now)
		}
		return
	}

	g.sleigh.Steer(sleigh.Intent{
		X: in.Axis(core.ActionLeft, core.ActionRight),
		Y: in.Axis(core.ActionUp, core.ActionDown),
	}, now)
	if in.Has(core.ActionDrop) {
		g.dropGift(now)
	}
}

func (g *Game) dropGift(now time.Time) {
	spawn, ok := g.sleigh.DropGift(now, g.level, g.cfg.Gift, g.difficulty.GiftsInheritVelocity())
	if !ok {
		return
	}
	g.gifts.Add(gift.New(g.cfg.Gift, spawn, now))
}

func (g *Game) startGame(d config.DifficultyPreset, now time.Time) {
	start := now.Add(g.cfg.Countdown)
	g.difficulty = d
	g.outcome = core.OutcomeNone
	g.setMode(ModeRunning)

	g.score.StartGame(start, now)
	g.level.StartGame(start)
	g.landscape.Reset(now)
	g.sleigh.StartGame(start, now)
	g.gifts.Reset()
	g.npcs.Reset()
	g.npcs.Sync(g.level, now)
}

// enterMenu starts the attract-mode demo with a fresh level.
func (g *Game) enterMenu(now time.Time) {
	g.outcome = core.OutcomeNone
	g.setMode(ModeMenu)
	g.startDemo(now)
}

// finish ends the run. The demo keeps playing behind the outcome screen.
func (g *Game) finish(o core.Outcome, now time.Time) {
	g.outcome = o
	g.setMode(modeFor(o))
	g.logger.Info("run finished",
		"outcome", o,
		"difficulty", g.difficulty,
		"gift", g.score.GiftPoints(),
		"damage", g.score.DamagePoints(),
		"final", g.score.Final())
	g.startDemo(now)
}

func (g *Game) startDemo(now time.Time) {
	g.score.StartMenu()
	g.level.StartMenu(now)
	g.landscape.Reset(now)
	g.sleigh.StartMenu(now)
	g.gifts.Reset()
	g.npcs.Reset()
	g.npcs.Sync(g.level, now)
}

func (g *Game) setMode(m Mode) {
	if g.mode != m {
		g.logger.Info("mode", "from", g.mode, "to", m)
	}
	g.mode = m
}

// Mode returns the current top-level mode.
func (g *Game) Mode() Mode { return g.mode }

// Config returns the effective configuration.
func (g *Game) Config() config.SantaConfig { return g.cfg }

// Snapshot returns the observable state of the last tick.
func (g *Game) Snapshot() Snapshot {
	if !g.ready {
		return Snapshot{Mode: g.mode, Difficulty: g.difficulty}
	}
	var active []sleigh.Effect
	for e := sleigh.EffectBonus; e <= sleigh.EffectElectrocuted; e++ {
		if g.sleigh.Active(e) {
			active = append(active, e)
		}
	}
	return Snapshot{
		Mode:         g.mode,
		Difficulty:   g.difficulty,
		SleighMode:   g.sleigh.Mode(),
		Countdown:    g.sleigh.Countdown(),
		Remaining:    g.score.RemainingTime(),
		GiftPoints:   g.score.GiftPoints(),
		DamagePoints: g.score.DamagePoints(),
		Final:        g.score.Final(),
		Offset:       g.level.Offset(),
		ScrollSpeed:  g.level.ScrollSpeed(),
		Position:     g.sleigh.Position(),
		Velocity:     g.sleigh.Velocity(),
		Effects:      active,
		NPCs:         g.npcs.Len(),
		Gifts:        g.gifts.Len(),
		Unmatched:    g.npcs.Unmatched(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver:   g.mode.Over(),
		Outcome:    g.outcome,
		Difficulty: string(g.difficulty),
	}
	if g.score != nil {
		st.Score = g.score.Final()
		st.GiftPoints = int(g.score.GiftPoints())
		st.DamagePoints = int(g.score.DamagePoints())
	}
	if st.GameOver {
		st.Played = g.cfg.Score.TotalTime - g.score.RemainingTime()
	}
	return st
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
