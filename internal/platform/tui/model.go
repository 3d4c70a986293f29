package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-racer/internal/core"
	"github.com/vovakirdan/santa-racer/internal/registry"
	"github.com/vovakirdan/santa-racer/internal/storage"
)

// helpRows is the number of terminal rows below the game screen.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	keys       *KeyMapper
	hold       *HoldTracker
	help       help.Model
	logger     *log.Logger
	now        func() time.Time
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the finished run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
// player names the highscore entries; store may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if player == "" {
		player = "santa"
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		store:      store,
		config:     cfg,
		player:     player,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(0, 0),
		help:       h,
		logger:     log.New(io.Discard),
		now:        time.Now,
		inputFrame: core.NewInputFrame(),
	}
}

// SetLogger replaces the discard logger.
func (m *Model) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case Directional(action):
		m.hold.Press(action, m.now())
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
// The game scales to any size, so no reset is needed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.inputFrame, m.now())

	// The frame is cleared below; the game gets its own copy.
	result := m.game.Step(m.inputFrame.Clone())
	m.gameState = result.State

	// Record the finished run (once)
	if m.gameState.GameOver {
		if !m.runSaved {
			m.recordRun(m.gameState)
			m.runSaved = true
			m.hold.Release()
		}
	} else {
		m.runSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the run and, for a qualifying win, a highscore.
func (m Model) recordRun(st core.GameState) {
	if m.store == nil {
		return
	}

	run := storage.Run{
		GameID:       m.game.ID(),
		Name:         m.player,
		Difficulty:   st.Difficulty,
		Outcome:      st.Outcome.String(),
		GiftPoints:   st.GiftPoints,
		DamagePoints: st.DamagePoints,
		Score:        st.Score,
		Duration:     st.Played,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "err", err)
	}

	if st.Outcome != core.OutcomeWon {
		return
	}
	ok, err := m.store.Qualifies(m.game.ID(), st.Difficulty, st.Score, storage.TableSize)
	if err != nil {
		m.logger.Warn("could not read highscores", "err", err)
		return
	}
	if !ok {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, st.Difficulty, st.Score); err != nil {
		m.logger.Warn("could not save score", "err", err)
		return
	}
	m.logger.Info("new highscore", "player", m.player, "difficulty", st.Difficulty, "score", st.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".santa", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// State returns the state reported by the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewModel(game, store, cfg, player)
	model.SetLogger(logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
