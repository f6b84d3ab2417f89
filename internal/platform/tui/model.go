package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/registry"
	"github.com/vovakirdan/skyhop/internal/storage"
)

// summarizer is implemented by games that report run statistics.
type summarizer interface {
	Summary() core.RunSummary
}

// GameModel runs one game inside Bubble Tea: it samples keys into input
// frames, steps the game on every tick and records finished runs.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	player    string
	input     *InputMapper
	gameState core.GameState

	fixedSeed   bool // Keep the seed on restart
	screenshots bool // Allow ctrl+s to write screen dumps locally
	quitting    bool
	backToMenu  bool
	runSaved    bool // Whether the current run has been saved
}

// NewGameModel creates a model for the given game. A zero seed is replaced
// by a time-based one, and replaced again on every restart.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) GameModel {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return GameModel{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:       store,
		config:      cfg,
		player:      player,
		input:       NewInputMapper(DefaultKeyMap(), cfg.TickRate),
		fixedSeed:   fixed,
		screenshots: true,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if m.screenshots {
			m.saveScreenshot()
		}
		return m, nil
	}

	switch m.input.Key(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The world is independent of the screen; only the size check changes.
	// A running game restarts so the minimum-size check is re-evaluated.
	if !m.gameState.GameOver && m.gameState.Score == 0 {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	in := m.input.Next()
	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.input.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Runs without score are skipped.
func (m *GameModel) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	rec := storage.RunRecord{
		GameID: m.game.ID(),
		Player: m.player,
		Seed:   m.config.Seed,
		Score:  m.gameState.Score,
		Won:    m.gameState.Won,
	}
	if s, ok := m.game.(summarizer); ok {
		sum := s.Summary()
		rec.Seed = sum.Seed
		rec.Height = sum.Height
		rec.Ticks = sum.Ticks
		rec.Enemies = sum.Enemies
		rec.Pickups = sum.Pickups
	}

	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".skyhop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the given game. It
// returns when the player quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewGameModel(game, store, cfg, player)

	p := tea.NewProgram(
		&standalone{GameModel: model},
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// standalone quits the program when the game asks to go back.
type standalone struct {
	GameModel
}

func (s *standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		s.GameModel = gm
	}
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
