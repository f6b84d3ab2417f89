package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/core"
	_ "github.com/vovakirdan/skyhop/internal/games/skyhop"
	"github.com/vovakirdan/skyhop/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInputMapperHoldsAxis(t *testing.T) {
	m := NewInputMapper(DefaultKeyMap(), 60)

	if a := m.Key(tea.KeyMsg{Type: tea.KeyRight}); a != core.ActionNone {
		t.Errorf("steering returned action %v", a)
	}

	hold := 60 / axisHoldDivisor
	for i := range hold {
		if in := m.Next(); in.Axis != 1 {
			t.Fatalf("tick %d: axis = %v, want 1", i, in.Axis)
		}
	}
	if in := m.Next(); in.Axis != 0 {
		t.Errorf("axis after hold = %v, want 0", in.Axis)
	}
}

func TestInputMapperActionsLastOneTick(t *testing.T) {
	m := NewInputMapper(DefaultKeyMap(), 60)

	if a := m.Key(runeKey('x')); a != core.ActionAttack {
		t.Fatalf("x mapped to %v, want attack", a)
	}
	m.Key(tea.KeyMsg{Type: tea.KeyLeft})

	first := m.Next()
	if !first.Has(core.ActionAttack) || first.Axis != -1 {
		t.Errorf("first frame = %+v", first)
	}
	second := m.Next()
	if second.Has(core.ActionAttack) {
		t.Error("attack repeated on the next frame")
	}
	if second.Axis != -1 {
		t.Errorf("held axis = %v, want -1", second.Axis)
	}

	m.Reset()
	if in := m.Next(); in.Axis != 0 || len(in.Actions) != 0 {
		t.Errorf("frame after reset = %+v", in)
	}
}

func TestInputMapperQuit(t *testing.T) {
	m := NewInputMapper(DefaultKeyMap(), 60)
	if a := m.Key(tea.KeyMsg{Type: tea.KeyCtrlC}); a != core.ActionQuit {
		t.Errorf("ctrl+c mapped to %v", a)
	}
	if a := m.Key(runeKey('q')); a != core.ActionQuit {
		t.Errorf("q mapped to %v", a)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey('k'), MenuActionUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"q", runeKey('q'), MenuActionQuit},
		{"unbound", runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapKeyToMenuAction(keys, tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return menu
}

func TestMenuSelectsGame(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	if len(m.items) != 3 {
		t.Fatalf("menu has %d items, want both modes and high scores", len(m.items))
	}

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res.GameID != "skyhop_endless" || res.Quit || res.WantsScoreboard {
		t.Errorf("Result() = %+v", res)
	}
}

func TestMenuHighScoresEntry(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	for range len(m.items) {
		m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Result().WantsScoreboard {
		t.Error("last entry should open the scoreboard")
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m = sendMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() size = %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestEmbeddedMenuDoesNotQuitProgram(t *testing.T) {
	m := newEmbeddedMenu(nil, core.DefaultConfig())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("embedded menu returned a command on select")
	}
}

// endingGame finishes on its first step.
type endingGame struct {
	steps int
}

func (g *endingGame) ID() string               { return "ending" }
func (g *endingGame) Title() string            { return "Ending" }
func (g *endingGame) Reset(core.RuntimeConfig) { g.steps = 0 }
func (g *endingGame) Render(*core.Screen)      {}

func (g *endingGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *endingGame) State() core.GameState {
	return core.GameState{Score: 42, GameOver: g.steps > 0, Won: g.steps > 0}
}

func (g *endingGame) Summary() core.RunSummary {
	return core.RunSummary{Seed: 9, Height: 12.5, Ticks: g.steps, Pickups: 1, Won: true}
}

func sendGame(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.DefaultConfig()
	cfg.Seed = 9
	m := NewGameModel(&endingGame{}, store, cfg, "ada")
	m.Init()

	m = sendGame(t, m, TickMsg{})
	m = sendGame(t, m, TickMsg{})

	runs, err := store.TopRuns("ending", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Player != "ada" || r.Score != 42 || r.Height != 12.5 || r.Pickups != 1 || !r.Won {
		t.Errorf("saved run = %+v", r)
	}

	// Back is accepted once the run is over
	m = sendGame(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should return to the menu")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	m := NewGameModel(&endingGame{}, nil, cfg, "")

	m = sendGame(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc during play should be ignored")
	}

	m = sendGame(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hop")
	s.SetColored(0, 1, '@', core.ColorYellow)

	out := RenderScreen(s)
	if !strings.Contains(out, "hop") || !strings.Contains(out, "@") {
		t.Errorf("RenderScreen() = %q", out)
	}
}

func TestScoreboardLoadsRunsPerMode(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.RunRecord{
		{GameID: "skyhop", Score: 120, Height: 12, Won: true},
		{GameID: "skyhop", Score: 80, Height: 8},
		{GameID: "skyhop_endless", Score: 300, Height: 30},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.modes[m.current].ID != "skyhop" || len(m.runs) != 2 {
		t.Fatalf("first tab %q has %d runs", m.modes[m.current].ID, len(m.runs))
	}
	if m.runs[0].Score != 120 {
		t.Errorf("best run score = %d, want 120", m.runs[0].Score)
	}
	if !strings.Contains(m.statsLine(), "1 summits") {
		t.Errorf("statsLine() = %q", m.statsLine())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.modes[m.current].ID != "skyhop_endless" || len(m.runs) != 1 {
		t.Errorf("after tab: %q with %d runs", m.modes[m.current].ID, len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	if m.modes[m.current].ID != "skyhop" {
		t.Errorf("tabs should wrap, got %q", m.modes[m.current].ID)
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	m.embedded = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back")
	}
	if cmd != nil {
		t.Error("embedded scoreboard returned a command")
	}
}

func TestRunRows(t *testing.T) {
	rows := runRows([]storage.RunRecord{{Score: 5, Height: 2.34, Won: true}})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	row := rows[0]
	if row[0] != "#1" || row[1] != "5" || row[2] != "2.3" || row[3] != "-" || row[4] != "summit" {
		t.Errorf("row = %v", row)
	}
}
