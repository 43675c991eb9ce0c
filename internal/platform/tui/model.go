package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
)

// statusLines is the number of terminal rows below the playfield.
const statusLines = 1

// Viewport returns the playfield size for a terminal of cols x rows.
func Viewport(cols, rows int, sc runner.Scale) (width, height float64) {
	return float64(cols) * sc.X, float64(max(rows-statusLines, 0)) * sc.Y
}

// FitViewport is Viewport raised to the smallest playfield cfg can run on.
// A terminal below that size is reported by the model on its first resize.
func FitViewport(cfg config.RunnerConfig, cols, rows int) (width, height float64) {
	width, height = Viewport(cols, rows, runner.DefaultScale)
	return max(width, runner.DefaultScale.X), max(height, cfg.Player.GroundOffset+2*cfg.Player.Radius)
}

// Model is the Bubble Tea model that hosts one game session.
type Model struct {
	ctrl     runner.Controller
	screen   *core.Screen
	scale    runner.Scale
	keys     KeyMap
	help     help.Model
	tickRate int
	now      func() time.Time

	ticking  bool      // A tick command is in flight
	lastTick time.Time // Time of the previous tick, for dt
	best     int       // Best score of this process, never persisted
	tooSmall error     // Last rejected resize
	quitting bool
}

// NewModel creates a model driving ctrl. The screen is sized from cfg and
// must match the controller's viewport at DefaultScale.
func NewModel(ctrl runner.Controller, cfg core.RuntimeConfig) Model {
	return Model{
		ctrl:     ctrl,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusLines, 0)),
		scale:    runner.DefaultScale,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		tickRate: cfg.TickRate,
		now:      time.Now,
	}
}

// Init starts ticking if the controller is already running.
func (m Model) Init() tea.Cmd {
	return m.syncTicking()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		return m.handleAction(mouseAction(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}

	prev := m.ctrl.Snapshot().State
	runner.Dispatch(m.ctrl, a)
	m.trackBest()

	// A new run measures its first tick from now, even when a stale tick
	// of the previous run is still in flight.
	if prev != runner.StateRunning && m.ctrl.Snapshot().State == runner.StateRunning {
		m.lastTick = m.now()
	}
	return m, m.syncTicking()
}

// handleResize resizes the screen and the playfield. A running run restarts
// on the new geometry.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, max(msg.Height-statusLines, 0))
	m.help.Width = msg.Width

	w, h := Viewport(msg.Width, msg.Height, m.scale)
	m.tooSmall = m.ctrl.HandleResize(w, h)

	return m, m.syncTicking()
}

// handleTick advances the session by the real time since the last tick.
// Ticking stops once the session leaves Running.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.ctrl.Snapshot().State != runner.StateRunning {
		m.ticking = false
		return m, nil
	}

	dt := float64(t.Sub(m.lastTick)) / float64(time.Millisecond)
	m.lastTick = t
	snap := m.ctrl.Advance(dt)
	m.trackBest()

	if snap.State != runner.StateRunning {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.tickRate)
}

// syncTicking starts the tick loop when the session has entered Running
// and no tick is in flight.
func (m *Model) syncTicking() tea.Cmd {
	if m.ticking || m.ctrl.Snapshot().State != runner.StateRunning {
		return nil
	}
	m.ticking = true
	m.lastTick = m.now()
	return tickCmd(m.tickRate)
}

func (m *Model) trackBest() {
	if snap := m.ctrl.Snapshot(); snap.State == runner.StateEnded {
		m.best = max(m.best, snap.Score)
	}
}

// Best returns the best score of this model's lifetime.
func (m Model) Best() int {
	return m.best
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	if m.tooSmall != nil {
		return centerText("Terminal too small, please enlarge it", m.screen.Width()) + "\n" +
			statusStyle.Render(m.help.View(m.keys))
	}

	snap := m.ctrl.Snapshot()
	snap.Render(m.screen, m.scale)
	if snap.State == runner.StateEnded {
		m.screen.DrawTextCentered(m.screen.Height()/2+3, "R restart  Esc exit")
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	status := m.help.View(m.keys)
	if m.best > 0 {
		status = fmt.Sprintf("Best: %d  %s", m.best, status)
	}
	b.WriteString(statusStyle.Render(status))

	return b.String()
}

// Run starts a Bubble Tea program hosting ctrl and returns the final model.
func Run(ctrl runner.Controller, cfg core.RuntimeConfig) (Model, error) {
	p := tea.NewProgram(
		NewModel(ctrl, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
