package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
)

// PlaybackKeyMap defines the key bindings of the replay player.
type PlaybackKeyMap struct {
	Pause  key.Binding
	Rewind key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlaybackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Rewind, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlaybackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPlaybackKeyMap returns default key bindings.
func DefaultPlaybackKeyMap() PlaybackKeyMap {
	return PlaybackKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rewind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PlaybackModel shows recorded frames one per tick.
type PlaybackModel struct {
	frames   []runner.Snapshot
	index    int
	paused   bool
	screen   *core.Screen
	scale    runner.Scale
	keys     PlaybackKeyMap
	help     help.Model
	tickRate int
	quitting bool
}

// NewPlaybackModel creates a player for frames.
func NewPlaybackModel(frames []runner.Snapshot, cfg core.RuntimeConfig) PlaybackModel {
	return PlaybackModel{
		frames:   frames,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusLines, 0)),
		scale:    runner.DefaultScale,
		keys:     DefaultPlaybackKeyMap(),
		help:     help.New(),
		tickRate: cfg.TickRate,
	}
}

// Init starts the playback ticks.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages for the player.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Rewind):
			m.index = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-statusLines, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused && m.index < len(m.frames)-1 {
			m.index++
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// Frame returns the index of the frame on display.
func (m PlaybackModel) Frame() int {
	return m.index
}

// View renders the current frame.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.frames) == 0 {
		return "Replay has no frames.\n"
	}

	m.frames[m.index].Render(m.screen, m.scale)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	status := fmt.Sprintf("Frame %d/%d  %s", m.index+1, len(m.frames), m.help.View(m.keys))
	if m.paused {
		status = "PAUSED  " + status
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(status))

	return b.String()
}

// RunPlayback plays frames in the terminal until the user quits.
func RunPlayback(frames []runner.Snapshot, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewPlaybackModel(frames, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
