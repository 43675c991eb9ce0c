package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hopper/internal/storage"
)

// maxJournals is the number of journals the browser loads.
const maxJournals = 100

// JournalsKeyMap defines the key bindings for the replay browser.
type JournalsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Delete, k.Quit},
	}
}

// DefaultJournalsKeyMap returns default key bindings.
func DefaultJournalsKeyMap() JournalsKeyMap {
	return JournalsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalsModel is the Bubble Tea model for the replay browser.
type JournalsModel struct {
	store    *storage.Store
	journals []storage.JournalInfo
	err      error
	table    table.Model
	help     help.Model
	keys     JournalsKeyMap
	width    int
	height   int
	selected string
	quitting bool
}

// NewJournalsModel creates a browser over the journals in store.
func NewJournalsModel(store *storage.Store, width, height int) JournalsModel {
	m := JournalsModel{
		store:  store,
		keys:   DefaultJournalsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *JournalsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Ticks", Width: 8},
		{Title: "Size", Width: 10},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("#8b0000")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the journal list and refreshes the table rows.
func (m *JournalsModel) load() {
	m.journals, m.err = m.store.ListJournals(maxJournals)

	rows := make([]table.Row, len(m.journals))
	for i, j := range m.journals {
		rows[i] = JournalRow(j)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// JournalRow formats one journal summary as a table row.
func JournalRow(j storage.JournalInfo) table.Row {
	return table.Row{
		j.ID,
		fmt.Sprintf("%d", j.Ticks),
		fmt.Sprintf("%.0fx%.0f", j.Width, j.Height),
		j.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

// Init initializes the browser.
func (m JournalsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m JournalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if row := m.table.SelectedRow(); row != nil {
				m.selected = row[0]
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if row := m.table.SelectedRow(); row != nil {
				if err := m.store.DeleteJournal(row[0]); err != nil {
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m JournalsModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(tableStyle.Render("Error: " + m.err.Error()))
	case len(m.journals) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nPlay a run to record one!")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the ID of the journal picked with Select, if any.
func (m JournalsModel) Selected() string {
	return m.selected
}

// RunJournals runs the replay browser and returns the selected journal ID,
// or "" if the user quit.
func RunJournals(store *storage.Store, width, height int) (string, error) {
	p := tea.NewProgram(
		NewJournalsModel(store, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(JournalsModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
