// Package ui adapts the selection engine to bubbletea: it translates raw key
// messages into engine events and paints the engine's view projection with
// the configured theme. All interaction rules live in the engine; this
// package is a thin platform layer.
package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/mx/internal/engine"
	"github.com/oakwood-commons/mx/internal/keybind"
)

// Rows reserved around the entry list: the menu tab line, two separator
// lines, the prompt/input line, the overflow line, and the help footer.
const reservedRows = 6

// Model is the bubbletea model wrapping one engine session.
type Model struct {
	eng   *engine.Engine
	theme Theme

	view     engine.View
	helpLine string

	width  int
	height int

	done      bool
	submitted bool
	command   string
}

// New builds the UI model around an engine. The keybind table is only used to
// label the help footer; resolution happens inside the engine.
func New(eng *engine.Engine, theme Theme, table *keybind.Table) *Model {
	return &Model{
		eng:      eng,
		theme:    theme,
		view:     eng.View(),
		helpLine: renderHelp(table),
		width:    80,
		height:   24,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eng.SetRows(max(msg.Height-reservedRows, 0))
		m.view = m.eng.View()
		return m, nil

	case tea.KeyPressMsg:
		ev, ok := eventFromKey(msg)
		if !ok {
			// Unrecognized key codes are ignored, never fatal.
			return m, nil
		}
		out := m.eng.HandleKey(ev)
		if out.Done {
			m.done = true
			m.submitted = out.Submitted
			m.command = out.Command
			return m, tea.Quit
		}
		m.view = out.View
		return m, nil
	}
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	// Needed for reliable modifier detection (e.g. shift+tab).
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// Selection returns the submitted command string, if any. Valid after the
// program has finished.
func (m *Model) Selection() (string, bool) {
	return m.command, m.submitted
}
