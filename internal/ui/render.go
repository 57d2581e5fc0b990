package ui

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/mx/internal/engine"
	"github.com/oakwood-commons/mx/internal/filter"
)

// Spacing between an entry's name and its right-aligned value, and between
// menu tabs.
const spacing = 2

// render paints the whole frame from the engine's view projection:
//
//	menu tab line
//	(blank)
//	prompt + input with cursor
//	(blank)
//	entry rows, padded to the window height
//	overflow line
//	help footer
func (m *Model) render() string {
	v := m.view

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTabs(v), "", m.renderInput(v), "")

	for i, r := range v.Entries {
		lines = append(lines, m.renderEntry(r, i == v.ActiveEntry))
	}
	rows := max(m.height-reservedRows, 0)
	for len(lines) < 4+rows {
		lines = append(lines, "")
	}

	if v.Overflow > 0 {
		lines = append(lines, m.theme.Overflow.Render(fmt.Sprintf("+%d more", v.Overflow)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.helpLine)

	return strings.Join(lines, "\n")
}

func (m *Model) renderTabs(v engine.View) string {
	tabs := make([]string, len(v.MenuNames))
	for i, name := range v.MenuNames {
		style := m.theme.MenuName
		if i == v.ActiveMenu {
			style = m.theme.MenuCursor
		}
		tabs[i] = style.Render(name)
	}
	return strings.Join(tabs, strings.Repeat(" ", spacing))
}

// renderInput draws the prompt and the filter text with a block cursor at the
// edit position.
func (m *Model) renderInput(v engine.View) string {
	runes := []rune(v.Query)
	cur := min(max(v.Cursor, 0), len(runes))

	cursorStyle := m.theme.Input.lip.Reverse(true)
	at := " "
	rest := ""
	if cur < len(runes) {
		at = string(runes[cur])
		rest = m.theme.Input.Render(string(runes[cur+1:]))
	}

	return m.theme.Prompt.Render(v.Prompt) + " " +
		m.theme.Input.Render(string(runes[:cur])) +
		cursorStyle.Render(at) +
		rest
}

// renderEntry draws one row: the entry name on the left with match spans
// highlighted, the value right-aligned and truncated to the terminal width.
func (m *Model) renderEntry(r filter.Ranked, selected bool) string {
	name := m.renderName(r, selected)
	nameW := runewidth.StringWidth(r.Entry.Name)

	valueStyle := m.theme.EntryValue
	if !r.Matched {
		valueStyle = m.theme.EntryHidden
	}

	value := r.Entry.Value
	valueW := runewidth.StringWidth(value)
	avail := m.width - nameW - spacing

	switch {
	case avail >= valueW:
		pad := m.width - nameW - valueW
		return name + strings.Repeat(" ", pad) + valueStyle.Render(value)
	case avail >= 4:
		// At least one value character plus the truncation marker.
		trunc := runewidth.Truncate(value, avail-1, "")
		pad := m.width - nameW - runewidth.StringWidth(trunc) - 1
		return name + strings.Repeat(" ", pad) +
			valueStyle.Render(trunc) + m.theme.Overflow.Render("+")
	default:
		return name
	}
}

// renderName styles the entry label, highlighting matched spans. Spans are
// byte ranges into the name, non-overlapping and in order.
func (m *Model) renderName(r filter.Ranked, selected bool) string {
	base := m.theme.EntryName
	match := m.theme.EntryMatch
	if selected {
		base = m.theme.EntryCursor
		match = m.theme.EntryCursorMatch
	}
	if !r.Matched {
		base = m.theme.EntryHidden
	}

	name := r.Entry.Name
	if len(r.Spans) == 0 {
		return base.Render(name)
	}

	var b strings.Builder
	p := 0
	for _, s := range r.Spans {
		if s.Start > p {
			b.WriteString(base.Render(name[p:s.Start]))
		}
		b.WriteString(match.Render(name[s.Start:s.End]))
		p = s.End
	}
	if p < len(name) {
		b.WriteString(base.Render(name[p:]))
	}
	return b.String()
}
