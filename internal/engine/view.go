package engine

import "github.com/oakwood-commons/mx/internal/filter"

// View is the read-only projection handed to the renderer each cycle.
type View struct {
	// MenuNames lists every menu in display order; ActiveMenu indexes it.
	MenuNames  []string
	ActiveMenu int

	// Prompt is the active menu's prompt string.
	Prompt string

	// Query is the input buffer's contents; Cursor its edit position in runes.
	Query  string
	Cursor int

	// Entries is the visible window of the ranked list, already scrolled.
	// ActiveEntry indexes into Entries (-1 when no entry is highlighted).
	Entries     []filter.Ranked
	ActiveEntry int

	// Overflow counts entries ranked below the visible window.
	Overflow int

	// Matches and Total describe the full ranked list for the active menu.
	Matches int
	Total   int
}

// View builds the current projection. The returned value shares the ranked
// entry slice with the engine; the renderer must treat it as read-only.
func (e *Engine) View() View {
	displayed := e.displayed()

	start := min(e.scroll, len(displayed))
	end := len(displayed)
	if e.rows > 0 && start+e.rows < end {
		end = start + e.rows
	}

	active := -1
	if e.matches > 0 && e.entryIdx >= start && e.entryIdx < end {
		active = e.entryIdx - start
	}

	return View{
		MenuNames:   e.menuNames,
		ActiveMenu:  e.menuIdx,
		Prompt:      e.menus[e.menuIdx].Prompt,
		Query:       string(e.input),
		Cursor:      e.cursor,
		Entries:     displayed[start:end],
		ActiveEntry: active,
		Overflow:    len(displayed) - end,
		Matches:     e.matches,
		Total:       len(e.ranked),
	}
}
