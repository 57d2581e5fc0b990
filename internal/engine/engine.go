// Package engine implements the interactive selection core: the input buffer,
// navigation state, and the per-keystroke transition table that ties the
// keybind table and the fuzzy filter together.
//
// The engine is single-threaded and synchronous. It processes exactly one key
// event at a time to completion; re-ranking happens inside the same step. The
// caller (the bubbletea adapter) owns the event source and the renderer.
package engine

import (
	"github.com/oakwood-commons/mx/internal/config"
	"github.com/oakwood-commons/mx/internal/filter"
	"github.com/oakwood-commons/mx/internal/keybind"
)

// Options tune engine behavior at construction time.
type Options struct {
	// HideUnmatched removes non-matching entries from the displayed list
	// instead of keeping them visible (dimmed) below the matches.
	HideUnmatched bool

	// Rows is the initial visible window height in entry rows. The renderer
	// updates it on resize via SetRows.
	Rows int
}

// Outcome is the result of handling one key event. When Done is false the
// View is the refreshed projection to render; when Done is true the engine
// has reached its terminal state and, if Submitted, Command carries the
// selected entry's value.
type Outcome struct {
	Done      bool
	Submitted bool
	Command   string
	View      View
}

// Engine owns the launcher's mutable interaction state. It is not safe for
// concurrent use; the event loop feeds it one event at a time.
type Engine struct {
	menus     []config.Menu
	menuNames []string
	table     *keybind.Table

	hideUnmatched bool

	menuIdx  int
	input    []rune
	cursor   int // rune index into input, 0..len
	entryIdx int // index among matching ranked entries
	scroll   int // first visible rank index
	rows     int

	ranked  []filter.Ranked
	matches int

	done bool
}

// New builds an engine over the normalized menu sequence. The menu slice and
// keybind table are treated as immutable for the engine's lifetime.
func New(menus []config.Menu, table *keybind.Table, opts Options) *Engine {
	names := make([]string, len(menus))
	for i, m := range menus {
		names[i] = m.Name
	}
	e := &Engine{
		menus:         menus,
		menuNames:     names,
		table:         table,
		hideUnmatched: opts.HideUnmatched,
		rows:          max(opts.Rows, 0),
	}
	e.refilter()
	return e
}

// SetRows updates the visible window height supplied by the renderer and
// keeps the active entry inside the window.
func (e *Engine) SetRows(rows int) {
	e.rows = max(rows, 0)
	e.adjustScroll()
}

// HandleKey applies one raw key event to the engine state. Unresolved chords
// that carry printable text insert it at the input cursor; anything else is a
// silent no-op. After the terminal state is reached further events are
// ignored.
func (e *Engine) HandleKey(ev keybind.Event) Outcome {
	if e.done {
		return Outcome{Done: true}
	}

	cmd, ok := e.table.Resolve(ev.Chord)
	if !ok {
		if ev.Text != "" {
			e.insert(ev.Text)
		}
		return e.next()
	}

	switch cmd {
	case keybind.CmdExit:
		e.done = true
		return Outcome{Done: true}

	case keybind.CmdSubmit:
		if e.matches == 0 {
			// Nothing to confirm: never submit a stale, unmatched selection.
			return e.next()
		}
		e.done = true
		return Outcome{
			Done:      true,
			Submitted: true,
			Command:   e.ranked[e.entryIdx].Entry.Value,
		}

	case keybind.CmdClear:
		e.input = e.input[:0]
		e.cursor = 0
		e.refilter()

	case keybind.CmdDeleteBack:
		if e.cursor > 0 {
			e.input = append(e.input[:e.cursor-1], e.input[e.cursor:]...)
			e.cursor--
			e.refilter()
		}

	case keybind.CmdDeleteNext:
		if e.cursor < len(e.input) {
			e.input = append(e.input[:e.cursor], e.input[e.cursor+1:]...)
			e.refilter()
		}

	case keybind.CmdInputBack:
		if e.cursor > 0 {
			e.cursor--
		}

	case keybind.CmdInputNext:
		if e.cursor < len(e.input) {
			e.cursor++
		}

	case keybind.CmdEntryNext:
		if e.matches > 0 && e.entryIdx < e.matches-1 {
			e.entryIdx++
			e.adjustScroll()
		}

	case keybind.CmdEntryBack:
		if e.matches > 0 && e.entryIdx > 0 {
			e.entryIdx--
			e.adjustScroll()
		}

	case keybind.CmdMenuNext:
		e.switchMenu(e.menuIdx + 1)

	case keybind.CmdMenuBack:
		e.switchMenu(e.menuIdx - 1)
	}

	return e.next()
}

// insert places printable text at the input cursor and re-runs the filter.
func (e *Engine) insert(text string) {
	runes := []rune(text)
	e.input = append(e.input[:e.cursor], append(runes, e.input[e.cursor:]...)...)
	e.cursor += len(runes)
	e.refilter()
}

// switchMenu clamps to the menu bounds (no wraparound) and, on an actual
// change, resets the filter state: input, entry cursor, and scroll never leak
// across menus.
func (e *Engine) switchMenu(idx int) {
	idx = min(max(idx, 0), len(e.menus)-1)
	if idx == e.menuIdx {
		return
	}
	e.menuIdx = idx
	e.input = e.input[:0]
	e.cursor = 0
	e.refilter()
}

// refilter re-ranks the active menu's entries against the input buffer and
// resets the entry cursor and scroll window.
func (e *Engine) refilter() {
	e.ranked = filter.Rank(e.menus[e.menuIdx].Entries, string(e.input))
	e.matches = filter.MatchCount(e.ranked)
	e.entryIdx = 0
	e.scroll = 0
}

// displayed returns the list the renderer sees: all ranked entries, or only
// the matching prefix when hide_unmatched is set.
func (e *Engine) displayed() []filter.Ranked {
	if e.hideUnmatched {
		return e.ranked[:e.matches]
	}
	return e.ranked
}

// adjustScroll keeps the active entry within the visible window and the
// window within the displayed list.
func (e *Engine) adjustScroll() {
	if e.rows <= 0 {
		e.scroll = 0
		return
	}
	if e.entryIdx < e.scroll {
		e.scroll = e.entryIdx
	}
	if e.entryIdx >= e.scroll+e.rows {
		e.scroll = e.entryIdx - e.rows + 1
	}
	if maxScroll := max(len(e.displayed())-e.rows, 0); e.scroll > maxScroll {
		e.scroll = maxScroll
	}
}

func (e *Engine) next() Outcome {
	return Outcome{View: e.View()}
}
