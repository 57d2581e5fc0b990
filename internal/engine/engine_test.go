package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/mx/internal/config"
	"github.com/oakwood-commons/mx/internal/keybind"
)

func testMenus() []config.Menu {
	return []config.Menu{
		{
			Name:   "power",
			Prompt: "power>",
			Entries: []config.Entry{
				{Name: "shutdown", Value: "systemctl poweroff"},
				{Name: "reboot", Value: "systemctl reboot"},
				{Name: "suspend", Value: "systemctl suspend"},
				{Name: "lock", Value: "loginctl lock-session"},
			},
		},
		{
			Name:   "apps",
			Prompt: "run>",
			Entries: []config.Entry{
				{Name: "firefox", Value: "firefox"},
				{Name: "files", Value: "nautilus"},
			},
		},
	}
}

func testEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	table, err := keybind.NewTable(keybind.DefaultBindings())
	require.NoError(t, err)
	return New(testMenus(), table, opts)
}

func press(e *Engine, chord keybind.Chord) Outcome {
	return e.HandleKey(keybind.Event{Chord: chord})
}

func typeText(e *Engine, text string) Outcome {
	var out Outcome
	for _, r := range text {
		out = e.HandleKey(keybind.Event{
			Chord: keybind.Chord{Key: string(r)},
			Text:  string(r),
		})
	}
	return out
}

func TestInitialView(t *testing.T) {
	e := testEngine(t, Options{})

	v := e.View()
	assert.Equal(t, []string{"power", "apps"}, v.MenuNames)
	assert.Equal(t, 0, v.ActiveMenu)
	assert.Equal(t, "power>", v.Prompt)
	assert.Empty(t, v.Query)
	assert.Equal(t, 0, v.Cursor)
	require.Len(t, v.Entries, 4)
	assert.Equal(t, "shutdown", v.Entries[0].Entry.Name)
	assert.Equal(t, "lock", v.Entries[3].Entry.Name)
	assert.Equal(t, 0, v.ActiveEntry)
	assert.Equal(t, 4, v.Matches)
	assert.Equal(t, 4, v.Total)
	assert.Equal(t, 0, v.Overflow)
}

func TestTypingFiltersAndResetsCursor(t *testing.T) {
	e := testEngine(t, Options{})

	press(e, keybind.Chord{Key: "down"})
	out := typeText(e, "re")

	v := out.View
	assert.Equal(t, "re", v.Query)
	assert.Equal(t, 2, v.Cursor)
	assert.Equal(t, "reboot", v.Entries[0].Entry.Name)
	assert.Equal(t, 0, v.ActiveEntry, "entry cursor resets on every edit")
	assert.Equal(t, 1, v.Matches)
	assert.Equal(t, 4, v.Total)
}

func TestSubmitReturnsActiveEntryValue(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "re")
	out := press(e, keybind.Chord{Key: "enter"})

	assert.True(t, out.Done)
	assert.True(t, out.Submitted)
	assert.Equal(t, "systemctl reboot", out.Command)
}

func TestSubmitAfterNavigation(t *testing.T) {
	e := testEngine(t, Options{})

	press(e, keybind.Chord{Key: "down"})
	press(e, keybind.Chord{Key: "down"})
	out := press(e, keybind.Chord{Key: "enter"})

	assert.True(t, out.Submitted)
	assert.Equal(t, "systemctl suspend", out.Command)
}

func TestSubmitWithNoMatchesIsNoop(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "zzz")
	out := press(e, keybind.Chord{Key: "enter"})

	assert.False(t, out.Done)
	assert.False(t, out.Submitted)
	assert.Equal(t, 0, out.View.Matches)
}

func TestExitTerminatesWithoutSubmission(t *testing.T) {
	e := testEngine(t, Options{})

	out := press(e, keybind.Chord{Key: "escape"})
	assert.True(t, out.Done)
	assert.False(t, out.Submitted)

	// Terminal state is sticky.
	out = press(e, keybind.Chord{Key: "enter"})
	assert.True(t, out.Done)
	assert.False(t, out.Submitted)
}

func TestEntryNavigationClamps(t *testing.T) {
	e := testEngine(t, Options{})

	out := press(e, keybind.Chord{Key: "up"})
	assert.Equal(t, 0, out.View.ActiveEntry, "no wraparound at the top")

	for i := 0; i < 10; i++ {
		out = press(e, keybind.Chord{Key: "down"})
	}
	assert.Equal(t, 3, out.View.ActiveEntry, "no wraparound at the bottom")
}

func TestEntryNavigationStopsAtLastMatch(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "s") // shutdown, suspend, lock all contain s
	v := e.View()
	matches := v.Matches
	require.Greater(t, matches, 1)
	require.Less(t, matches, v.Total)

	var out Outcome
	for i := 0; i < 10; i++ {
		out = press(e, keybind.Chord{Key: "down"})
	}
	assert.Equal(t, matches-1, out.View.ActiveEntry,
		"cursor never lands on an unmatched entry")
}

func TestMenuSwitchClampsAndResetsInput(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "re")
	out := press(e, keybind.Chord{Key: "tab"})
	v := out.View
	assert.Equal(t, 1, v.ActiveMenu)
	assert.Equal(t, "run>", v.Prompt)
	assert.Empty(t, v.Query, "input never leaks across menus")
	assert.Equal(t, 2, v.Total)

	// Already at the last menu: clamped, and the input survives.
	typeText(e, "fi")
	out = press(e, keybind.Chord{Key: "tab"})
	assert.Equal(t, 1, out.View.ActiveMenu)
	assert.Equal(t, "fi", out.View.Query)

	out = press(e, keybind.Chord{Mod: keybind.ModShift, Key: "tab"})
	assert.Equal(t, 0, out.View.ActiveMenu)
	assert.Empty(t, out.View.Query)

	out = press(e, keybind.Chord{Mod: keybind.ModShift, Key: "tab"})
	assert.Equal(t, 0, out.View.ActiveMenu, "no wraparound at the first menu")
}

func TestClearEmptiesInput(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "reb")
	out := press(e, keybind.Chord{Mod: keybind.ModCtrl, Key: "u"})

	assert.Empty(t, out.View.Query)
	assert.Equal(t, 0, out.View.Cursor)
	assert.Equal(t, 4, out.View.Matches)
	assert.Equal(t, "shutdown", out.View.Entries[0].Entry.Name)
}

func TestInputEditing(t *testing.T) {
	e := testEngine(t, Options{})

	typeText(e, "lck")
	press(e, keybind.Chord{Key: "left"})
	press(e, keybind.Chord{Key: "left"})
	out := typeText(e, "o")
	assert.Equal(t, "lock", out.View.Query)
	assert.Equal(t, 2, out.View.Cursor)

	out = press(e, keybind.Chord{Key: "delete"})
	assert.Equal(t, "lok", out.View.Query)

	out = press(e, keybind.Chord{Key: "backspace"})
	assert.Equal(t, "lk", out.View.Query)
	assert.Equal(t, 1, out.View.Cursor)
}

func TestInputCursorClamps(t *testing.T) {
	e := testEngine(t, Options{})

	out := press(e, keybind.Chord{Key: "left"})
	assert.Equal(t, 0, out.View.Cursor)
	out = press(e, keybind.Chord{Key: "backspace"})
	assert.Empty(t, out.View.Query)

	typeText(e, "ab")
	out = press(e, keybind.Chord{Key: "right"})
	assert.Equal(t, 2, out.View.Cursor)
	out = press(e, keybind.Chord{Key: "delete"})
	assert.Equal(t, "ab", out.View.Query)
}

func TestScrollWindowFollowsCursor(t *testing.T) {
	e := testEngine(t, Options{Rows: 2})

	v := e.View()
	require.Len(t, v.Entries, 2)
	assert.Equal(t, "shutdown", v.Entries[0].Entry.Name)
	assert.Equal(t, 2, v.Overflow)

	press(e, keybind.Chord{Key: "down"})
	out := press(e, keybind.Chord{Key: "down"})
	v = out.View
	require.Len(t, v.Entries, 2)
	assert.Equal(t, "reboot", v.Entries[0].Entry.Name)
	assert.Equal(t, "suspend", v.Entries[1].Entry.Name)
	assert.Equal(t, 1, v.ActiveEntry)
	assert.Equal(t, 1, v.Overflow)

	out = press(e, keybind.Chord{Key: "down"})
	assert.Equal(t, "lock", out.View.Entries[1].Entry.Name)
	assert.Equal(t, 0, out.View.Overflow)

	// Back up: the window scrolls to keep the cursor visible.
	for i := 0; i < 3; i++ {
		out = press(e, keybind.Chord{Key: "up"})
	}
	assert.Equal(t, "shutdown", out.View.Entries[0].Entry.Name)
	assert.Equal(t, 0, out.View.ActiveEntry)
}

func TestSetRowsReclampsScroll(t *testing.T) {
	e := testEngine(t, Options{Rows: 2})

	for i := 0; i < 3; i++ {
		press(e, keybind.Chord{Key: "down"})
	}
	e.SetRows(10)
	v := e.View()
	assert.Len(t, v.Entries, 4)
	assert.Equal(t, 3, v.ActiveEntry)
	assert.Equal(t, 0, v.Overflow)
}

func TestHideUnmatched(t *testing.T) {
	e := testEngine(t, Options{HideUnmatched: true})

	out := typeText(e, "re")
	v := out.View
	require.Len(t, v.Entries, 1)
	assert.Equal(t, "reboot", v.Entries[0].Entry.Name)
	assert.Equal(t, 4, v.Total)
}

func TestUnmatchedEntriesStayVisibleByDefault(t *testing.T) {
	e := testEngine(t, Options{})

	out := typeText(e, "re")
	v := out.View
	require.Len(t, v.Entries, 4)
	assert.True(t, v.Entries[0].Matched)
	assert.False(t, v.Entries[3].Matched)
}

func TestNoMatchesNoActiveEntry(t *testing.T) {
	e := testEngine(t, Options{})

	out := typeText(e, "zzz")
	assert.Equal(t, -1, out.View.ActiveEntry)
	assert.Equal(t, 0, out.View.Matches)

	// Navigation with no matches is inert.
	out = press(e, keybind.Chord{Key: "down"})
	assert.Equal(t, -1, out.View.ActiveEntry)
}

func TestUnboundChordWithoutTextIgnored(t *testing.T) {
	e := testEngine(t, Options{})

	out := press(e, keybind.Chord{Mod: keybind.ModCtrl, Key: "g"})
	assert.False(t, out.Done)
	assert.Empty(t, out.View.Query)
}
