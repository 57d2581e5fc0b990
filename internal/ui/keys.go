package ui

import (
	"unicode"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/mx/internal/keybind"
)

// namedCodes maps bubbletea key codes to the canonical chord key names the
// keybind table matches on.
var namedCodes = map[rune]string{
	tea.KeyEnter:     "enter",
	tea.KeyTab:       "tab",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyInsert:    "insert",
	tea.KeyEscape:    "escape",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pageup",
	tea.KeyPgDown:    "pagedown",
	tea.KeySpace:     "space",
	tea.KeyF1:        "f1",
	tea.KeyF2:        "f2",
	tea.KeyF3:        "f3",
	tea.KeyF4:        "f4",
	tea.KeyF5:        "f5",
	tea.KeyF6:        "f6",
	tea.KeyF7:        "f7",
	tea.KeyF8:        "f8",
	tea.KeyF9:        "f9",
	tea.KeyF10:       "f10",
	tea.KeyF11:       "f11",
	tea.KeyF12:       "f12",
}

// eventFromKey translates a bubbletea key press into the engine's raw event.
// Unrecognized codes or modifier combinations report ok=false and are
// silently dropped by the caller, never treated as fatal.
func eventFromKey(k tea.KeyPressMsg) (keybind.Event, bool) {
	var mod keybind.Mod
	if k.Mod&tea.ModShift != 0 {
		mod |= keybind.ModShift
	}
	if k.Mod&tea.ModCtrl != 0 {
		mod |= keybind.ModCtrl
	}
	if k.Mod&tea.ModAlt != 0 {
		mod |= keybind.ModAlt
	}
	if k.Mod&^(tea.ModShift|tea.ModCtrl|tea.ModAlt) != 0 {
		return keybind.Event{}, false
	}

	var key string
	if name, ok := namedCodes[k.Code]; ok {
		key = name
	} else if unicode.IsPrint(k.Code) {
		key = string(unicode.ToLower(k.Code))
	} else {
		return keybind.Event{}, false
	}

	ev := keybind.Event{Chord: keybind.Chord{Mod: mod, Key: key}}
	if k.Text != "" && mod&^keybind.ModShift == 0 {
		ev.Text = k.Text
		// Shifted printables already carry their final text; keep the chord
		// in its unshifted form so "R" and "shift+r" match the same binding.
		ev.Chord.Mod &^= keybind.ModShift
	}
	return ev, true
}
