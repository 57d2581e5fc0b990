// Package keybind resolves key chords to launcher commands.
//
// A chord is a set of modifiers plus exactly one non-modifier key, written in
// configuration as a plus-separated list: "ctrl+c", "shift+tab", "f5", "/".
// Key names are case-insensitive and common aliases (del, esc, ret, pgup, ...)
// resolve to the same logical key.
package keybind

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mod is a bitmask of modifier keys.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Chord is one non-modifier key plus zero or more modifiers. Chords are
// comparable and used directly as map keys.
type Chord struct {
	Mod Mod
	// Key is the canonical key name: a named key ("enter", "tab", "f5", ...)
	// or a single lowercased printable rune.
	Key string
}

// String renders the chord in configuration form, modifiers first.
func (c Chord) String() string {
	var parts []string
	if c.Mod&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if c.Mod&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if c.Mod&ModShift != 0 {
		parts = append(parts, "shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Event is a single raw key event as seen by the engine: the normalized chord
// plus the printable text the key carries, if any. Text is only set when the
// key can act as plain character input (no modifiers beyond shift).
type Event struct {
	Chord Chord
	Text  string
}

// namedKeys maps every accepted key-name spelling to its canonical name.
// Aliases share the canonical name so "delete" and "del" match by logical
// identity.
var namedKeys = map[string]string{
	"backspace": "backspace",
	"back":      "backspace",
	"enter":     "enter",
	"return":    "enter",
	"ret":       "enter",
	"left":      "left",
	"right":     "right",
	"up":        "up",
	"down":      "down",
	"home":      "home",
	"end":       "end",
	"pageup":    "pageup",
	"pgup":      "pageup",
	"pagedown":  "pagedown",
	"pgdn":      "pagedown",
	"tab":       "tab",
	"delete":    "delete",
	"del":       "delete",
	"insert":    "insert",
	"escape":    "escape",
	"esc":       "escape",
	"space":     "space",
}

// ParseChord parses a plus-separated chord string into a Chord. It fails when
// the string names no non-modifier key, more than one, or an unknown key.
func ParseChord(s string) (Chord, error) {
	var chord Chord
	haveKey := false

	for _, part := range strings.Split(s, "+") {
		part = strings.ToLower(strings.TrimSpace(part))

		switch part {
		case "shift":
			chord.Mod |= ModShift
			continue
		case "control", "ctrl":
			chord.Mod |= ModCtrl
			continue
		case "alt":
			chord.Mod |= ModAlt
			continue
		}

		key, err := parseKeyName(part)
		if err != nil {
			return Chord{}, fmt.Errorf("keybind %q: %w", s, err)
		}
		if haveKey {
			return Chord{}, fmt.Errorf("keybind %q: multiple non-modifier keys", s)
		}
		chord.Key = key
		haveKey = true
	}

	if !haveKey {
		return Chord{}, fmt.Errorf("keybind %q: missing a non-modifier key", s)
	}
	return chord, nil
}

func parseKeyName(part string) (string, error) {
	if part == "" {
		return "", fmt.Errorf("empty key name")
	}
	if canonical, ok := namedKeys[part]; ok {
		return canonical, nil
	}
	if utf8.RuneCountInString(part) == 1 {
		r, _ := utf8.DecodeRuneInString(part)
		if unicode.IsPrint(r) {
			return string(unicode.ToLower(r)), nil
		}
		return "", fmt.Errorf("unprintable key %q", part)
	}
	// Function keys: f1 through f12.
	if part[0] == 'f' {
		if n, err := strconv.Atoi(part[1:]); err == nil && n >= 1 && n <= 12 {
			return part, nil
		}
	}
	return "", fmt.Errorf("unknown key %q", part)
}
