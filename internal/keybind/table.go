package keybind

import (
	"errors"
	"fmt"
)

// Command is the closed set of actions the engine can take in response to a
// resolved chord. Every command is handled exhaustively by the engine's
// transition table.
type Command int

const (
	CmdExit Command = iota
	CmdSubmit
	CmdClear
	CmdDeleteNext
	CmdDeleteBack
	CmdInputNext
	CmdInputBack
	CmdEntryNext
	CmdEntryBack
	CmdMenuNext
	CmdMenuBack
)

// commandOrder fixes the iteration order for deterministic table building.
var commandOrder = []Command{
	CmdExit, CmdSubmit, CmdClear,
	CmdDeleteNext, CmdDeleteBack,
	CmdInputNext, CmdInputBack,
	CmdEntryNext, CmdEntryBack,
	CmdMenuNext, CmdMenuBack,
}

var commandNames = map[Command]string{
	CmdExit:       "exit",
	CmdSubmit:     "submit",
	CmdClear:      "clear",
	CmdDeleteNext: "delete_next",
	CmdDeleteBack: "delete_back",
	CmdInputNext:  "input_next",
	CmdInputBack:  "input_back",
	CmdEntryNext:  "entry_next",
	CmdEntryBack:  "entry_back",
	CmdMenuNext:   "menu_next",
	CmdMenuBack:   "menu_back",
}

// String returns the command's configuration name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ErrDuplicateChord is returned when two different commands claim one chord.
var ErrDuplicateChord = errors.New("chord bound to more than one command")

// Table resolves chords to commands. It is immutable after construction and
// safe to share without locking.
type Table struct {
	binds  map[Chord]Command
	chords map[Command][]Chord
}

// NewTable builds a Table from bindings in configuration form: command name to
// a list of chord strings. It fails on unknown command names, invalid chords,
// and one chord claimed by two different commands.
func NewTable(raw map[string][]string) (*Table, error) {
	byName := make(map[string][]string, len(raw))
	for name, chords := range raw {
		byName[name] = chords
	}

	t := &Table{
		binds:  make(map[Chord]Command),
		chords: make(map[Command][]Chord),
	}
	for _, cmd := range commandOrder {
		name := commandNames[cmd]
		specs, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("keybinds: missing command %q", name)
		}
		delete(byName, name)

		for _, spec := range specs {
			chord, err := ParseChord(spec)
			if err != nil {
				return nil, fmt.Errorf("keybinds: %s: %w", name, err)
			}
			if prev, dup := t.binds[chord]; dup {
				if prev == cmd {
					continue // same command listed twice, harmless
				}
				return nil, fmt.Errorf("keybinds: %s bound to both %s and %s: %w",
					chord, prev, cmd, ErrDuplicateChord)
			}
			t.binds[chord] = cmd
			t.chords[cmd] = append(t.chords[cmd], chord)
		}
	}

	for name := range byName {
		return nil, fmt.Errorf("keybinds: unknown command %q", name)
	}
	return t, nil
}

// Resolve returns the command bound to the chord, if any.
func (t *Table) Resolve(c Chord) (Command, bool) {
	cmd, ok := t.binds[c]
	return cmd, ok
}

// Chords returns the chords bound to a command, in configuration order.
func (t *Table) Chords(cmd Command) []Chord {
	return t.chords[cmd]
}

// DefaultBindings returns the default keybinds in configuration form. A
// keybinds section in the config file replaces this table entirely; partial
// overrides are not supported.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"exit":        {"esc", "ctrl+c"},
		"submit":      {"enter"},
		"clear":       {"ctrl+u"},
		"delete_next": {"delete"},
		"delete_back": {"backspace"},
		"input_next":  {"right"},
		"input_back":  {"left"},
		"entry_next":  {"down", "ctrl+n"},
		"entry_back":  {"up", "ctrl+p"},
		"menu_next":   {"tab", "ctrl+l"},
		"menu_back":   {"shift+tab", "ctrl+h"},
	}
}
