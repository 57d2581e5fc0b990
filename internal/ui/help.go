package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/mx/internal/keybind"
)

// helpBindings projects the resolved keybind table into display bindings for
// the footer. Only the main interactions are shown; the chord labels come
// from the table so custom keybinds show up correctly.
func helpBindings(t *keybind.Table) []key.Binding {
	entries := []struct {
		desc string
		cmds []keybind.Command
	}{
		{"move", []keybind.Command{keybind.CmdEntryNext, keybind.CmdEntryBack}},
		{"menu", []keybind.Command{keybind.CmdMenuNext}},
		{"run", []keybind.Command{keybind.CmdSubmit}},
		{"quit", []keybind.Command{keybind.CmdExit}},
	}

	bindings := make([]key.Binding, 0, len(entries))
	for _, e := range entries {
		var keys, labels []string
		for _, cmd := range e.cmds {
			for _, chord := range t.Chords(cmd) {
				keys = append(keys, chord.String())
			}
			if chords := t.Chords(cmd); len(chords) > 0 {
				labels = append(labels, chords[0].String())
			}
		}
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, "/"), e.desc),
		))
	}
	return bindings
}

// renderHelp renders the one-line keybind footer.
func renderHelp(t *keybind.Table) string {
	h := help.New()
	h.ShowAll = false
	return h.ShortHelpView(helpBindings(t))
}
