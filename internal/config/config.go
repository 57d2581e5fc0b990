// Package config loads and validates launcher configuration files.
//
// Configs are TOML by default; files ending in .yaml/.yml are decoded as YAML
// with the same schema. The loaded model is normalized (menus sorted by order,
// declaration order preserved for ties) and immutable for the process
// lifetime once handed to the engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Configuration errors. All of them are fatal at startup; the launcher never
// starts with a partially valid config.
var (
	ErrNoMenus         = errors.New("config declares no menus")
	ErrDuplicateMenu   = errors.New("duplicate menu name")
	ErrDuplicateEntry  = errors.New("duplicate entry name")
	ErrEmptyEntryValue = errors.New("entry has an empty value")
)

// Entry associates a display label with the command string submitted when the
// entry is selected.
type Entry struct {
	Name  string `toml:"name" yaml:"name"`
	Value string `toml:"value" yaml:"value"`
}

// Menu is one page of entries. Entries keep their declaration order as the
// stable base order; display order is re-derived per filter pass without
// mutating it.
type Menu struct {
	Name    string  `toml:"name" yaml:"name"`
	Prompt  string  `toml:"prompt" yaml:"prompt"`
	Order   int     `toml:"order" yaml:"order"`
	Entries []Entry `toml:"entries" yaml:"entries"`
}

// Style is one theme tag: optional foreground/background colors and a set of
// text attributes. Colors are hex ("#7aa2f7") or ANSI-256 indexes ("81");
// attributes are drawn from {bold, dim, italic, underlined, hidden}.
type Style struct {
	FG    string   `toml:"fg" yaml:"fg"`
	BG    string   `toml:"bg" yaml:"bg"`
	Attrs []string `toml:"attrs" yaml:"attrs"`
}

// Theme holds one style per interface element. Parts left unset fall back to
// the default theme.
type Theme struct {
	Overflow         *Style `toml:"overflow" yaml:"overflow"`
	Prompt           *Style `toml:"prompt" yaml:"prompt"`
	Input            *Style `toml:"input" yaml:"input"`
	EntryName        *Style `toml:"entry_name" yaml:"entry_name"`
	EntryValue       *Style `toml:"entry_value" yaml:"entry_value"`
	EntryMatch       *Style `toml:"entry_match" yaml:"entry_match"`
	EntryHidden      *Style `toml:"entry_hidden" yaml:"entry_hidden"`
	EntryCursor      *Style `toml:"entry_cursor" yaml:"entry_cursor"`
	EntryCursorMatch *Style `toml:"entry_cursor_match" yaml:"entry_cursor_match"`
	MenuName         *Style `toml:"menu_name" yaml:"menu_name"`
	MenuCursor       *Style `toml:"menu_cursor" yaml:"menu_cursor"`
}

// Behavior holds display policies that are deliberately configurable.
type Behavior struct {
	// HideUnmatched removes non-matching entries from the list instead of
	// showing them dimmed below the matches.
	HideUnmatched bool `toml:"hide_unmatched" yaml:"hide_unmatched"`
}

// File is a fully decoded configuration file.
type File struct {
	Menus []Menu `toml:"menus" yaml:"menus"`

	// Keybinds maps command names to chord strings. When present it replaces
	// the default table entirely; when absent the defaults apply whole.
	Keybinds map[string][]string `toml:"keybinds" yaml:"keybinds"`

	Theme    *Theme   `toml:"theme" yaml:"theme"`
	Behavior Behavior `toml:"behavior" yaml:"behavior"`
}

// Load reads, decodes, validates, and normalizes the config at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func (f *File) validate() error {
	if len(f.Menus) == 0 {
		return ErrNoMenus
	}

	menuNames := make(map[string]struct{}, len(f.Menus))
	for _, m := range f.Menus {
		if m.Name == "" {
			return fmt.Errorf("menu with empty name")
		}
		if _, seen := menuNames[m.Name]; seen {
			return fmt.Errorf("menu %q: %w", m.Name, ErrDuplicateMenu)
		}
		menuNames[m.Name] = struct{}{}

		entryNames := make(map[string]struct{}, len(m.Entries))
		for _, e := range m.Entries {
			if e.Name == "" {
				return fmt.Errorf("menu %q: entry with empty name", m.Name)
			}
			if _, seen := entryNames[e.Name]; seen {
				return fmt.Errorf("menu %q, entry %q: %w", m.Name, e.Name, ErrDuplicateEntry)
			}
			entryNames[e.Name] = struct{}{}
			if e.Value == "" {
				return fmt.Errorf("menu %q, entry %q: %w", m.Name, e.Name, ErrEmptyEntryValue)
			}
		}
	}
	return nil
}

// normalize sorts menus by order, keeping declaration order for ties.
func (f *File) normalize() {
	sort.SliceStable(f.Menus, func(i, j int) bool {
		return f.Menus[i].Order < f.Menus[j].Order
	})
}
