package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/mx/internal/config"
)

// Style wraps a lipgloss style with the one attribute lipgloss has no SGR
// for: hidden, which blanks the text while keeping its width.
type Style struct {
	lip    lipgloss.Style
	hidden bool
}

// Render styles s, blanking it first when the hidden attribute is set.
func (s Style) Render(str string) string {
	if s.hidden {
		str = strings.Repeat(" ", runewidth.StringWidth(str))
	}
	return s.lip.Render(str)
}

// Theme holds one resolved style per interface element.
type Theme struct {
	Overflow         Style
	Prompt           Style
	Input            Style
	EntryName        Style
	EntryValue       Style
	EntryMatch       Style
	EntryHidden      Style
	EntryCursor      Style
	EntryCursorMatch Style
	MenuName         Style
	MenuCursor       Style
}

// DefaultThemeConfig returns the default theme in configuration form. It is a
// pure constructor: callers get a fresh value, there is no ambient global.
func DefaultThemeConfig() *config.Theme {
	return &config.Theme{
		Overflow:         &config.Style{FG: "244", Attrs: []string{"italic"}},
		Prompt:           &config.Style{FG: "81", Attrs: []string{"bold"}},
		Input:            &config.Style{FG: "252"},
		EntryName:        &config.Style{FG: "252"},
		EntryValue:       &config.Style{FG: "246"},
		EntryMatch:       &config.Style{FG: "114", Attrs: []string{"bold"}},
		EntryHidden:      &config.Style{FG: "240", Attrs: []string{"dim"}},
		EntryCursor:      &config.Style{FG: "250", BG: "24"},
		EntryCursorMatch: &config.Style{FG: "114", BG: "24", Attrs: []string{"bold"}},
		MenuName:         &config.Style{FG: "244"},
		MenuCursor:       &config.Style{FG: "81", Attrs: []string{"bold"}},
	}
}

// BuildTheme resolves a config theme into lipgloss styles. Parts the config
// leaves unset fall back to the default theme. Invalid colors or attributes
// are configuration errors and fail the launch.
func BuildTheme(cfg *config.Theme) (Theme, error) {
	defaults := DefaultThemeConfig()
	if cfg == nil {
		cfg = defaults
	}

	var theme Theme
	parts := []struct {
		name string
		src  *config.Style
		def  *config.Style
		dst  *Style
	}{
		{"overflow", cfg.Overflow, defaults.Overflow, &theme.Overflow},
		{"prompt", cfg.Prompt, defaults.Prompt, &theme.Prompt},
		{"input", cfg.Input, defaults.Input, &theme.Input},
		{"entry_name", cfg.EntryName, defaults.EntryName, &theme.EntryName},
		{"entry_value", cfg.EntryValue, defaults.EntryValue, &theme.EntryValue},
		{"entry_match", cfg.EntryMatch, defaults.EntryMatch, &theme.EntryMatch},
		{"entry_hidden", cfg.EntryHidden, defaults.EntryHidden, &theme.EntryHidden},
		{"entry_cursor", cfg.EntryCursor, defaults.EntryCursor, &theme.EntryCursor},
		{"entry_cursor_match", cfg.EntryCursorMatch, defaults.EntryCursorMatch, &theme.EntryCursorMatch},
		{"menu_name", cfg.MenuName, defaults.MenuName, &theme.MenuName},
		{"menu_cursor", cfg.MenuCursor, defaults.MenuCursor, &theme.MenuCursor},
	}
	for _, p := range parts {
		src := p.src
		if src == nil {
			src = p.def
		}
		style, err := buildStyle(src)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", p.name, err)
		}
		*p.dst = style
	}
	return theme, nil
}

func buildStyle(cfg *config.Style) (Style, error) {
	s := Style{lip: lipgloss.NewStyle()}

	if fg, err := parseColor(cfg.FG); err != nil {
		return Style{}, fmt.Errorf("fg: %w", err)
	} else if fg != nil {
		s.lip = s.lip.Foreground(fg)
	}
	if bg, err := parseColor(cfg.BG); err != nil {
		return Style{}, fmt.Errorf("bg: %w", err)
	} else if bg != nil {
		s.lip = s.lip.Background(bg)
	}

	for _, attr := range cfg.Attrs {
		switch strings.ToLower(strings.TrimSpace(attr)) {
		case "bold":
			s.lip = s.lip.Bold(true)
		case "dim":
			s.lip = s.lip.Faint(true)
		case "italic":
			s.lip = s.lip.Italic(true)
		case "underlined":
			s.lip = s.lip.Underline(true)
		case "hidden":
			s.hidden = true
		default:
			return Style{}, fmt.Errorf("invalid attribute %q", attr)
		}
	}
	return s, nil
}

// parseColor accepts hex colors ("#7aa2f7") and ANSI-256 indexes ("81").
// An empty string means the terminal default and yields a nil color.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		return c, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(s), nil
	}
	return nil, fmt.Errorf("invalid color %q (want #rrggbb or ANSI 0-255)", s)
}
