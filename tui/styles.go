package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/s0up4200/cinemaxx/store"
)

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	danger  lipgloss.Color
	border  lipgloss.Color
}

var (
	darkPalette = palette{
		primary: lipgloss.Color("#E50914"),
		text:    lipgloss.Color("#F5F5F1"),
		muted:   lipgloss.Color("#8A8A8A"),
		accent:  lipgloss.Color("#F5C518"),
		danger:  lipgloss.Color("#FF5F5F"),
		border:  lipgloss.Color("#564D4D"),
	}

	lightPalette = palette{
		primary: lipgloss.Color("#B20710"),
		text:    lipgloss.Color("#1F1F1F"),
		muted:   lipgloss.Color("#6B6B6B"),
		accent:  lipgloss.Color("#9A6A00"),
		danger:  lipgloss.Color("#C62828"),
		border:  lipgloss.Color("#BDBDBD"),
	}
)

// Styles holds every lipgloss style used by the browser for one theme
type Styles struct {
	Theme store.Theme

	Header      lipgloss.Style
	User        lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Favorite    lipgloss.Style
	Rating      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Status      lipgloss.Style
	Details     lipgloss.Style
	SearchInput lipgloss.Style
	Spinner     lipgloss.Style
}

// NewStyles builds the styles of the given theme; an unknown theme falls back to the default
func NewStyles(theme store.Theme) *Styles {
	s := &Styles{}
	s.apply(theme)
	return s
}

// apply rebuilds s in place so models sharing the pointer pick up the new theme
func (s *Styles) apply(theme store.Theme) {
	if !theme.Valid() {
		theme = store.DefaultTheme
	}

	p := darkPalette
	if theme == store.ThemeLight {
		p = lightPalette
	}

	*s = Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		User: lipgloss.NewStyle().
			Foreground(p.muted),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(p.text),
		Selected: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Favorite: lipgloss.NewStyle().
			Foreground(p.primary),
		Rating: lipgloss.NewStyle().
			Foreground(p.accent),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Error: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Details: lipgloss.NewStyle().
			Foreground(p.text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		SearchInput: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().
			Foreground(p.primary),
	}
}
