package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/s0up4200/cinemaxx/tmdb"
	"github.com/s0up4200/cinemaxx/viewmodel"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearchInput:
		return m.handleSearchInput(msg)
	case modeDetails:
		return m.handleDetailsKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = modeBrowse
		if m.search.State().Status != viewmodel.StatusIdle {
			m.mode = modeSearchResults
		}
		return m, nil

	case tea.KeyEnter:
		cmd, ok := m.runSearch(m.input.Value())
		if !ok {
			m.status = "Type a title to search"
			return m, nil
		}
		m.input.Blur()
		m.mode = modeSearchResults
		m.searchCursor = 0
		m.status = ""
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.mode == modeSearchResults {
			m.search.Clear()
			m.mode = modeBrowse
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearchInput
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		movie, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.detailsFrom = m.mode
		m.detailsID = movie.ID
		m.mode = modeDetails
		return m, m.openDetails(movie.ID)

	case key.Matches(msg, m.keys.Favorite):
		if movie, ok := m.selected(); ok {
			m.toggleFavorite(movie)
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	return m, nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.details.Close()
		m.mode = m.detailsFrom
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if d := m.details.State().Data; d != nil {
			m.toggleFavorite(d.Movie)
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.refreshCache()
		return m, m.openDetails(m.detailsID)
	}

	return m, nil
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	if m.mode == modeSearchResults {
		m.mode = modeBrowse
	}
	n := len(m.tabs)
	m.active = ((m.active+delta)%n + n) % n
	m.status = ""
	m.clampCursor()
	return m, m.ensureLoaded()
}

func (m *Model) moveCursor(delta int) {
	c := m.cursor()
	*c += delta
	m.clampCursor()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.refreshCache()
	if m.mode == modeSearchResults {
		cmd, _ := m.runSearch(m.search.State().Query)
		return m, cmd
	}

	t := m.tabs[m.active]
	if t.isFavorites() {
		return m, nil
	}
	return m, m.loadList(t.category)
}

func (m *Model) refreshCache() {
	if m.refresh != nil {
		m.refresh()
	}
}

func (m *Model) toggleFavorite(movie tmdb.Movie) {
	added, err := m.store.ToggleFavorite(movie)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("Could not save favorites: %v", err)
	case added:
		m.status = fmt.Sprintf("Added %q to favorites", movie.Title)
	default:
		m.status = fmt.Sprintf("Removed %q from favorites", movie.Title)
	}

	if m.mode != modeDetails {
		m.clampCursor()
	}
}

func (m *Model) toggleTheme() {
	theme, err := m.store.ToggleTheme()
	if err != nil {
		m.status = fmt.Sprintf("Could not save theme: %v", err)
		return
	}
	m.logger.Debug().Str("theme", string(theme)).Msg("Theme toggled")
	m.status = "Switched to " + strings.ToLower(string(theme)) + " theme"
}
