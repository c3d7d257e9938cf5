package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/s0up4200/cinemaxx/tmdb"
	"github.com/s0up4200/cinemaxx/viewmodel"
)

const (
	appTitle      = "🎬 Cinemaxx"
	loadingText   = "Loading..."
	chromeHeight  = 8
	minListHeight = 5
	maxPaneWidth  = 80
)

// View implements tea.Model
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	switch m.mode {
	case modeSearchInput:
		sb.WriteString(m.styles.SearchInput.Render(m.input.View()))
		sb.WriteString("\n")
	case modeSearchResults:
		query := m.search.State().Query
		sb.WriteString(m.styles.Header.Render(fmt.Sprintf("Results for %q", query)))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderState(m.search.State(), tmdb.NoMoviesMessage))
	case modeDetails:
		sb.WriteString(m.renderDetails())
	default:
		sb.WriteString(m.renderActiveTab())
	}

	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m Model) renderHeader() string {
	header := m.styles.Header.Render(appTitle)

	session, ok := m.store.Session()
	if !ok {
		return header
	}
	user := m.styles.User.Render(fmt.Sprintf("  [%s] %s (%s)", session.Initial(), session.DisplayName(), session.Provider))
	return lipgloss.JoinHorizontal(lipgloss.Top, header, user)
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := m.styles.Tab
		if i == m.active && m.mode != modeSearchResults && m.mode != modeSearchInput {
			style = m.styles.ActiveTab
		}
		rendered[i] = style.Render(t.title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderActiveTab() string {
	t := m.tabs[m.active]
	if t.isFavorites() {
		return m.renderMovies(m.visibleMovies(), tmdb.NoFavoritesMessage)
	}
	return m.renderState(m.lists[t.category].State(), tmdb.NoMoviesMessage)
}

// renderState renders a list view model; results already on screen stay
// visible while a reload is in flight
func (m Model) renderState(state viewmodel.State[tmdb.ResultSet], emptyMessage string) string {
	switch state.Status {
	case viewmodel.StatusFailure:
		return m.styles.Error.Render(state.Message) + "\n" +
			m.styles.Muted.Render("Press r to retry.") + "\n"
	case viewmodel.StatusIdle:
		return m.renderLoading()
	case viewmodel.StatusLoading:
		if len(state.Data) == 0 {
			return m.renderLoading()
		}
	}
	return m.renderMovies(m.visibleMovies(), emptyMessage)
}

func (m Model) renderLoading() string {
	sp := m.spinner
	sp.Style = m.styles.Spinner
	return sp.View() + " " + loadingText + "\n"
}

func (m Model) renderMovies(movies []tmdb.Movie, emptyMessage string) string {
	if len(movies) == 0 {
		return m.styles.Muted.Render(emptyMessage) + "\n"
	}

	cursor := *m.cursor()
	start, end := window(len(movies), cursor, m.listHeight())

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(m.renderMovie(movies[i], i == cursor))
		sb.WriteString("\n")
	}
	if end-start < len(movies) {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(movies))))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderMovie(movie tmdb.Movie, selected bool) string {
	title := movie.Title
	if year := movie.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}

	line := "  " + m.styles.Item.Render(title)
	if selected {
		line = m.styles.Selected.Render("> " + title)
	}
	line += " " + m.styles.Rating.Render("⭐ "+movie.Rating())
	if m.store.IsFavorite(movie.ID) {
		line += " " + m.styles.Favorite.Render("♥")
	}
	return line
}

func (m Model) renderDetails() string {
	state := m.details.State()

	switch state.Status {
	case viewmodel.StatusFailure:
		return m.styles.Error.Render(state.Message) + "\n" +
			m.styles.Muted.Render("Press r to retry or esc to go back.") + "\n"
	case viewmodel.StatusSuccess:
		if state.Data == nil {
			return m.styles.Muted.Render(tmdb.NoMoviesMessage) + "\n"
		}
	default:
		return m.renderLoading()
	}

	d := state.Data
	body := strings.TrimSpace(m.formatter.FormatDetails(d, m.store.IsFavorite(d.ID), m.imageSize))

	style := m.styles.Details
	if m.width > maxPaneWidth/4 {
		style = style.Width(min(m.width-4, maxPaneWidth))
	}
	return style.Render(body) + "\n"
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-chromeHeight, minListHeight)
}

// window returns the [start, end) range of n rows that keeps cursor visible
// within height rows; a zero height shows every row
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, start + height
}
