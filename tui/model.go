package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/filter"
	"github.com/s0up4200/cinemaxx/store"
	"github.com/s0up4200/cinemaxx/tmdb"
	"github.com/s0up4200/cinemaxx/viewmodel"
)

// Catalog is everything the browser fetches from
type Catalog interface {
	viewmodel.CategorySource
	viewmodel.SearchSource
	viewmodel.DetailsSource
}

// Options configures the browser
type Options struct {
	// Page and Params are passed to every list and search fetch
	Page   int
	Params tmdb.Params
	// Filter hides non-matching movies from every list; nil shows everything
	Filter filter.Filter
	// ImageSize is the poster size shown in the details pane
	ImageSize string
	// Refresh, when set, runs before a reload so it bypasses cached responses
	Refresh func()
}

type mode int

const (
	modeBrowse mode = iota
	modeSearchInput
	modeSearchResults
	modeDetails
)

type tab struct {
	title    string
	category tmdb.Category
}

func (t tab) isFavorites() bool {
	return t.category == ""
}

type listLoadedMsg struct {
	req     viewmodel.Request
	results tmdb.ResultSet
	err     error
}

type searchLoadedMsg struct {
	req     viewmodel.Request
	results tmdb.ResultSet
	err     error
}

type detailsLoadedMsg struct {
	req     viewmodel.Request
	details *tmdb.MovieDetails
	err     error
}

// Model is the bubbletea model of the interactive browser
type Model struct {
	ctx    context.Context
	store  *store.Store
	filter filter.Filter
	logger zerolog.Logger

	lists   map[tmdb.Category]*viewmodel.ListViewModel
	search  *viewmodel.SearchViewModel
	details *viewmodel.DetailsViewModel

	tabs    []tab
	active  int
	cursors []int

	searchCursor int
	mode         mode
	// detailsFrom is the mode restored when the details pane closes
	detailsFrom mode
	detailsID   int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  *Styles

	formatter *tmdb.ConsoleFormatter
	imageSize string
	refresh   func()
	status    string
	width     int
	height    int

	unsubscribe func()
}

// New creates the browser model. Call Close once the program has exited.
func New(ctx context.Context, catalog Catalog, st *store.Store, logger zerolog.Logger, opts Options) Model {
	var vmOpts []viewmodel.Option
	if opts.Page > 0 {
		vmOpts = append(vmOpts, viewmodel.WithPage(opts.Page))
	}
	if len(opts.Params) > 0 {
		vmOpts = append(vmOpts, viewmodel.WithParams(opts.Params))
	}

	lists := make(map[tmdb.Category]*viewmodel.ListViewModel)
	var tabs []tab
	for _, category := range tmdb.Categories() {
		lists[category] = viewmodel.NewListViewModel(catalog, category, logger, vmOpts...)
		tabs = append(tabs, tab{title: category.Title(), category: category})
	}
	tabs = append(tabs, tab{title: "Favorites"})

	input := textinput.New()
	input.Placeholder = "Search movies by title..."
	input.CharLimit = 100
	input.Width = 40

	styles := NewStyles(st.Theme())

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Spinner

	m := Model{
		ctx:       ctx,
		store:     st,
		filter:    opts.Filter,
		logger:    logger.With().Str("component", "tui").Logger(),
		lists:     lists,
		search:    viewmodel.NewSearchViewModel(catalog, logger, vmOpts...),
		details:   viewmodel.NewDetailsViewModel(catalog, logger),
		tabs:      tabs,
		cursors:   make([]int, len(tabs)),
		input:     input,
		spinner:   sp,
		help:      help.New(),
		keys:      defaultKeyMap(),
		styles:    styles,
		formatter: tmdb.NewConsoleFormatter(),
		imageSize: opts.ImageSize,
		refresh:   opts.Refresh,
	}

	m.unsubscribe = st.OnThemeChange(func(theme store.Theme) {
		styles.apply(theme)
	})

	return m
}

// Close detaches the model from the store
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.ensureLoaded())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case listLoadedMsg:
		if vm, ok := m.lists[msg.req.Category]; ok {
			vm.Resolve(msg.req, msg.results, msg.err)
		}
		m.clampCursor()
		return m, nil

	case searchLoadedMsg:
		m.search.Resolve(msg.req, msg.results, msg.err)
		m.clampCursor()
		return m, nil

	case detailsLoadedMsg:
		m.details.Resolve(msg.req, msg.details, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeSearchInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ensureLoaded starts the first fetch of the active category tab
func (m Model) ensureLoaded() tea.Cmd {
	t := m.tabs[m.active]
	if t.isFavorites() {
		return nil
	}
	if m.lists[t.category].State().Status != viewmodel.StatusIdle {
		return nil
	}
	return m.loadList(t.category)
}

func (m Model) loadList(category tmdb.Category) tea.Cmd {
	vm := m.lists[category]
	req := vm.Begin()
	ctx := m.ctx
	return func() tea.Msg {
		results, err := vm.Run(ctx, req)
		return listLoadedMsg{req: req, results: results, err: err}
	}
}

func (m Model) runSearch(query string) (tea.Cmd, bool) {
	req, ok := m.search.Begin(query)
	if !ok {
		return nil, false
	}
	vm, ctx := m.search, m.ctx
	return func() tea.Msg {
		results, err := vm.Run(ctx, req)
		return searchLoadedMsg{req: req, results: results, err: err}
	}, true
}

func (m Model) openDetails(id int) tea.Cmd {
	vm, ctx := m.details, m.ctx
	req := vm.Begin(id)
	return func() tea.Msg {
		details, err := vm.Run(ctx, req)
		return detailsLoadedMsg{req: req, details: details, err: err}
	}
}

// visibleMovies returns the movies of the list on screen after filtering
func (m Model) visibleMovies() []tmdb.Movie {
	var movies []tmdb.Movie

	switch {
	case m.mode == modeSearchResults || (m.mode == modeDetails && m.detailsFrom == modeSearchResults):
		movies = m.search.State().Data
	case m.tabs[m.active].isFavorites():
		movies = m.store.Favorites()
	default:
		movies = m.lists[m.tabs[m.active].category].State().Data
	}

	return filter.Apply(m.filter, movies)
}

func (m *Model) cursor() *int {
	if m.mode == modeSearchResults || (m.mode == modeDetails && m.detailsFrom == modeSearchResults) {
		return &m.searchCursor
	}
	return &m.cursors[m.active]
}

func (m *Model) clampCursor() {
	c := m.cursor()
	n := len(m.visibleMovies())
	if *c >= n {
		*c = n - 1
	}
	if *c < 0 {
		*c = 0
	}
}

func (m Model) selected() (tmdb.Movie, bool) {
	movies := m.visibleMovies()
	c := *m.cursor()
	if c < 0 || c >= len(movies) {
		return tmdb.Movie{}, false
	}
	return movies[c], true
}
