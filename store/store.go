package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// Persistence keys
const (
	KeyUser      = "user"
	KeyFavorites = "favorites"
	KeyTheme     = "theme"
)

// Store holds the favorites, theme preference and session of this device.
// Every mutation is written through to the persistence port.
type Store struct {
	persistence Persistence
	logger      zerolog.Logger

	mu        sync.Mutex
	favorites []tmdb.Movie
	theme     Theme
	session   *Session

	listenerMu     sync.Mutex
	themeListeners map[int]func(Theme)
	nextListener   int
}

// New creates a store and loads the persisted snapshots
func New(persistence Persistence, logger zerolog.Logger) *Store {
	s := &Store{
		persistence:    persistence,
		logger:         logger.With().Str("component", "store").Logger(),
		theme:          DefaultTheme,
		themeListeners: make(map[int]func(Theme)),
	}
	s.Load()
	return s
}

// Load replaces the in-memory state with the persisted snapshots. Missing,
// unreadable or malformed snapshots fall back to defaults.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = s.loadFavorites()
	s.theme = s.loadTheme()
	s.session = s.loadSession()

	s.logger.Debug().
		Int("favorites", len(s.favorites)).
		Str("theme", string(s.theme)).
		Bool("session", s.session != nil).
		Msg("Loaded persisted state")
}

// read returns the raw snapshot under key, or nil when it is absent or unreadable
func (s *Store) read(key string) []byte {
	data, ok, err := s.persistence.Read(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read persisted state, using defaults")
		return nil
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return data
}

func (s *Store) loadFavorites() []tmdb.Movie {
	data := s.read(KeyFavorites)
	if data == nil {
		return nil
	}

	var movies []tmdb.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		s.logger.Warn().Err(err).Str("key", KeyFavorites).Msg("Discarding malformed favorites")
		return nil
	}

	seen := make(map[int]struct{}, len(movies))
	favorites := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID <= 0 {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		favorites = append(favorites, m)
	}
	return favorites
}

func (s *Store) loadTheme() Theme {
	data := s.read(KeyTheme)
	if data == nil {
		return DefaultTheme
	}

	// Accept both a JSON string and a bare theme name
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = string(data)
	}

	theme, err := ParseTheme(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", KeyTheme).Msg("Discarding malformed theme")
		return DefaultTheme
	}
	return theme
}

func (s *Store) loadSession() *Session {
	data := s.read(KeyUser)
	if data == nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn().Err(err).Str("key", KeyUser).Msg("Discarding malformed session")
		return nil
	}
	if err := session.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("key", KeyUser).Msg("Discarding incomplete session")
		return nil
	}
	if session.Provider == "" {
		session.Provider = ProviderOther
	}
	return &session
}

// write stores v as JSON under key. On failure the in-memory state is kept.
func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.persistence.Write(key, data); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to persist state")
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) writeFavorites() error {
	favorites := s.favorites
	if favorites == nil {
		favorites = []tmdb.Movie{}
	}
	return s.write(KeyFavorites, favorites)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.favorites, func(m tmdb.Movie) bool { return m.ID == id })
}

// ToggleFavorite removes movie from the favorites if present, otherwise adds it.
// It reports whether the movie was added. Movies without a positive id are
// rejected and leave the favorites untouched.
func (s *Store) ToggleFavorite(movie tmdb.Movie) (bool, error) {
	if movie.ID <= 0 {
		return false, fmt.Errorf("%w: %d", tmdb.ErrInvalidMovieID, movie.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	if i := s.indexOf(movie.ID); i >= 0 {
		s.favorites = slices.Delete(s.favorites, i, i+1)
	} else {
		s.favorites = append(s.favorites, movie)
		added = true
	}

	s.logger.Debug().Int("movie_id", movie.ID).Bool("added", added).Msg("Toggled favorite")
	return added, s.writeFavorites()
}

// RemoveFavorite removes movie from the favorites. Removing a movie that is not
// a favorite is a no-op and reports false.
func (s *Store) RemoveFavorite(movie tmdb.Movie) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(movie.ID)
	if i < 0 {
		return false, nil
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)

	s.logger.Debug().Int("movie_id", movie.ID).Msg("Removed favorite")
	return true, s.writeFavorites()
}

// IsFavorite reports whether the movie with id is a favorite
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Favorites returns the favorites in the order they were added
func (s *Store) Favorites() []tmdb.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

// Theme returns the current theme
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme changes the theme, persists it and notifies OnThemeChange listeners
func (s *Store) SetTheme(theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	s.mu.Lock()
	s.theme = theme
	err := s.write(KeyTheme, theme)
	s.mu.Unlock()

	s.notifyTheme(theme)
	return err
}

// ToggleTheme switches between light and dark and returns the new theme
func (s *Store) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	theme := s.theme.Toggle()
	s.theme = theme
	err := s.write(KeyTheme, theme)
	s.mu.Unlock()

	s.notifyTheme(theme)
	return theme, err
}

// OnThemeChange registers fn to be called with every new theme.
// The returned func unregisters it.
func (s *Store) OnThemeChange(fn func(Theme)) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.themeListeners[id] = fn

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.themeListeners, id)
	}
}

func (s *Store) notifyTheme(theme Theme) {
	s.listenerMu.Lock()
	ids := make([]int, 0, len(s.themeListeners))
	for id := range s.themeListeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]func(Theme), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.themeListeners[id])
	}
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(theme)
	}
}

// SetSession records a signed-in user
func (s *Store) SetSession(session Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.Provider == "" {
		session.Provider = ProviderOther
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	s.logger.Debug().Str("provider", string(session.Provider)).Msg("Session started")
	return s.write(KeyUser, session)
}

// Session returns the current session, if any
func (s *Store) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// ClearOnLogout ends the session and removes its snapshot.
// Favorites and theme are kept for the next session on this device.
func (s *Store) ClearOnLogout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.persistence.Delete(KeyUser); err != nil {
		s.logger.Error().Err(err).Str("key", KeyUser).Msg("Failed to remove session")
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.logger.Debug().Msg("Session cleared")
	return nil
}
