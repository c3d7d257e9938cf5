package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// Apply returns the movies matching f, in their original order
func Apply[M ~[]tmdb.Movie](f Filter, movies M) M {
	if f == nil {
		return movies
	}

	matched := make(M, 0, len(movies))
	for _, movie := range movies {
		if f.Evaluate(movie) {
			matched = append(matched, movie)
		}
	}
	return matched
}

// Manager holds the named filter presets
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compile compiles an ad hoc expression with the manager's compiler
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterFilter registers a new preset or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[normalizeName(name)] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple presets at once; nothing is registered
// unless every expression compiles
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[normalizeName(name)] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a preset by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[normalizeName(name)]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns the preset names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve picks the filter for a command: an ad hoc expression, a preset, or
// both combined with "and". It returns nil when neither is given.
func (m *Manager) Resolve(expression, preset string) (Filter, error) {
	var filters []Filter

	if preset != "" {
		f, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPreset, preset, strings.Join(m.ListFilters(), ", "))
		}
		filters = append(filters, f)
	}

	if strings.TrimSpace(expression) != "" {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	switch len(filters) {
	case 0:
		return nil, nil
	case 1:
		return filters[0], nil
	default:
		return allOf(filters), nil
	}
}

// allOf matches movies that satisfy every filter
type allOf []Filter

func (a allOf) Evaluate(movie tmdb.Movie) bool {
	for _, f := range a {
		if !f.Evaluate(movie) {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
