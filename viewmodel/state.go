package viewmodel

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// Status is the lifecycle position of a view model
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// State is a snapshot of a view model.
// Message is only set in Failure and is always safe to display.
type State[T any] struct {
	Status     Status
	Data       T
	Message    string
	Query      string
	Generation uint64
}

// Request describes one fetch started by Begin. It is handed back to Resolve.
type Request struct {
	Generation uint64
	Category   tmdb.Category
	Query      string
	Page       int
	MovieID    int
	Params     tmdb.Params
}

// FailureMessage converts a fetch error into the text shown to the user
func FailureMessage(err error) string {
	var remoteErr *tmdb.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return tmdb.GenericFailureMessage
}

// machine is the generation-guarded state shared by every view model
type machine[T any] struct {
	mu        sync.Mutex
	state     State[T]
	clone     func(T) T
	listeners map[int]func(State[T])
	nextID    int
	logger    zerolog.Logger
}

func newMachine[T any](clone func(T) T, logger zerolog.Logger) *machine[T] {
	return &machine[T]{
		clone:     clone,
		listeners: make(map[int]func(State[T])),
		logger:    logger,
	}
}

// State returns the current snapshot
func (m *machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Subscribe registers fn to receive every new state. The returned func unsubscribes.
func (m *machine[T]) Subscribe(fn func(State[T])) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// begin enters Loading under a new generation
func (m *machine[T]) begin(query string, keepData bool) uint64 {
	m.mu.Lock()
	gen := m.state.Generation + 1
	next := State[T]{Status: StatusLoading, Query: query, Generation: gen}
	if keepData {
		next.Data = m.state.Data
	}
	m.state = next
	m.logger.Debug().Uint64("generation", gen).Str("query", query).Msg("Loading")
	m.publishLocked()
	return gen
}

// resolve applies the outcome of generation gen, or discards it when stale
func (m *machine[T]) resolve(gen uint64, data T, err error) bool {
	m.mu.Lock()
	if gen != m.state.Generation {
		current := m.state.Generation
		m.mu.Unlock()
		m.logger.Debug().
			Uint64("generation", gen).
			Uint64("current", current).
			Msg("Discarding stale resolution")
		return false
	}

	if err != nil {
		var zero T
		m.state.Status = StatusFailure
		m.state.Data = zero
		m.state.Message = FailureMessage(err)
		m.logger.Warn().Err(err).Uint64("generation", gen).Str("query", m.state.Query).Msg("Fetch failed")
	} else {
		m.state.Status = StatusSuccess
		m.state.Data = m.clone(data)
		m.state.Message = ""
	}

	m.publishLocked()
	return true
}

// reset returns to Idle and invalidates any in-flight generation
func (m *machine[T]) reset() {
	m.mu.Lock()
	m.state = State[T]{Status: StatusIdle, Generation: m.state.Generation + 1}
	m.publishLocked()
}

// publishLocked releases the lock and notifies listeners with the new snapshot
func (m *machine[T]) publishLocked() {
	snapshot := m.snapshot()
	listeners := make([]func(State[T]), 0, len(m.listeners))
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, m.listeners[id])
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (m *machine[T]) snapshot() State[T] {
	s := m.state
	s.Data = m.clone(s.Data)
	return s
}
