package viewmodel

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// SearchSource runs a title search
type SearchSource interface {
	Search(ctx context.Context, query string, page int, extra tmdb.Params) (tmdb.ResultSet, error)
}

// SearchViewModel drives the search box
type SearchViewModel struct {
	*machine[tmdb.ResultSet]

	source SearchSource
	opts   options
}

// NewSearchViewModel creates an Idle search view model
func NewSearchViewModel(source SearchSource, logger zerolog.Logger, opts ...Option) *SearchViewModel {
	return &SearchViewModel{
		machine: newMachine(tmdb.ResultSet.Clone, logger.With().Str("view", "search").Logger()),
		source:  source,
		opts:    newOptions(opts),
	}
}

// Submit searches for the trimmed query. A blank query is ignored: no fetch
// happens, the state is left as is and false is returned.
func (vm *SearchViewModel) Submit(ctx context.Context, query string) (State[tmdb.ResultSet], bool) {
	req, ok := vm.Begin(query)
	if !ok {
		return vm.State(), false
	}

	results, err := vm.Run(ctx, req)
	vm.Resolve(req, results, err)
	return vm.State(), true
}

// Begin enters Loading for the trimmed query; it reports false for a blank query
func (vm *SearchViewModel) Begin(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}

	gen := vm.begin(query, true)
	return Request{
		Generation: gen,
		Query:      query,
		Page:       vm.opts.page,
		Params:     vm.opts.params,
	}, true
}

// Run performs the search described by req. It does not touch the state.
func (vm *SearchViewModel) Run(ctx context.Context, req Request) (tmdb.ResultSet, error) {
	return vm.source.Search(ctx, req.Query, req.Page, req.Params)
}

// Resolve applies the outcome of req. It reports false when req is stale.
func (vm *SearchViewModel) Resolve(req Request, results tmdb.ResultSet, err error) bool {
	return vm.resolve(req.Generation, results, err)
}

// Clear returns the search box to Idle and discards any pending search
func (vm *SearchViewModel) Clear() {
	vm.reset()
}
