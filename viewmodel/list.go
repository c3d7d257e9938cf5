package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// CategorySource fetches one page of a category
type CategorySource interface {
	ByCategory(ctx context.Context, category tmdb.Category, page int, extra tmdb.Params) (tmdb.ResultSet, error)
}

// ListViewModel drives the movie list of one category
type ListViewModel struct {
	*machine[tmdb.ResultSet]

	source   CategorySource
	opts     options
	mu       sync.Mutex
	category tmdb.Category
}

// NewListViewModel creates an Idle list view model for category
func NewListViewModel(source CategorySource, category tmdb.Category, logger zerolog.Logger, opts ...Option) *ListViewModel {
	return &ListViewModel{
		machine:  newMachine(tmdb.ResultSet.Clone, logger.With().Str("view", "list").Logger()),
		source:   source,
		opts:     newOptions(opts),
		category: category,
	}
}

// Category returns the category currently shown
func (vm *ListViewModel) Category() tmdb.Category {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.category
}

// Load fetches the current category and returns the resulting state
func (vm *ListViewModel) Load(ctx context.Context) State[tmdb.ResultSet] {
	req := vm.Begin()
	results, err := vm.Run(ctx, req)
	vm.Resolve(req, results, err)
	return vm.State()
}

// SetCategory switches category, dropping the current results immediately, and loads it
func (vm *ListViewModel) SetCategory(ctx context.Context, category tmdb.Category) State[tmdb.ResultSet] {
	req := vm.BeginCategory(category)
	results, err := vm.Run(ctx, req)
	vm.Resolve(req, results, err)
	return vm.State()
}

// Begin enters Loading for the current category, keeping the previous results on screen
func (vm *ListViewModel) Begin() Request {
	category := vm.Category()
	return vm.request(category, vm.begin(string(category), true))
}

// BeginCategory switches category and enters Loading without the previous results
func (vm *ListViewModel) BeginCategory(category tmdb.Category) Request {
	vm.mu.Lock()
	vm.category = category
	vm.mu.Unlock()

	return vm.request(category, vm.begin(string(category), false))
}

// Run performs the fetch described by req. It does not touch the state.
func (vm *ListViewModel) Run(ctx context.Context, req Request) (tmdb.ResultSet, error) {
	return vm.source.ByCategory(ctx, req.Category, req.Page, req.Params)
}

// Resolve applies the outcome of req. It reports false when req is stale.
func (vm *ListViewModel) Resolve(req Request, results tmdb.ResultSet, err error) bool {
	return vm.resolve(req.Generation, results, err)
}

func (vm *ListViewModel) request(category tmdb.Category, gen uint64) Request {
	return Request{
		Generation: gen,
		Category:   category,
		Page:       vm.opts.page,
		Params:     vm.opts.params,
	}
}
