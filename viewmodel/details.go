package viewmodel

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// DetailsSource fetches the full record of a movie
type DetailsSource interface {
	Details(ctx context.Context, id int) (*tmdb.MovieDetails, error)
}

// DetailsViewModel drives the details pane
type DetailsViewModel struct {
	*machine[*tmdb.MovieDetails]

	source DetailsSource
}

// NewDetailsViewModel creates an Idle details view model
func NewDetailsViewModel(source DetailsSource, logger zerolog.Logger) *DetailsViewModel {
	return &DetailsViewModel{
		machine: newMachine((*tmdb.MovieDetails).Clone, logger.With().Str("view", "details").Logger()),
		source:  source,
	}
}

// Open loads the movie with the given id
func (vm *DetailsViewModel) Open(ctx context.Context, id int) State[*tmdb.MovieDetails] {
	req := vm.Begin(id)
	details, err := vm.Run(ctx, req)
	vm.Resolve(req, details, err)
	return vm.State()
}

// Begin enters Loading for id
func (vm *DetailsViewModel) Begin(id int) Request {
	gen := vm.begin(strconv.Itoa(id), false)
	return Request{Generation: gen, MovieID: id}
}

// Run performs the fetch described by req. It does not touch the state.
func (vm *DetailsViewModel) Run(ctx context.Context, req Request) (*tmdb.MovieDetails, error) {
	return vm.source.Details(ctx, req.MovieID)
}

// Resolve applies the outcome of req. It reports false when req is stale.
func (vm *DetailsViewModel) Resolve(req Request, details *tmdb.MovieDetails, err error) bool {
	return vm.resolve(req.Generation, details, err)
}

// Close hides the pane; a fetch still in flight is discarded when it resolves
func (vm *DetailsViewModel) Close() {
	vm.reset()
}
