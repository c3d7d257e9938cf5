package tmdb

import (
	"context"
)

// API defines the interface for TMDB operations
type API interface {
	// Fetch retrieves one page of a list endpoint
	Fetch(ctx context.Context, endpoint string, params Params) (ResultSet, error)

	// Details retrieves a single movie
	Details(ctx context.Context, id int) (*MovieDetails, error)
}

var _ API = (*Client)(nil)
