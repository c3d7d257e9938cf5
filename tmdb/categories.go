package tmdb

import (
	"context"
	"fmt"
	"maps"
	"strings"
)

// SearchEndpoint is the movie search endpoint
const SearchEndpoint = "/search/movie"

// Category is a named catalog backed by one list endpoint
type Category string

const (
	// CategoryPopular lists popular movies
	CategoryPopular Category = "popular"
	// CategoryNowPlaying lists movies currently in theaters
	CategoryNowPlaying Category = "now_playing"
	// CategoryUpcoming lists upcoming releases
	CategoryUpcoming Category = "upcoming"
	// CategoryTopRated lists the best rated movies
	CategoryTopRated Category = "top_rated"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{CategoryPopular, CategoryNowPlaying, CategoryUpcoming, CategoryTopRated}
}

// ParseCategory accepts category names in snake, kebab or space separated form
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	category := Category(normalized)
	if !category.Valid() {
		return "", fmt.Errorf("unknown category %q (must be one of popular, now_playing, upcoming, top_rated)", s)
	}
	return category, nil
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryPopular, CategoryNowPlaying, CategoryUpcoming, CategoryTopRated:
		return true
	}
	return false
}

// Endpoint returns the API path of the category
func (c Category) Endpoint() string {
	return "/movie/" + string(c)
}

// Title returns the heading shown above the category
func (c Category) Title() string {
	switch c {
	case CategoryPopular:
		return "Popular Movies"
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryUpcoming:
		return "Upcoming Movies"
	case CategoryTopRated:
		return "Top Rated Movies"
	default:
		return string(c)
	}
}

// Catalog binds endpoints and default parameters on top of an API
type Catalog struct {
	api API
}

// NewCatalog creates a catalog over the given API
func NewCatalog(api API) *Catalog {
	return &Catalog{api: api}
}

// Popular fetches popular movies
func (c *Catalog) Popular(ctx context.Context, page int, extra Params) (ResultSet, error) {
	return c.ByCategory(ctx, CategoryPopular, page, extra)
}

// NowPlaying fetches movies currently in theaters
func (c *Catalog) NowPlaying(ctx context.Context, page int, extra Params) (ResultSet, error) {
	return c.ByCategory(ctx, CategoryNowPlaying, page, extra)
}

// Upcoming fetches upcoming movies
func (c *Catalog) Upcoming(ctx context.Context, page int, extra Params) (ResultSet, error) {
	return c.ByCategory(ctx, CategoryUpcoming, page, extra)
}

// TopRated fetches the best rated movies
func (c *Catalog) TopRated(ctx context.Context, page int, extra Params) (ResultSet, error) {
	return c.ByCategory(ctx, CategoryTopRated, page, extra)
}

// ByCategory fetches one page of the given category
func (c *Catalog) ByCategory(ctx context.Context, category Category, page int, extra Params) (ResultSet, error) {
	return c.api.Fetch(ctx, category.Endpoint(), mergeParams(Params{"page": normalizePage(page)}, extra))
}

// Search fetches movies matching query. The query is sent as given; a blank
// query fails with ErrEmptyQuery without reaching the service.
func (c *Catalog) Search(ctx context.Context, query string, page int, extra Params) (ResultSet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return c.api.Fetch(ctx, SearchEndpoint, mergeParams(Params{"query": query, "page": normalizePage(page)}, extra))
}

// Details fetches a single movie
func (c *Catalog) Details(ctx context.Context, id int) (*MovieDetails, error) {
	return c.api.Details(ctx, id)
}

// mergeParams overlays extra on base; extra wins on collisions
func mergeParams(base, extra Params) Params {
	merged := make(Params, len(base)+len(extra))
	maps.Copy(merged, base)
	maps.Copy(merged, extra)
	return merged
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
