package tmdb

import (
	"slices"
	"strconv"
	"time"
)

// NotRated is displayed in place of a missing vote average
const NotRated = "N/A"

// Movie represents a movie as listed by the TMDB catalog endpoints
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate string   `json:"release_date,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
}

// Rating returns the vote average formatted for display, or NotRated
func (m Movie) Rating() string {
	if m.VoteAverage == nil {
		return NotRated
	}
	return strconv.FormatFloat(*m.VoteAverage, 'f', 1, 64)
}

// HasPoster reports whether the movie has a poster image
func (m Movie) HasPoster() bool {
	return m.PosterPath != nil && *m.PosterPath != ""
}

// Released parses the release date; the zero time is returned when absent or invalid
func (m Movie) Released() time.Time {
	if m.ReleaseDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the release year, or 0 when unknown
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// ResultSet is the ordered list of movies returned by one fetch.
// The order is the service's ranking and is never re-sorted.
type ResultSet []Movie

// IsEmpty reports whether the result set has no movies
func (rs ResultSet) IsEmpty() bool {
	return len(rs) == 0
}

// IDs returns the movie ids in result order
func (rs ResultSet) IDs() []int {
	ids := make([]int, len(rs))
	for i, m := range rs {
		ids[i] = m.ID
	}
	return ids
}

// Clone returns a copy that shares no backing array with rs
func (rs ResultSet) Clone() ResultSet {
	if rs == nil {
		return ResultSet{}
	}
	return slices.Clone(rs)
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the response from GET /movie/{id}
type MovieDetails struct {
	Movie
	Overview     string  `json:"overview"`
	Tagline      string  `json:"tagline,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
	BackdropPath *string `json:"backdrop_path,omitempty"`
	VoteCount    int     `json:"vote_count,omitempty"`
	IMDbID       string  `json:"imdb_id,omitempty"`
	Status       string  `json:"status,omitempty"`
}

// GenreNames returns the genre names in service order
func (d *MovieDetails) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Clone returns a copy that shares no genre slice with d
func (d *MovieDetails) Clone() *MovieDetails {
	if d == nil {
		return nil
	}
	c := *d
	c.Genres = slices.Clone(d.Genres)
	return &c
}

// Page is a single page of catalog results along with paging metadata
type Page struct {
	Number       int
	TotalPages   int
	TotalResults int
	Results      ResultSet
}

func (p *Page) clone() *Page {
	c := *p
	c.Results = p.Results.Clone()
	return &c
}

// envelope is the response body shared by the list and search endpoints
type envelope struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

func (e envelope) toPage() *Page {
	results := ResultSet(e.Results)
	if results == nil {
		results = ResultSet{}
	}
	return &Page{
		Number:       e.Page,
		TotalPages:   e.TotalPages,
		TotalResults: e.TotalResults,
		Results:      results,
	}
}

// errorBody is the structured error payload returned by TMDB
type errorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success,omitempty"`
}
