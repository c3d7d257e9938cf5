package tmdb

import (
	"fmt"
	"strings"
)

const (
	// NoMoviesMessage is shown for an empty catalog or search
	NoMoviesMessage = "No movies found."
	// NoFavoritesMessage is shown for an empty favorites list
	NoFavoritesMessage = "No favorites yet."
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	ImageSize   string
	// IsFavorite marks favorite movies in listings; nil disables the marker
	IsFavorite func(id int) bool
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a result set under a heading
func (f *ConsoleFormatter) FormatMovieList(title string, movies ResultSet, options FormatOptions) string {
	return f.formatList(title, movies, NoMoviesMessage, options)
}

// FormatFavorites formats the favorites list
func (f *ConsoleFormatter) FormatFavorites(movies []Movie, options FormatOptions) string {
	return f.formatList("Favorites", movies, NoFavoritesMessage, options)
}

func (f *ConsoleFormatter) formatList(title string, movies []Movie, emptyMessage string, options FormatOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", title)
	if len(movies) == 0 {
		fmt.Fprintf(&sb, ":\n  %s\n", emptyMessage)
		return sb.String()
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, movie, isLast, options)

		if !isLast && options.ShowDetails {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// formatMovie formats a single movie entry
func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── %s", prefix, movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(sb, " (%d)", year)
	}
	fmt.Fprintf(sb, " ⭐ %s", movie.Rating())
	if options.IsFavorite != nil && options.IsFavorite(movie.ID) {
		sb.WriteString(" ♥")
	}
	sb.WriteString("\n")

	if !options.ShowDetails {
		return
	}

	indent := "│   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%sID: %d\n", indent, movie.ID)
	if movie.ReleaseDate != "" {
		fmt.Fprintf(sb, "%sReleased: %s\n", indent, movie.ReleaseDate)
	}
	if poster := ImageURL(movie.PosterPath, options.ImageSize); poster != "" {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, poster)
	}
}

// FormatDetails formats the full record of a movie
func (f *ConsoleFormatter) FormatDetails(details *MovieDetails, isFavorite bool, imageSize string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", details.Title)
	if year := details.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	if isFavorite {
		sb.WriteString(" ♥")
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	if details.Tagline != "" {
		fmt.Fprintf(&sb, "%q\n\n", details.Tagline)
	}

	fmt.Fprintf(&sb, "Rating:   ⭐ %s", details.Rating())
	if details.VoteCount > 0 {
		fmt.Fprintf(&sb, " (%d votes)", details.VoteCount)
	}
	sb.WriteString("\n")

	if details.ReleaseDate != "" {
		fmt.Fprintf(&sb, "Released: %s\n", details.ReleaseDate)
	}
	if details.Runtime > 0 {
		fmt.Fprintf(&sb, "Runtime:  %dh %02dm\n", details.Runtime/60, details.Runtime%60)
	}
	if genres := details.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(&sb, "Genres:   %s\n", strings.Join(genres, ", "))
	}
	if details.Status != "" {
		fmt.Fprintf(&sb, "Status:   %s\n", details.Status)
	}
	if poster := ImageURL(details.PosterPath, imageSize); poster != "" {
		fmt.Fprintf(&sb, "Poster:   %s\n", poster)
	}
	if details.IMDbID != "" {
		fmt.Fprintf(&sb, "IMDb:     https://www.imdb.com/title/%s\n", details.IMDbID)
	}

	if details.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", details.Overview)
	}

	return sb.String()
}
