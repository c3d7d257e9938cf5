package filter

import (
	"errors"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinemaxx/tmdb"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Rating >= 7`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `containsText(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown name",
			expression: `Budget > 100`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `Title`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `Year >= 2000 and Rated and releasedAfter(parseDate("1999-12-31")) and not containsText(Title, "sequel")`,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.expression), filter.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -10).Format(time.DateOnly)

	movie := tmdb.Movie{
		ID:          27205,
		Title:       "Inception",
		PosterPath:  ptr("/inception.jpg"),
		ReleaseDate: "2010-07-15",
		VoteAverage: ptr(8.4),
	}
	unrated := tmdb.Movie{ID: 2, Title: "Untitled Project", ReleaseDate: recent}

	tests := []struct {
		name       string
		expression string
		movie      tmdb.Movie
		expected   bool
	}{
		{name: "rating", expression: `Rating > 8`, movie: movie, expected: true},
		{name: "rating below", expression: `Rating > 9`, movie: movie, expected: false},
		{name: "rated", expression: `Rated`, movie: unrated, expected: false},
		{name: "unrated rating is zero", expression: `Rating == 0`, movie: unrated, expected: true},
		{name: "year", expression: `Year == 2010`, movie: movie, expected: true},
		{name: "title contains", expression: `containsText(Title, "INCEP")`, movie: movie, expected: true},
		{name: "title starts with", expression: `startsWithText(Title, "the")`, movie: movie, expected: false},
		{name: "title starts with any case", expression: `startsWithText(Title, "incep")`, movie: movie, expected: true},
		{name: "title ends with", expression: `endsWithText(Title, "TION")`, movie: movie, expected: true},
		{name: "contains operator", expression: `lower(Title) contains "ception"`, movie: movie, expected: true},
		{name: "poster", expression: `HasPoster`, movie: movie, expected: true},
		{name: "no poster", expression: `not HasPoster`, movie: unrated, expected: true},
		{name: "released after", expression: `releasedAfter(parseDate("2010-01-01"))`, movie: movie, expected: true},
		{name: "released before", expression: `releasedBefore(parseDate("2010-01-01"))`, movie: movie, expected: false},
		{name: "released within", expression: `releasedWithin(30)`, movie: unrated, expected: true},
		{name: "old release not within", expression: `releasedWithin(30)`, movie: movie, expected: false},
		{name: "unknown release date", expression: `releasedBefore(now())`, movie: tmdb.Movie{ID: 3}, expected: false},
		{name: "rated above", expression: `ratedAbove(8.0)`, movie: movie, expected: true},
		{name: "movie struct", expression: `Movie.ID == 27205`, movie: movie, expected: true},
		{name: "days since", expression: `daysSince(Released) > 365`, movie: movie, expected: true},
		{name: "logical", expression: `Rated and (Year < 2000 or Rating >= 8)`, movie: movie, expected: true},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter.Evaluate(tt.movie))
		})
	}
}

func TestFavoriteVariable(t *testing.T) {
	favorites := map[int]bool{7: true}
	compiler := NewExprCompiler(WithFavorites(func(id int) bool { return favorites[id] }))

	filter, err := compiler.Compile(`Favorite`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(tmdb.Movie{ID: 7}))
	assert.False(t, filter.Evaluate(tmdb.Movie{ID: 8}))

	// Without a lookup nothing is a favorite
	filter, err = NewExprCompiler().Compile(`Favorite`)
	require.NoError(t, err)
	assert.False(t, filter.Evaluate(tmdb.Movie{ID: 7}))
}

// withFunctions adds helper functions to the compiler environment
func withFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

func TestExtraFunctions(t *testing.T) {
	compiler := NewExprCompiler(withFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 1980 },
	}))

	filter, err := compiler.Compile(`isClassic(Year)`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(tmdb.Movie{ReleaseDate: "1968-04-02"}))
	assert.False(t, filter.Evaluate(tmdb.Movie{ReleaseDate: "2010-07-15"}))
}

func TestMatchReportsEvaluationErrors(t *testing.T) {
	compiler := NewExprCompiler(withFunctions(map[string]any{
		"explode": func(id int) (bool, error) { return false, errors.New("boom") },
	}))

	filter, err := compiler.Compile(`explode(ID)`)
	require.NoError(t, err)

	_, err = filter.Match(tmdb.Movie{ID: 1, Title: "A"})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 1, evalErr.MovieID)
	assert.False(t, filter.Evaluate(tmdb.Movie{ID: 1}))
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Rating > 5`)
	require.NoError(t, err)
	second, err := compiler.Compile(`  Rating > 5  `)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`Rating > 6`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Rating > 7`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())

	assert.Equal(t, 0, NewExprCompiler().Size())
}
