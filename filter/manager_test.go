package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinemaxx/tmdb"
)

func testMovies() tmdb.ResultSet {
	return tmdb.ResultSet{
		{ID: 1, Title: "Alpha", ReleaseDate: "1999-03-31", VoteAverage: ptr(8.7)},
		{ID: 2, Title: "Beta", ReleaseDate: "2015-01-01", VoteAverage: ptr(5.2)},
		{ID: 3, Title: "Gamma", ReleaseDate: "2021-06-01", VoteAverage: ptr(7.9)},
		{ID: 4, Title: "Delta"},
	}
}

func TestApply(t *testing.T) {
	compiler := NewExprCompiler()
	filter, err := compiler.Compile(`Rating >= 7`)
	require.NoError(t, err)

	matched := Apply(filter, testMovies())
	assert.Equal(t, []int{1, 3}, matched.IDs(), "order must be preserved")

	assert.Equal(t, testMovies(), Apply(nil, testMovies()))

	none := Apply(filter, []tmdb.Movie{{ID: 9}})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestManager(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterFilters(map[string]string{
		"acclaimed": `Rating >= 8`,
		"Modern":    `Year >= 2010`,
	}))
	assert.Equal(t, []string{"acclaimed", "modern"}, m.ListFilters())

	f, ok := m.GetFilter("MODERN")
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, Apply[tmdb.ResultSet](f, testMovies()).IDs())

	err := m.RegisterFilters(map[string]string{"broken": `Rating >=`, "fine": `Rated`})
	require.Error(t, err)
	_, ok = m.GetFilter("fine")
	assert.False(t, ok, "nothing is registered when one preset fails")

	require.NoError(t, m.RegisterFilter("rated", `Rated`))
	_, ok = m.GetFilter("RATED")
	assert.True(t, ok)
}

func TestManager_Resolve(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.RegisterFilter("modern", `Year >= 2010`))

	t.Run("nothing", func(t *testing.T) {
		f, err := m.Resolve("", "")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("expression", func(t *testing.T) {
		f, err := m.Resolve(`Rating > 8`, "")
		require.NoError(t, err)
		assert.Equal(t, []int{1}, Apply(f, testMovies()).IDs())
	})

	t.Run("preset", func(t *testing.T) {
		f, err := m.Resolve("", "modern")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, Apply(f, testMovies()).IDs())
	})

	t.Run("both", func(t *testing.T) {
		f, err := m.Resolve(`Rating > 7`, "modern")
		require.NoError(t, err)
		assert.Equal(t, []int{3}, Apply(f, testMovies()).IDs())
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := m.Resolve("", "classic")
		assert.ErrorIs(t, err, ErrUnknownPreset)
		assert.Contains(t, err.Error(), "modern")
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := m.Resolve(`Rating >`, "")
		var compErr *CompilationError
		assert.ErrorAs(t, err, &compErr)
	})
}
