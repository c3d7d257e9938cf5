package tmdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMovie(t *testing.T) {
	t.Run("rating", func(t *testing.T) {
		assert.Equal(t, NotRated, Movie{}.Rating())
		assert.Equal(t, "7.3", Movie{VoteAverage: ptr(7.26)}.Rating())
		assert.Equal(t, "0.0", Movie{VoteAverage: ptr(0.0)}.Rating())
	})

	t.Run("year", func(t *testing.T) {
		assert.Equal(t, 2021, Movie{ReleaseDate: "2021-10-22"}.Year())
		assert.Equal(t, 0, Movie{}.Year())
		assert.Equal(t, 0, Movie{ReleaseDate: "soon"}.Year())
	})

	t.Run("released", func(t *testing.T) {
		released := Movie{ReleaseDate: "2021-10-22"}.Released()
		assert.Equal(t, 22, released.Day())
		assert.True(t, Movie{ReleaseDate: "bad"}.Released().IsZero())
	})

	t.Run("poster", func(t *testing.T) {
		assert.False(t, Movie{}.HasPoster())
		assert.False(t, Movie{PosterPath: ptr("")}.HasPoster())
		assert.True(t, Movie{PosterPath: ptr("/p.jpg")}.HasPoster())
	})

	t.Run("decodes null poster", func(t *testing.T) {
		var m Movie
		require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"C","poster_path":null}`), &m))
		assert.Nil(t, m.PosterPath)
		assert.Nil(t, m.VoteAverage)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		var m Movie
		require.NoError(t, json.Unmarshal([]byte(`{"id":3,"title":"C","adult":false,"genre_ids":[1,2]}`), &m))
		assert.Equal(t, Movie{ID: 3, Title: "C"}, m)
	})
}

func TestResultSet(t *testing.T) {
	var nilSet ResultSet
	assert.True(t, nilSet.IsEmpty())
	assert.NotNil(t, nilSet.Clone())

	rs := ResultSet{{ID: 2}, {ID: 1}}
	clone := rs.Clone()
	clone[0].ID = 99
	assert.Equal(t, []int{2, 1}, rs.IDs())
}

func TestEnvelope(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(`{"page":2,"total_pages":4}`), &env))

	page := env.toPage()
	assert.Equal(t, 2, page.Number)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL(nil, "w500"))
	assert.Equal(t, "", ImageURL(ptr(""), "w500"))
	assert.Equal(t, ImageBaseURL+"w200/a.jpg", ImageURL(ptr("/a.jpg"), ""))
	assert.Equal(t, ImageBaseURL+"original/a.jpg", ImageURL(ptr("/a.jpg"), "original"))
}
