package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jjreviews/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTMDBClient(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewTMDBClient(&config.Config{
		TMDBAPIKey:   "test-key",
		TMDBBaseURL:  srv.URL,
		TMDBLanguage: "pt-BR",
	})
}

func TestTMDBClientRequiresAPIKey(t *testing.T) {
	client := NewTMDBClient(&config.Config{TMDBBaseURL: "http://localhost"})

	_, err := client.MovieDetails(context.Background(), 1)
	assert.ErrorContains(t, err, "TMDB_API_KEY")

	_, err = client.SearchMovies(context.Background(), "bacurau")
	assert.ErrorContains(t, err, "TMDB_API_KEY")
}

func TestMovieDetailsRejectsNon200(t *testing.T) {
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
	})

	_, err := client.MovieDetails(context.Background(), 99)
	assert.ErrorContains(t, err, "status 404")
}

func TestSearchMoviesEscapesQuery(t *testing.T) {
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "cidade de deus", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"results": [{"id": 598, "title": "Cidade de Deus", "release_date": "2002-08-30"}]}`)
	})

	results, err := client.SearchMovies(context.Background(), "cidade de deus")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 598, results[0].ID)
	assert.Equal(t, "Cidade de Deus", results[0].Title)
}

func TestSearchMoviesCapsResults(t *testing.T) {
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
		for i := 1; i <= 8; i++ {
			if i > 1 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id": %d, "title": "Filme %d"}`, i, i)
		}
		fmt.Fprint(w, `]}`)
	})

	results, err := client.SearchMovies(context.Background(), "filme")
	require.NoError(t, err)
	require.Len(t, results, searchResultLimit)
	assert.Equal(t, 1, results[0].ID, "capping keeps the first page order")
	assert.Equal(t, 5, results[4].ID)
}

func TestSearchMoviesEmptyResults(t *testing.T) {
	client := newTestTMDBClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": []}`)
	})

	results, err := client.SearchMovies(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}
