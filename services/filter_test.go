package services

import (
	"testing"

	"jjreviews/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func watchedMovie(id int, title string) models.Movie {
	return models.Movie{
		Review: models.Review{ID: id, TMDBID: id * 100, Rating: ratingPtr(7), Status: models.StatusWatched},
		Title:  title,
	}
}

func TestFilterMoviesDefaultsMatchFullWatchedList(t *testing.T) {
	movies := []models.Movie{
		watchedMovie(2, "Cidade de Deus"),
		watchedMovie(5, "Parasita"),
		watchedMovie(1, "O Poço"),
	}

	visible := VisibleMovies(movies, Filters{})

	require.Len(t, visible, 3)
	assert.Equal(t, []int{5, 2, 1}, []int{visible[0].ID, visible[1].ID, visible[2].ID},
		"default sort is id descending")
}

func TestFilterMoviesStatusTab(t *testing.T) {
	watchlisted := models.Movie{
		Review: models.Review{ID: 3, Status: models.StatusWatchlist},
		Title:  "Ainda não vi",
	}
	legacy := models.Movie{
		// No status at all: imported before the watchlist feature, counts as watched.
		Review: models.Review{ID: 4, Rating: ratingPtr(8)},
		Title:  "Antigo",
	}
	movies := []models.Movie{watchedMovie(1, "Visto"), watchlisted, legacy}

	watched := FilterMovies(movies, Filters{Status: models.StatusWatched})
	require.Len(t, watched, 2)
	assert.Equal(t, 1, watched[0].ID)
	assert.Equal(t, 4, watched[1].ID)

	watchlist := FilterMovies(movies, Filters{Status: models.StatusWatchlist})
	require.Len(t, watchlist, 1)
	assert.Equal(t, 3, watchlist[0].ID)
}

func TestFilterMoviesSearchFields(t *testing.T) {
	movie := models.Movie{
		Review: models.Review{
			ID:          1,
			Rating:      ratingPtr(9),
			Review:      "Fiquei pensando nisso por dias",
			Recommended: "Assista com certeza",
			Status:      models.StatusWatched,
		},
		Title:    "O Agente Secreto",
		Director: "Kleber Mendonça Filho",
		Cast:     []string{"Wagner Moura"},
		Genres:   []string{"Thriller"},
	}
	movies := []models.Movie{movie}

	for _, term := range []string{"agente", "PENSANDO", "certeza", "mendonça", "wagner", "thriller"} {
		assert.Len(t, FilterMovies(movies, Filters{Search: term}), 1, "term %q should match", term)
	}

	assert.Empty(t, FilterMovies(movies, Filters{Search: "faroeste"}))
}

func TestFilterMoviesOscarLiteralToken(t *testing.T) {
	// No textual field contains "oscar"; the awards flag alone satisfies the search.
	nominee := watchedMovie(1, "Sinners")
	nominee.IsOscar = true
	other := watchedMovie(2, "Qualquer Coisa")

	got := FilterMovies([]models.Movie{nominee, other}, Filters{Search: "oscar"})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilterMoviesToggles(t *testing.T) {
	national := watchedMovie(1, "Nacional")
	national.IsNational = true
	national.Genres = []string{"Drama"}

	nominee := watchedMovie(2, "Indicado")
	nominee.IsOscar = true
	nominee.Genres = []string{"Drama", "Comédia"}

	plain := watchedMovie(3, "Comum")
	plain.Genres = []string{"Ação"}

	movies := []models.Movie{national, nominee, plain}

	got := FilterMovies(movies, Filters{OnlyNational: true})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	got = FilterMovies(movies, Filters{OnlyOscar: true})
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	got = FilterMovies(movies, Filters{Genre: "Drama"})
	require.Len(t, got, 2)

	// Toggles are conjunctive.
	got = FilterMovies(movies, Filters{OnlyNational: true, OnlyOscar: true})
	assert.Empty(t, got)
}

func TestSortMoviesByRating(t *testing.T) {
	unrated := models.Movie{Review: models.Review{ID: 1, Status: models.StatusWatched}, Title: "Sem nota"}
	low := watchedMovie(2, "Baixa")
	low.Rating = ratingPtr(4)
	high := watchedMovie(3, "Alta")
	high.Rating = ratingPtr(9.5)

	movies := []models.Movie{unrated, low, high}
	SortMovies(movies, SortRating)

	assert.Equal(t, []int{3, 2, 1}, []int{movies[0].ID, movies[1].ID, movies[2].ID},
		"missing rating sorts as zero")
}

func TestSortMoviesByReleaseDate(t *testing.T) {
	old := watchedMovie(1, "Antigo")
	old.ReleaseDate = "1999-03-31"
	recent := watchedMovie(2, "Novo")
	recent.ReleaseDate = "2025-08-01"
	broken := watchedMovie(3, "Sem data")
	broken.ReleaseDate = "not-a-date"

	movies := []models.Movie{broken, old, recent}
	SortMovies(movies, SortDate)

	assert.Equal(t, []int{2, 1, 3}, []int{movies[0].ID, movies[1].ID, movies[2].ID},
		"unparseable date sorts as earliest")
}

func TestSortMoviesAlphabetical(t *testing.T) {
	movies := []models.Movie{
		watchedMovie(1, "Órfãs da Terra"),
		watchedMovie(2, "Bacurau"),
		watchedMovie(3, ""),
		watchedMovie(4, "Aquarius"),
	}
	SortMovies(movies, SortAlpha)

	assert.Equal(t, "", movies[0].Title)
	assert.Equal(t, "Aquarius", movies[1].Title)
	assert.Equal(t, "Bacurau", movies[2].Title)
	// pt-BR collation keeps Ó with O, not after Z.
	assert.Equal(t, "Órfãs da Terra", movies[3].Title)
}

func TestSortMoviesStability(t *testing.T) {
	a := watchedMovie(1, "A")
	a.Rating = ratingPtr(7)
	b := watchedMovie(2, "B")
	b.Rating = ratingPtr(7)
	c := watchedMovie(3, "C")
	c.Rating = ratingPtr(7)

	movies := []models.Movie{a, b, c}
	SortMovies(movies, SortRating)

	assert.Equal(t, []int{1, 2, 3}, []int{movies[0].ID, movies[1].ID, movies[2].ID},
		"equal keys keep prior relative order")
}

func TestAvailableGenres(t *testing.T) {
	first := watchedMovie(1, "Um")
	first.Genres = []string{"Drama", "Comédia"}
	second := watchedMovie(2, "Dois")
	second.Genres = []string{"Ação", "Drama", ""}

	genres := AvailableGenres([]models.Movie{first, second})

	assert.Equal(t, []string{"Ação", "Comédia", "Drama"}, genres)
}

func TestFilterMoviesDoesNotMutateInput(t *testing.T) {
	movies := []models.Movie{watchedMovie(1, "Um"), watchedMovie(2, "Dois")}
	_ = VisibleMovies(movies, Filters{Sort: SortAlpha})

	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, 2, movies[1].ID)
}
