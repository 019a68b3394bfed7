package handlers

import (
	"net/http"

	"jjreviews/logger"
	"jjreviews/models"
	"jjreviews/services"
)

// MoviesResponse carries everything the library page needs in one request:
// the visible list, the genre dropdown contents, badge colors and the
// dashboard summary.
type MoviesResponse struct {
	Movies  []models.Movie                 `json:"movies"`
	Genres  []string                       `json:"genres"`
	Badges  map[string]services.BadgeStyle `json:"badges"`
	Summary services.Summary               `json:"summary"`
	Total   int                            `json:"total"`
}

// MoviesHandler lists the enriched library filtered by the query parameters.
// A storage failure aborts with 500; per-title TMDB failures do not.
func MoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := loadEnrichedMovies(r)
	if err != nil {
		logger.Error("failed to load reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	filters := parseFilters(r)
	visible := services.VisibleMovies(movies, filters)

	watched := services.FilterMovies(movies, services.Filters{Status: models.StatusWatched})

	badges := make(map[string]services.BadgeStyle)
	for _, m := range movies {
		if _, ok := badges[m.Recommended]; !ok {
			badges[m.Recommended] = services.BadgeStyleFor(m.Recommended)
		}
	}

	writeJSON(w, http.StatusOK, MoviesResponse{
		Movies:  visible,
		Genres:  services.AvailableGenres(movies),
		Badges:  badges,
		Summary: services.Summarize(watched),
		Total:   len(movies),
	})
}

func parseFilters(r *http.Request) services.Filters {
	q := r.URL.Query()
	return services.Filters{
		Status:       q.Get("status"),
		Search:       q.Get("q"),
		OnlyNational: q.Get("national") == "true",
		OnlyOscar:    q.Get("oscar") == "true",
		Genre:        q.Get("genre"),
		Sort:         q.Get("sort"),
	}
}

// VerdictsHandler lists the canonical verdict options for the review form.
func VerdictsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"verdicts": services.VerdictOptions})
}
