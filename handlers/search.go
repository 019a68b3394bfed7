package handlers

import (
	"net/http"
	"strings"

	"jjreviews/logger"
)

// SearchHandler proxies the TMDB title search for the add-review flow. The
// client gets at most five candidates to pick from.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	results, err := tmdbClient.SearchMovies(r.Context(), query)
	if err != nil {
		logger.Error("TMDB search failed", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, "movie search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
