package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"jjreviews/config"
	"jjreviews/models"
	"jjreviews/services"
)

// Package-level collaborators, wired once from main, same as the DB handle
// and session store globals in their packages.
var (
	tmdbClient *services.TMDBClient
	enricher   *services.Enricher
	battles    *services.BattleManager
	shareCards *services.ShareCardRenderer
)

func Init(cfg *config.Config) {
	tmdbClient = services.NewTMDBClient(cfg)
	enricher = services.NewEnricher(tmdbClient, cfg.WatchRegion)
	battles = services.NewBattleManager()
	shareCards = services.NewShareCardRenderer(cfg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// GetCurrentUser resolves the session to a user, nil when anonymous.
func GetCurrentUser(r *http.Request) (*models.User, error) {
	session, err := services.GetSession(r)
	if err != nil {
		return nil, err
	}

	userID, ok := session.Values["user_id"]
	if !ok {
		return nil, nil
	}

	id, ok := toInt64(userID)
	if !ok {
		return nil, fmt.Errorf("invalid user_id in session")
	}

	return services.GetUserByID(id)
}

func toInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// ParseIDFromQuery extracts and parses an integer ID from query parameters
func ParseIDFromQuery(r *http.Request, param string) (int, error) {
	idStr := r.URL.Query().Get(param)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s parameter", param)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}

// RequirePostMethod validates that the request method is POST
func RequirePostMethod(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		handler(w, r)
	}
}

// loadEnrichedMovies is the shared read path: all rows, newest first, each
// merged with TMDB metadata (or passed through untouched on lookup failure).
func loadEnrichedMovies(r *http.Request) ([]models.Movie, error) {
	reviews, err := services.ListReviews()
	if err != nil {
		return nil, err
	}
	return enricher.EnrichAll(r.Context(), reviews), nil
}
