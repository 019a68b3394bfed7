package handlers

import (
	"errors"
	"net/http"

	"jjreviews/logger"
	"jjreviews/models"
	"jjreviews/services"
)

// rouletteResponse hands the client the watchlist in draw order, the cosmetic
// animation frames (indices into that list) and the settled winner. The
// client only acts on the winner once the frames have played out.
type rouletteResponse struct {
	Watchlist  []models.Movie `json:"watchlist"`
	Frames     []int          `json:"frames"`
	TickMillis int            `json:"tick_millis"`
	Winner     models.Movie   `json:"winner"`
}

// RouletteHandler draws one random movie from the watchlist.
func RouletteHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := loadEnrichedMovies(r)
	if err != nil {
		logger.Error("failed to load reviews for roulette", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	watchlist := services.FilterMovies(movies, services.Filters{Status: models.StatusWatchlist})

	spin, err := services.Spin(len(watchlist))
	if err != nil {
		if errors.Is(err, services.ErrEmptyWatchlist) {
			writeError(w, http.StatusUnprocessableEntity, "watchlist is empty, add movies first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rouletteResponse{
		Watchlist:  watchlist,
		Frames:     spin.Frames,
		TickMillis: spin.TickMillis,
		Winner:     watchlist[spin.WinnerIndex],
	})
}
