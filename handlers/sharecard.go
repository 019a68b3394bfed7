package handlers

import (
	"fmt"
	"net/http"

	"jjreviews/logger"
	"jjreviews/models"
	"jjreviews/services"
)

// ShareCardHandler renders the share card PNG for one review. The response
// is served as a download; native share sheets are the client's business.
func ShareCardHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDFromQuery(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := services.GetReview(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}

	// Single-item enrichment; a TMDB failure still renders the card with the
	// stored fields only.
	movies := enricher.EnrichAll(r.Context(), []models.Review{*review})

	png, err := shareCards.Render(r.Context(), movies[0])
	if err != nil {
		logger.Error("share card render failed", "review_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate share card")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"review-%d.png\"", id))
	w.Write(png)
}
