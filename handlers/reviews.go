package handlers

import (
	"encoding/json"
	"net/http"

	"jjreviews/logger"
	"jjreviews/services"
)

type reviewRequest struct {
	ID          int      `json:"id"`
	TMDBID      int      `json:"tmdb_id"`
	Rating      *float64 `json:"rating"`
	Review      string   `json:"review"`
	Recommended string   `json:"recommended"`
	Status      string   `json:"status"`
}

func (req reviewRequest) validate(forCreate bool) string {
	if forCreate && req.TMDBID <= 0 {
		return "tmdb_id is required"
	}
	if !forCreate && req.ID <= 0 {
		return "id is required"
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 10) {
		return "rating must be between 0 and 10"
	}
	return ""
}

// CreateReviewHandler inserts a review. Admin only; errors surface as JSON
// for the form's alert, nothing is retried.
func CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(true); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	review, err := services.CreateReview(req.TMDBID, req.Rating, req.Review, req.Recommended, req.Status)
	if err != nil {
		logger.Error("failed to create review", "tmdb_id", req.TMDBID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save review")
		return
	}

	logger.Info("review created", "id", review.ID, "tmdb_id", review.TMDBID)
	writeJSON(w, http.StatusCreated, review)
}

// UpdateReviewHandler rewrites rating, review text, verdict and status of an
// existing review. The TMDB id is immutable.
func UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(false); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	review, err := services.UpdateReview(req.ID, req.Rating, req.Review, req.Recommended, req.Status)
	if err != nil {
		logger.Error("failed to update review", "id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save review")
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDFromQuery(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.DeleteReview(id); err != nil {
		logger.Error("failed to delete review", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete review")
		return
	}

	logger.Info("review deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
