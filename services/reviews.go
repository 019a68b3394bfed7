package services

import (
	"database/sql"
	"fmt"

	"jjreviews/database"
	"jjreviews/models"
)

// ListReviews returns every review, most recently created first. This is the
// read path the whole library view hangs off.
func ListReviews() ([]models.Review, error) {
	rows, err := database.DB.Query(
		"SELECT id, tmdb_id, rating, review, recommended, COALESCE(status, ''), created_at FROM reviews ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading reviews: %w", err)
	}

	return reviews, nil
}

func GetReview(id int) (*models.Review, error) {
	row := database.DB.QueryRow(
		"SELECT id, tmdb_id, rating, review, recommended, COALESCE(status, ''), created_at FROM reviews WHERE id = $1",
		id,
	)

	var review models.Review
	var rating sql.NullFloat64
	err := row.Scan(&review.ID, &review.TMDBID, &rating, &review.Review, &review.Recommended, &review.Status, &review.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review %d not found", id)
		}
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	if rating.Valid {
		review.Rating = &rating.Float64
	}

	return &review, nil
}

// CreateReview inserts a new review. A nil rating files the movie under the
// watchlist; the TMDB id is fixed at creation and never updated.
func CreateReview(tmdbID int, rating *float64, reviewText, recommended, status string) (*models.Review, error) {
	if status == "" {
		status = models.StatusWatched
	}

	row := database.DB.QueryRow(
		`INSERT INTO reviews (tmdb_id, rating, review, recommended, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, tmdb_id, rating, review, recommended, COALESCE(status, ''), created_at`,
		tmdbID, ratingArg(rating), reviewText, recommended, status,
	)

	review, err := scanReviewRow(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// UpdateReview rewrites the user content of an existing review by internal id.
func UpdateReview(id int, rating *float64, reviewText, recommended, status string) (*models.Review, error) {
	if status == "" {
		status = models.StatusWatched
	}

	row := database.DB.QueryRow(
		`UPDATE reviews
		 SET rating = $1, review = $2, recommended = $3, status = $4
		 WHERE id = $5
		 RETURNING id, tmdb_id, rating, review, recommended, COALESCE(status, ''), created_at`,
		ratingArg(rating), reviewText, recommended, status, id,
	)

	review, err := scanReviewRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review %d not found", id)
		}
		return nil, fmt.Errorf("failed to update review %d: %w", id, err)
	}
	return &review, nil
}

func DeleteReview(id int) error {
	result, err := database.DB.Exec("DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("review %d not found", id)
	}
	return nil
}

func ratingArg(rating *float64) any {
	if rating == nil {
		return nil
	}
	return *rating
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(s rowScanner) (models.Review, error) {
	var review models.Review
	var rating sql.NullFloat64
	err := s.Scan(&review.ID, &review.TMDBID, &rating, &review.Review, &review.Recommended, &review.Status, &review.CreatedAt)
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to scan review: %w", err)
	}
	if rating.Valid {
		review.Rating = &rating.Float64
	}
	return review, nil
}

func scanReviewRow(row *sql.Row) (models.Review, error) {
	var review models.Review
	var rating sql.NullFloat64
	err := row.Scan(&review.ID, &review.TMDBID, &rating, &review.Review, &review.Recommended, &review.Status, &review.CreatedAt)
	if err != nil {
		return models.Review{}, err
	}
	if rating.Valid {
		review.Rating = &rating.Float64
	}
	return review, nil
}
