package models

import "time"

const (
	StatusWatched   = "watched"
	StatusWatchlist = "watchlist"
)

// Review is a row of the reviews table. Rating is nil for watchlist entries
// that have not been watched yet.
type Review struct {
	ID          int       `json:"id"`
	TMDBID      int       `json:"tmdb_id"`
	Rating      *float64  `json:"rating"`
	Review      string    `json:"review"`
	Recommended string    `json:"recommended"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// EffectiveStatus treats legacy rows with no status as watched. The first
// imported batch predates the watchlist feature.
func (r Review) EffectiveStatus() string {
	if r.Status == "" {
		return StatusWatched
	}
	return r.Status
}

// Watched reports whether the review counts as a watched movie.
func (r Review) Watched() bool {
	return r.EffectiveStatus() == StatusWatched
}
