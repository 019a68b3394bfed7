package models

// WatchProvider is one streaming service offering the movie, as reported by
// TMDB for the configured watch region.
type WatchProvider struct {
	ID       int    `json:"provider_id"`
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path"`
}

// Movie is a review merged with TMDB metadata. When enrichment fails for a
// title the TMDB fields stay zero and the stored review fields are served
// as-is.
type Movie struct {
	Review
	Title        string          `json:"title,omitempty"`
	PosterPath   string          `json:"poster_path,omitempty"`
	ReleaseDate  string          `json:"release_date,omitempty"`
	Overview     string          `json:"overview,omitempty"`
	Director     string          `json:"director,omitempty"`
	Cast         []string        `json:"cast,omitempty"`
	Countries    []string        `json:"countries,omitempty"`
	CountryCodes []string        `json:"country_codes,omitempty"`
	Genres       []string        `json:"genres,omitempty"`
	IsNational   bool            `json:"is_national"`
	IsOscar      bool            `json:"is_oscar"`
	Providers    []WatchProvider `json:"providers,omitempty"`
}

// RatingOrZero is the rating with nil collapsed to 0, the value sorting and
// bracket seeding work with.
func (m Movie) RatingOrZero() float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}
