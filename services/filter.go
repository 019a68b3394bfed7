package services

import (
	"slices"
	"sort"
	"strings"
	"time"

	"jjreviews/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortDefault = "default"
	SortRating  = "rating"
	SortDate    = "date"
	SortAlpha   = "alpha"
)

// Filters is everything the navbar controls. Toggles combine with AND; an
// empty search term matches everything.
type Filters struct {
	Status       string `json:"status"`
	Search       string `json:"search"`
	OnlyNational bool   `json:"only_national"`
	OnlyOscar    bool   `json:"only_oscar"`
	Genre        string `json:"genre"`
	Sort         string `json:"sort"`
}

// VisibleMovies derives the displayed list: filter, then a stable sort. The
// input slice is never mutated.
func VisibleMovies(movies []models.Movie, f Filters) []models.Movie {
	filtered := FilterMovies(movies, f)
	SortMovies(filtered, f.Sort)
	return filtered
}

// FilterMovies applies the conjunctive predicates and returns a fresh slice
// in input order.
func FilterMovies(movies []models.Movie, f Filters) []models.Movie {
	status := f.Status
	if status == "" {
		status = models.StatusWatched
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.EffectiveStatus() != status {
			continue
		}
		if f.OnlyNational && !m.IsNational {
			continue
		}
		if f.OnlyOscar && !m.IsOscar {
			continue
		}
		if f.Genre != "" && !slices.Contains(m.Genres, f.Genre) {
			continue
		}
		if !matchesSearch(m, term) {
			continue
		}
		result = append(result, m)
	}
	return result
}

// matchesSearch is satisfied when any searchable field contains the term.
// The literal token "oscar" also matches nominees whose text fields never
// mention the word.
func matchesSearch(m models.Movie, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), term) ||
		strings.Contains(strings.ToLower(m.Review.Review), term) ||
		strings.Contains(strings.ToLower(m.Recommended), term) ||
		strings.Contains(strings.ToLower(m.Director), term) {
		return true
	}
	for _, genre := range m.Genres {
		if strings.Contains(strings.ToLower(genre), term) {
			return true
		}
	}
	for _, actor := range m.Cast {
		if strings.Contains(strings.ToLower(actor), term) {
			return true
		}
	}
	if m.IsOscar && strings.Contains("oscar", term) {
		return true
	}
	return false
}

// SortMovies orders the slice in place by a single key. All sorts are stable
// so ties keep their previous relative order.
func SortMovies(movies []models.Movie, sortOrder string) {
	switch sortOrder {
	case SortRating:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].RatingOrZero() > movies[j].RatingOrZero()
		})
	case SortDate:
		sort.SliceStable(movies, func(i, j int) bool {
			return releaseTime(movies[i]).After(releaseTime(movies[j]))
		})
	case SortAlpha:
		collator := collate.New(language.BrazilianPortuguese)
		sort.SliceStable(movies, func(i, j int) bool {
			return collator.CompareString(movies[i].Title, movies[j].Title) < 0
		})
	default:
		// Most recently added first; storage ids are monotonic.
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].ID > movies[j].ID
		})
	}
}

// releaseTime parses the TMDB date, with missing or malformed dates sorting
// as earliest possible.
func releaseTime(m models.Movie) time.Time {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AvailableGenres is the deduplicated, sorted union of every movie's genres,
// recomputed whenever the list changes.
func AvailableGenres(movies []models.Movie) []string {
	seen := make(map[string]bool)
	for _, m := range movies {
		for _, g := range m.Genres {
			if g != "" {
				seen[g] = true
			}
		}
	}
	var genres []string
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
