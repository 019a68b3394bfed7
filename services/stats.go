package services

import (
	"math"
	"slices"
	"strings"

	"jjreviews/models"
)

// Summary is the dashboard header over the watched list.
type Summary struct {
	TotalWatched     int     `json:"total_watched"`
	AverageRating    float64 `json:"average_rating"`
	NonUSCount       int     `json:"non_us_count"`
	NonUSPercent     int     `json:"non_us_percent"`
	TopDirector      string  `json:"top_director"`
	TopDirectorCount int     `json:"top_director_count"`
}

// Summarize computes the dashboard numbers from the watched movies. The top
// director only counts each movie's first-listed director; with no repeat
// director the card shows "Vários".
func Summarize(watched []models.Movie) Summary {
	if len(watched) == 0 {
		return Summary{TopDirector: "Vários"}
	}

	var ratingSum float64
	nonUS := 0
	directorCounts := make(map[string]int)

	for _, m := range watched {
		ratingSum += m.RatingOrZero()

		if !slices.Contains(m.CountryCodes, "US") {
			nonUS++
		}

		director := strings.TrimSpace(strings.SplitN(m.Director, ",", 2)[0])
		if director != "" && director != unknownDirector {
			directorCounts[director]++
		}
	}

	topDirector := "Vários"
	maxCount := 0
	for director, count := range directorCounts {
		if count > maxCount || (count == maxCount && director < topDirector) {
			topDirector = director
			maxCount = count
		}
	}
	if maxCount < 2 {
		topDirector = "Vários"
	}

	total := len(watched)
	return Summary{
		TotalWatched:     total,
		AverageRating:    math.Round(ratingSum/float64(total)*10) / 10,
		NonUSCount:       nonUS,
		NonUSPercent:     int(math.Round(float64(nonUS) / float64(total) * 100)),
		TopDirector:      topDirector,
		TopDirectorCount: maxCount,
	}
}
