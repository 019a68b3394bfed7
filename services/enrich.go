package services

import (
	"context"
	"strings"

	"jjreviews/logger"
	"jjreviews/metrics"
	"jjreviews/models"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	nationalCountryCode = "BR"
	unknownDirector     = "Desconhecido"
	castLimit           = 5
)

// TMDB ids of the 2026 Oscar best-picture field. Updated by hand each season.
var oscarNominees2026 = map[int]struct{}{
	83533:   {},
	447273:  {},
	648878:  {},
	930094:  {},
	974950:  {},
	1018163: {},
	1064213: {},
	1084736: {},
	1184918: {},
	1241982: {},
}

// regionNames localizes ISO 3166-1 codes the same way the browser's
// Intl.DisplayNames did ("US" -> "Estados Unidos").
var regionNames = display.Regions(language.BrazilianPortuguese)

type Enricher struct {
	tmdb        *TMDBClient
	watchRegion string
}

func NewEnricher(tmdb *TMDBClient, watchRegion string) *Enricher {
	if watchRegion == "" {
		watchRegion = nationalCountryCode
	}
	return &Enricher{tmdb: tmdb, watchRegion: watchRegion}
}

// EnrichAll merges TMDB metadata into every review, one concurrent lookup per
// title. A failed lookup logs and leaves that entry unenriched; it never
// aborts the batch. Order and length of the input are preserved.
func (e *Enricher) EnrichAll(ctx context.Context, reviews []models.Review) []models.Movie {
	movies := make([]models.Movie, len(reviews))

	var g errgroup.Group
	for i, review := range reviews {
		i, review := i, review
		g.Go(func() error {
			movies[i] = e.enrichOne(ctx, review)
			return nil
		})
	}
	// Goroutines only write their own slot and never return an error.
	_ = g.Wait()

	return movies
}

func (e *Enricher) enrichOne(ctx context.Context, review models.Review) models.Movie {
	movie := models.Movie{Review: review}

	details, err := e.tmdb.MovieDetails(ctx, review.TMDBID)
	if err != nil {
		logger.Error("TMDB enrichment failed, serving stored fields only",
			"tmdb_id", review.TMDBID, "review_id", review.ID, "error", err)
		metrics.EnrichmentFailures.Inc()
		return movie
	}

	movie.Title = details.Title
	movie.PosterPath = details.PosterPath
	movie.ReleaseDate = details.ReleaseDate
	movie.Overview = details.Overview
	movie.Director = directorNames(details.Credits.Crew)
	movie.Cast = castNames(details.Credits.Cast)

	for _, country := range details.ProductionCountries {
		movie.CountryCodes = append(movie.CountryCodes, country.Code)
		movie.Countries = append(movie.Countries, localizedCountryName(country))
		if country.Code == nationalCountryCode {
			movie.IsNational = true
		}
	}

	for _, genre := range details.Genres {
		movie.Genres = append(movie.Genres, genre.Name)
	}

	_, movie.IsOscar = oscarNominees2026[review.TMDBID]

	if region, ok := details.WatchProviders.Results[e.watchRegion]; ok {
		for _, p := range region.Flatrate {
			movie.Providers = append(movie.Providers, models.WatchProvider{
				ID:       p.ID,
				Name:     p.Name,
				LogoPath: p.LogoPath,
			})
		}
	}

	return movie
}

func directorNames(crew []TMDBCrewMember) string {
	var directors []string
	for _, member := range crew {
		if member.Job == "Director" {
			directors = append(directors, member.Name)
		}
	}
	if len(directors) == 0 {
		return unknownDirector
	}
	return strings.Join(directors, ", ")
}

func castNames(cast []TMDBCastMember) []string {
	var names []string
	for _, member := range cast {
		if len(names) == castLimit {
			break
		}
		names = append(names, member.Name)
	}
	return names
}

// localizedCountryName falls back to the raw TMDB name when the code does not
// parse as a region.
func localizedCountryName(country TMDBCountry) string {
	region, err := language.ParseRegion(country.Code)
	if err != nil {
		return country.Name
	}
	if name := regionNames.Name(region); name != "" {
		return name
	}
	return country.Name
}

// IsOscarNominee reports membership in the static awards id set.
func IsOscarNominee(tmdbID int) bool {
	_, ok := oscarNominees2026[tmdbID]
	return ok
}
